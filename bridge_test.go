package catapult_test

import (
	"context"
	"testing"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBridge(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/bridges": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/bridges/brg-1"}, nil),
		},
	})

	bridge, err := client.Bridges.Create(context.Background(), &catapult.CreateBridgeData{
		BridgeAudio: true,
		CallIDs:     []string{"c-1", "c-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "brg-1", bridge.ID)
	assert.Equal(t, catapult.BridgeStateCreated, bridge.State)

	// a bridge can hold at most two calls
	_, err = client.Bridges.Create(context.Background(), &catapult.CreateBridgeData{CallIDs: []string{"c-1", "c-2", "c-3"}})
	assert.IsType(t, &catapult.ValidationError{}, err)
}

func TestBridgeCalls(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/bridges/brg-1/calls": {
			httpx.NewMockResponse(200, nil, []byte(`[
				{"id": "c-1", "state": "active", "from": "+15551110000", "to": "+15552220000"},
				{"id": "c-2", "state": "active", "from": "+15553330000", "to": "+15554440000"}
			]`)),
		},
	})

	calls, err := client.Bridges.FetchCalls(context.Background(), "brg-1")
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "c-1", calls[0].ID)

	// fetched calls carry the client, so their verbs work
	assert.NotPanics(t, func() { calls[0].BridgeID() })
}

func TestBridgeWith(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-1": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "c-1", "state": "active"}`)),
		},
		baseURL + "/users/u-123/calls/c-2": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "c-2", "state": "active"}`)),
		},
		baseURL + "/users/u-123/bridges": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/bridges/brg-2"}, nil),
		},
	})

	first, err := client.Calls.Get(context.Background(), "c-1")
	require.NoError(t, err)
	second, err := client.Calls.Get(context.Background(), "c-2")
	require.NoError(t, err)

	bridge, err := first.BridgeWith(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "brg-2", bridge.ID)
}
