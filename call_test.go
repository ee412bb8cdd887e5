package catapult_test

import (
	"context"
	"testing"
	"time"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCall(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/calls/c-abc"}, nil),
		},
	})

	id, err := client.Calls.Create(context.Background(), &catapult.CreateCallData{From: "+15559876543", To: "+15551234567"})
	assert.NoError(t, err)
	assert.Equal(t, "c-abc", id)

	// missing required fields never hit the network
	_, err = client.Calls.Create(context.Background(), &catapult.CreateCallData{To: "+15551234567"})
	assert.IsType(t, &catapult.ValidationError{}, err)
}

func TestCallLifecycle(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-abc": {
			httpx.NewMockResponse(200, nil, []byte(`{
				"id": "c-abc",
				"direction": "out",
				"from": "+15559876543",
				"to": "+15551234567",
				"state": "active",
				"startTime": "2016-03-15T12:00:00Z",
				"bridge": "https://api.catapult.inetwork.com/v1/users/u-123/bridges/brg-1"
			}`)),
			httpx.NewMockResponse(200, nil, nil), // hangup
		},
	})

	call, err := client.Calls.Get(context.Background(), "c-abc")
	require.NoError(t, err)
	assert.Equal(t, "c-abc", call.ID)
	assert.Equal(t, catapult.CallStateActive, call.State)
	assert.Equal(t, "brg-1", call.BridgeID())
	assert.Equal(t, time.Date(2016, 3, 15, 12, 0, 0, 0, time.UTC), *call.StartTime)

	err = call.Hangup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, catapult.CallStateCompleted, call.State)
}

func TestCallTerminalStateSticky(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-rej": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "c-rej", "direction": "in", "from": "+15559876543", "to": "+15551234567", "state": "rejected"}`)),
			httpx.NewMockResponse(200, nil, nil),
		},
	})

	call, err := client.Calls.Get(context.Background(), "c-rej")
	require.NoError(t, err)

	// a rejected call stays rejected locally even after other verbs succeed
	err = call.Hangup(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, catapult.CallStateRejected, call.State)
}

func TestCallTransfer(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-abc": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/calls/c-new"}, nil),
		},
	})

	newID, err := client.Calls.Transfer(context.Background(), "c-abc", &catapult.TransferCallData{TransferTo: "+15550001111"})
	assert.NoError(t, err)
	assert.Equal(t, "c-new", newID)

	_, err = client.Calls.Transfer(context.Background(), "c-abc", &catapult.TransferCallData{})
	assert.IsType(t, &catapult.ValidationError{}, err)
}

func TestSendDTMF(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-abc/dtmf": {
			httpx.NewMockResponse(200, nil, nil),
		},
	})

	err := client.Calls.SendDTMF(context.Background(), "c-abc", "12*#AB")
	assert.NoError(t, err)

	err = client.Calls.SendDTMF(context.Background(), "c-abc", "12E")
	assert.EqualError(t, err, "invalid DTMF digit 'E'")
	assert.IsType(t, &catapult.ValidationError{}, err)
}

func TestCallEvents(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-abc/events": {
			httpx.NewMockResponse(200, nil, []byte(`[
				{"id": "ev-1", "name": "answer", "time": "2016-03-15T12:00:00Z", "callState": "active", "callUri": "/v1/users/u-123/calls/c-abc"},
				{"id": "ev-2", "name": "hangup", "time": "2016-03-15T12:01:00Z", "cause": "NORMAL_CLEARING"}
			]`)),
		},
	})

	events, err := client.Calls.ListEvents(context.Background(), "c-abc")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, "answer", events[0].Name)
	assert.Equal(t, time.Date(2016, 3, 15, 12, 0, 0, 0, time.UTC), *events[0].Time)
	assert.Equal(t, map[string]any{"call_state": "active", "call_uri": "/v1/users/u-123/calls/c-abc"}, events[0].Data)

	assert.Equal(t, "hangup", events[1].Name)
	assert.Equal(t, map[string]any{"cause": "NORMAL_CLEARING"}, events[1].Data)
}

func TestGathers(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-abc/gather": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/calls/c-abc/gather/g-foo"}, nil),
		},
		baseURL + "/users/u-123/calls/c-abc/gather/g-foo": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "g-foo", "state": "started", "call": "https://api.catapult.inetwork.com/v1/users/u-123/calls/c-abc"}`)),
			httpx.NewMockResponse(200, nil, nil), // complete
		},
	})

	id, err := client.Calls.CreateGather(context.Background(), "c-abc", &catapult.CreateGatherData{
		MaxDigits: 5,
		Prompt:    &catapult.GatherPrompt{Sentence: "Enter your PIN", Gender: "female", Voice: "susan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "g-foo", id)

	gather, err := client.Calls.GetGather(context.Background(), "c-abc", "g-foo")
	require.NoError(t, err)
	assert.Equal(t, catapult.GatherStateStarted, gather.State)
	assert.Equal(t, "c-abc", gather.CallID())

	err = gather.Complete(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, catapult.GatherStateCompleted, gather.State)

	// completing again is a local no-op, no mock response is consumed
	err = gather.Complete(context.Background())
	assert.NoError(t, err)

	// out of range gather options are rejected locally
	_, err = client.Calls.CreateGather(context.Background(), "c-abc", &catapult.CreateGatherData{MaxDigits: 31})
	assert.IsType(t, &catapult.ValidationError{}, err)
}
