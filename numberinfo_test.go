package catapult_test

import (
	"context"
	"testing"
	"time"

	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberInfo(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		// the leading + must reach the server as %2B
		baseURL + "/phoneNumbers/numberInfo/%2B15551234567": {
			httpx.NewMockResponse(200, nil, []byte(`{"name": "ACME INC", "number": "+15551234567", "created": "2013-09-23T16:42:18Z", "updated": "2013-09-23T16:42:18Z"}`)),
			httpx.NewMockResponse(200, nil, []byte(`{"name": "ACME INC", "number": "+15551234567"}`)),
		},
	})

	info, err := client.NumberInfo.Get(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "ACME INC", info.Name)
	assert.Equal(t, "+15551234567", info.Number)
	assert.Equal(t, time.Date(2013, 9, 23, 16, 42, 18, 0, time.UTC), *info.Created)

	// already-encoded input isn't encoded again
	info, err = client.NumberInfo.Get(context.Background(), "%2B15551234567")
	require.NoError(t, err)
	assert.Equal(t, "ACME INC", info.Name)
}
