package catapult_test

import (
	"context"
	"testing"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumbers(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/phoneNumbers": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/phoneNumbers/n-1"}, nil),
		},
		baseURL + "/users/u-123/phoneNumbers/n-1": {
			httpx.NewMockResponse(200, nil, []byte(`{
				"id": "n-1",
				"number": "+19195551234",
				"numberState": "enabled",
				"price": "0.35",
				"application": "`+baseURL+`/users/u-123/applications/a-1"
			}`)),
			httpx.NewMockResponse(200, nil, nil), // release
		},
		baseURL + "/users/u-123/applications/a-1": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "a-1", "name": "voice app"}`)),
		},
	})

	id, err := client.PhoneNumbers.Allocate(context.Background(), &catapult.AllocateNumberData{Number: "+19195551234"})
	require.NoError(t, err)
	assert.Equal(t, "n-1", id)

	number, err := client.PhoneNumbers.Get(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, "+19195551234", number.Number)
	assert.Equal(t, "a-1", number.ApplicationID())

	app, err := number.GetApplication(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "voice app", app.Name)

	err = number.Release(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, catapult.NumberStateReleased, number.NumberState)
}

func TestRecordings(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/recordings/r-1": {
			httpx.NewMockResponse(200, nil, []byte(`{
				"id": "r-1",
				"state": "complete",
				"call": "`+baseURL+`/users/u-123/calls/c-abc",
				"media": "`+baseURL+`/users/u-123/media/c-abc-1.wav",
				"startTime": "2016-03-15T12:00:00Z",
				"endTime": "2016-03-15T12:01:00Z"
			}`)),
		},
		baseURL + "/users/u-123/recordings/r-1/transcriptions": {
			httpx.NewMockResponse(201, map[string]string{"Location": baseURL + "/users/u-123/recordings/r-1/transcriptions/tr-1"}, nil),
		},
		baseURL + "/users/u-123/recordings/r-1/transcriptions/tr-1": {
			httpx.NewMockResponse(200, nil, []byte(`{"id": "tr-1", "state": "completed", "text": "hello world", "textSize": 11}`)),
		},
	})

	rec, err := client.Recordings.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, catapult.RecordingStateComplete, rec.State)
	assert.Equal(t, "c-abc", rec.CallID())

	trID, err := client.Recordings.CreateTranscription(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "tr-1", trID)

	tr, err := client.Recordings.GetTranscription(context.Background(), "r-1", "tr-1")
	require.NoError(t, err)
	assert.Equal(t, "hello world", tr.Text)
}

func TestUserErrors(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/errors/ue-1": {
			httpx.NewMockResponse(200, nil, []byte(`{
				"id": "ue-1",
				"time": "2016-03-15T12:00:00Z",
				"category": "bad-request",
				"code": "callback-failed",
				"message": "Callback to http://example.com/cb failed",
				"details": [{"name": "callbackUrl", "value": "http://example.com/cb"}]
			}`)),
		},
	})

	ue, err := client.Errors.Get(context.Background(), "ue-1")
	require.NoError(t, err)
	assert.Equal(t, "callback-failed", ue.Code)
	assert.Equal(t, []catapult.ErrorDetail{{Name: "callbackUrl", Value: "http://example.com/cb"}}, ue.Details)
}
