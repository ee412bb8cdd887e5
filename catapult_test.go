package catapult_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://api.catapult.inetwork.com/v1"

func newTestClient(t *testing.T, mocks map[string][]*httpx.MockResponse) *catapult.Client {
	t.Helper()

	client, err := catapult.NewClient(
		&catapult.Credentials{UserID: "u-123", APIToken: "tok", APISecret: "sec"},
		&http.Client{Transport: httpx.NewMockRequestor(mocks)},
	)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := catapult.NewClient(nil, nil)
	assert.EqualError(t, err, "missing user id, token or secret in credentials")
	assert.IsType(t, &catapult.ValidationError{}, err)

	_, err = catapult.NewClient(&catapult.Credentials{UserID: "u-123", APIToken: "tok"}, nil)
	assert.EqualError(t, err, "missing user id, token or secret in credentials")

	client, err := catapult.NewClient(&catapult.Credentials{UserID: "u-123", APIToken: "tok", APISecret: "sec"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "u-123", client.UserID())
}

func TestAPIErrors(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/calls/c-missing": {
			httpx.NewMockResponse(404, map[string]string{"Content-Type": "application/json"},
				[]byte(`{"category": "not-found", "code": "call-not-found", "message": "The call c-missing could not be found", "details": [{"name": "requestPath", "value": "users/u-123/calls/c-missing"}]}`)),
		},
		baseURL + "/users/u-123/calls/c-html": {
			httpx.NewMockResponse(503, map[string]string{"Content-Type": "text/html"}, []byte(`<html>service unavailable</html>`)),
		},
	})

	_, err := client.Calls.Get(context.Background(), "c-missing")
	require.Error(t, err)

	apiErr := &catapult.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "call-not-found", apiErr.Code)
	assert.Equal(t, "The call c-missing could not be found", apiErr.Message)
	assert.Equal(t, []catapult.ErrorDetail{{Name: "requestPath", Value: "users/u-123/calls/c-missing"}}, apiErr.Details)
	assert.Equal(t, "call-not-found: The call c-missing could not be found", apiErr.Error())

	_, err = client.Calls.Get(context.Background(), "c-html")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.Status)
	assert.Equal(t, "503", apiErr.Code)
	assert.Equal(t, `<html>service unavailable</html>`, apiErr.Message)
}
