package catapult

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	jsonResp := &http.Response{
		StatusCode: 400,
		Status:     "400 BAD REQUEST",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
	err := classifyError(jsonResp, []byte(`{"category": "bad-request", "code": "missing-property", "message": "The 'from' property is required", "details": [{"name": "requestMethod", "value": "POST"}]}`))

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "missing-property", apiErr.Code)
	assert.Equal(t, "The 'from' property is required", apiErr.Message)
	assert.Equal(t, []ErrorDetail{{Name: "requestMethod", Value: "POST"}}, apiErr.Details)

	// JSON error without a code falls back to the stringified status
	err = classifyError(jsonResp, []byte(`{"message": "no code here"}`))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "400", apiErr.Code)
	assert.Equal(t, "no code here", apiErr.Message)

	// non-JSON bodies are truncated
	textResp := &http.Response{StatusCode: 503, Status: "503 SERVICE UNAVAILABLE", Header: http.Header{}}
	err = classifyError(textResp, []byte(strings.Repeat("x", 200)))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "503", apiErr.Code)
	assert.Equal(t, strings.Repeat("x", 79), apiErr.Message)

	// empty bodies fall back to the status line
	err = classifyError(textResp, nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "503 SERVICE UNAVAILABLE", apiErr.Message)
}

func TestValidateData(t *testing.T) {
	err := validateData(&CreateCallData{To: "+15551234567"})
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	assert.NoError(t, validateData(&CreateCallData{From: "+15559876543", To: "+15551234567"}))
}
