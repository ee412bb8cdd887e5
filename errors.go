package catapult

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/go-playground/validator/v10"
)

// how much of a non-JSON error body we keep as the message
const maxErrorBodyChars = 79

// APIError is an error response from the platform, i.e. any response with a
// status of 400 or above.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []ErrorDetail
}

// ErrorDetail is a name/value pair giving more context on an API error
type ErrorDetail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationError is a local error raised before any HTTP traffic, e.g. for
// mutually exclusive query parameters or a re-committed batch sender.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// classifyError builds an APIError from a non-2xx response. JSON bodies contribute
// their message and code fields, anything else contributes a truncated body as the
// message with the status standing in as the code.
func classifyError(resp *http.Response, body []byte) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: strconv.Itoa(resp.StatusCode)}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(body) > 0 {
		if message, err := jsonparser.GetString(body, "message"); err == nil {
			apiErr.Message = message
			if code, err := jsonparser.GetString(body, "code"); err == nil && code != "" {
				apiErr.Code = code
			}
			jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
				name, _ := jsonparser.GetString(value, "name")
				val, _ := jsonparser.GetString(value, "value")
				apiErr.Details = append(apiErr.Details, ErrorDetail{Name: name, Value: val})
			}, "details")
			return apiErr
		}
	}

	message := string(body)
	if len(message) > maxErrorBodyChars {
		message = message[:maxErrorBodyChars]
	}
	if message == "" {
		message = resp.Status
	}
	apiErr.Message = message
	return apiErr
}

var validate = validator.New()

// validateData checks struct tags on a request struct, surfacing failures as local
// validation errors so callers can tell programmer error from remote failure
func validateData(data any) error {
	if err := validate.Struct(data); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}
