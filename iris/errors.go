package iris

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

// Error is a single error entry inside an API response
type Error struct {
	Code        string `xml:"Code"`
	Description string `xml:"Description"`
}

// APIError is a remote failure reported by the Dashboard API
type APIError struct {
	Status  int
	Code    string
	Message string
	Errors  []Error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errorEnvelope matches the error shapes the API embeds in response bodies,
// whatever the root element. Searches report a single Error child, orders an
// ErrorList of them.
type errorEnvelope struct {
	Code        string  `xml:"Error>Code"`
	Description string  `xml:"Error>Description"`
	Errors      []Error `xml:"ErrorList>Error"`
}

func parseErrors(status int, body []byte) *APIError {
	env := &errorEnvelope{}
	if err := xml.Unmarshal(body, env); err != nil {
		return nil
	}
	if env.Code != "" || env.Description != "" {
		return &APIError{Status: status, Code: env.Code, Message: env.Description}
	}
	if len(env.Errors) > 0 {
		return &APIError{Status: status, Code: env.Errors[0].Code, Message: env.Errors[0].Description, Errors: env.Errors}
	}
	return nil
}

// classifyError builds the error for a failed (>= 400) response
func classifyError(resp *http.Response, body []byte) error {
	if apiErr := parseErrors(resp.StatusCode, body); apiErr != nil {
		return apiErr
	}
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Code: fmt.Sprintf("%d", resp.StatusCode), Message: message}
}

// embeddedError catches failures the API reports inside a 200 response body, as
// searches do. Order responses carry their ErrorList alongside a status instead.
func embeddedError(status int, body []byte) error {
	env := &errorEnvelope{}
	if err := xml.Unmarshal(body, env); err != nil {
		return nil
	}
	if env.Code != "" || env.Description != "" {
		return &APIError{Status: status, Code: env.Code, Message: env.Description}
	}
	return nil
}
