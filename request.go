package catapult

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/nyaruka/gocommon/jsonx"
)

// apiResponse is what the request engine hands back for a completed request
type apiResponse struct {
	status int
	body   []byte
	header http.Header
	id     string // final segment of the Location header if one was returned
}

// url joins a relative path onto the base URL and version, absolute URLs pass through
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + "/" + c.apiVersion + path
	}
	return path
}

// request dispatches an authenticated request and parses the response. Map bodies are
// translated to the API's camelCase naming before serialization, byte slice bodies pass
// through untouched. Caller headers override defaults except for authorization.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string) (*apiResponse, error) {
	sendURL := c.url(path)
	if len(query) > 0 {
		sendURL += "?" + query.Encode()
	}

	var payload []byte
	contentType := ""
	switch b := body.(type) {
	case nil:
	case []byte:
		payload = b
	case map[string]any:
		payload = jsonx.MustMarshal(toExternal(b))
		contentType = "application/json"
	default:
		payload = jsonx.MustMarshal(body)
		contentType = "application/json"
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, sendURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request to %s: %w", sendURL, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBasicAuth(c.credentials.APIToken, c.credentials.APISecret)

	trace, err := httpx.DoTrace(c.httpClient, req, nil, nil, -1)
	if err != nil {
		return nil, fmt.Errorf("error making request to %s: %w", sendURL, err)
	}

	slog.Debug("api request", "method", method, "url", sendURL, "status", trace.Response.StatusCode)

	resp := &apiResponse{
		status: trace.Response.StatusCode,
		body:   trace.ResponseBody,
		header: trace.Response.Header,
	}
	if loc := trace.Response.Header.Get("Location"); loc != "" {
		resp.id = lastSegment(loc)
	}

	if trace.Response.StatusCode >= 400 {
		return resp, classifyError(trace.Response, trace.ResponseBody)
	}
	return resp, nil
}

// get fetches the passed in path and unmarshals the JSON response into out when given
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*apiResponse, error) {
	resp, err := c.request(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return resp, err
	}
	if out != nil && len(resp.body) > 0 {
		if err := jsonx.Unmarshal(resp.body, out); err != nil {
			return resp, fmt.Errorf("error parsing response from %s: %w", path, err)
		}
	}
	return resp, nil
}

// post sends the passed in body and returns the id extracted from the Location header
func (c *Client) post(ctx context.Context, path string, body any) (string, error) {
	resp, err := c.request(ctx, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return "", err
	}
	return resp.id, nil
}

// postJSON sends the passed in body and unmarshals the JSON response into out when given
func (c *Client) postJSON(ctx context.Context, path string, body, out any) (*apiResponse, error) {
	resp, err := c.request(ctx, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return resp, err
	}
	if out != nil && len(resp.body) > 0 {
		if err := jsonx.Unmarshal(resp.body, out); err != nil {
			return resp, fmt.Errorf("error parsing response from %s: %w", path, err)
		}
	}
	return resp, nil
}

// delete issues a DELETE for the passed in path
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.request(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// stream dispatches a request whose response body is handed to the caller unread, for
// media downloads. The caller owns the returned body and must close it.
func (c *Client) stream(ctx context.Context, method, path string, body io.Reader, contentType string) (io.ReadCloser, string, error) {
	sendURL := c.url(path)

	req, err := http.NewRequestWithContext(ctx, method, sendURL, body)
	if err != nil {
		return nil, "", fmt.Errorf("error creating request to %s: %w", sendURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.SetBasicAuth(c.credentials.APIToken, c.credentials.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("error making request to %s: %w", sendURL, err)
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", classifyError(resp, respBody)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

var queryEncoder = schema.NewEncoder()

// encodeQuery turns a tagged params struct into query values, nil params give empty values
func encodeQuery(params any) (url.Values, error) {
	values := url.Values{}
	if params == nil {
		return values, nil
	}
	v := reflect.ValueOf(params)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return values, nil
		}
		params = v.Elem().Interface()
	}
	if err := queryEncoder.Encode(params, values); err != nil {
		return nil, fmt.Errorf("error encoding query params: %w", err)
	}
	return values, nil
}
