// Package iris is a client for the Dashboard number-ordering API, which lives on a
// different host than the Catapult API and exchanges XML instead of JSON.
package iris

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nyaruka/gocommon/httpx"
)

// DefaultBaseURL is the default base URL for the Dashboard API (public for testing overriding)
var DefaultBaseURL = `https://dashboard.bandwidth.com:443/v1.0/`

const defaultTimeout = 60 * time.Second

// Credentials are what the client needs to authenticate against the Dashboard API.
// Unlike the Catapult API these are a plain username and password, with the account
// id spliced into every path.
type Credentials struct {
	AccountID string `validate:"required"`
	Username  string `validate:"required"`
	Password  string `validate:"required"`
}

// Client is a client for the Dashboard API. It is read-only after construction and
// safe to share between goroutines.
type Client struct {
	credentials *Credentials
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a new client for the passed in credentials. If httpClient is nil
// a default client with a 60 second timeout is used.
func NewClient(credentials *Credentials, httpClient *http.Client) (*Client, error) {
	if credentials == nil || credentials.AccountID == "" || credentials.Username == "" || credentials.Password == "" {
		return nil, fmt.Errorf("missing account id, username or password in credentials")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		credentials: credentials,
		baseURL:     strings.TrimRight(DefaultBaseURL, "/"),
		httpClient:  httpClient,
	}, nil
}

// SetBaseURL overrides the API base URL, e.g. to point at a sandbox
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// accountPath returns the per-account form of the passed in relative path
func (c *Client) accountPath(path string) string {
	return "/accounts/" + c.credentials.AccountID + path
}

// request dispatches an authenticated request, serializing body as XML when given and
// unmarshaling the XML response into out when given
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	sendURL := c.baseURL + path
	if len(query) > 0 {
		sendURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := xml.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request to %s: %w", sendURL, err)
		}
		bodyReader = bytes.NewReader(append([]byte(xml.Header), payload...))
	}

	req, err := http.NewRequestWithContext(ctx, method, sendURL, bodyReader)
	if err != nil {
		return fmt.Errorf("error creating request to %s: %w", sendURL, err)
	}
	req.Header.Set("Accept", "application/xml")
	if body != nil {
		req.Header.Set("Content-Type", "application/xml")
	}
	req.SetBasicAuth(c.credentials.Username, c.credentials.Password)

	trace, err := httpx.DoTrace(c.httpClient, req, nil, nil, -1)
	if err != nil {
		return fmt.Errorf("error making request to %s: %w", sendURL, err)
	}

	slog.Debug("dashboard api request", "method", method, "url", sendURL, "status", trace.Response.StatusCode)

	if trace.Response.StatusCode >= 400 {
		return classifyError(trace.Response, trace.ResponseBody)
	}
	if apiErr := embeddedError(trace.Response.StatusCode, trace.ResponseBody); apiErr != nil {
		return apiErr
	}

	if out != nil && len(trace.ResponseBody) > 0 {
		if err := xml.Unmarshal(trace.ResponseBody, out); err != nil {
			return fmt.Errorf("error parsing response from %s: %w", sendURL, err)
		}
	}
	return nil
}

// Site is a location (sub-account) that numbers are ordered into
type Site struct {
	ID          string `xml:"Id"`
	Name        string `xml:"Name"`
	Description string `xml:"Description,omitempty"`
}

type sitesResponse struct {
	Sites []Site `xml:"Sites>Site"`
}

// Sites fetches the sites configured on this account
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	resp := &sitesResponse{}
	if err := c.request(ctx, http.MethodGet, c.accountPath("/sites"), nil, nil, resp); err != nil {
		return nil, err
	}
	return resp.Sites, nil
}

// SearchParams are the filters for an available number search. AreaCode, State and
// Zip narrow the search geographically, Quantity caps how many numbers come back.
type SearchParams struct {
	AreaCode string
	State    string
	Zip      string
	Quantity int
}

func (p *SearchParams) values() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}
	if p.AreaCode != "" {
		values.Set("areaCode", p.AreaCode)
	}
	if p.State != "" {
		values.Set("state", p.State)
	}
	if p.Zip != "" {
		values.Set("zip", p.Zip)
	}
	if p.Quantity > 0 {
		values.Set("quantity", fmt.Sprintf("%d", p.Quantity))
	}
	return values
}

type searchResult struct {
	ResultCount      int      `xml:"ResultCount"`
	TelephoneNumbers []string `xml:"TelephoneNumberList>TelephoneNumber"`
}

// AvailableNumbers searches the account's inventory for numbers matching the passed
// in filters
func (c *Client) AvailableNumbers(ctx context.Context, params *SearchParams) ([]string, error) {
	resp := &searchResult{}
	if err := c.request(ctx, http.MethodGet, c.accountPath("/availableNumbers"), params.values(), nil, resp); err != nil {
		return nil, err
	}
	return resp.TelephoneNumbers, nil
}
