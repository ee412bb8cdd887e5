package catapult

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKVersion is reported in the User-Agent header of every request
const SDKVersion = "1.0.0"

// DefaultBaseURL is the default base URL for the Catapult API (public for testing overriding)
var DefaultBaseURL = `https://api.catapult.inetwork.com`

// DefaultAPIVersion is the version label joined into every relative path
const DefaultAPIVersion = "v1"

const defaultTimeout = 60 * time.Second

// Credentials are what the client needs to authenticate against the API. UserID is
// injected into every per-user path, the token and secret become basic auth.
type Credentials struct {
	UserID    string `validate:"required" help:"the Catapult user id injected into per-user paths"`
	APIToken  string `validate:"required" help:"the API token used as the basic auth username"`
	APISecret string `validate:"required" help:"the API secret used as the basic auth password"`
}

// Client is a client for the Catapult REST API. It is read-only after construction
// and safe to share between goroutines.
type Client struct {
	credentials *Credentials
	baseURL     string
	apiVersion  string
	httpClient  *http.Client
	userAgent   string

	Account          *AccountService
	Applications     *ApplicationService
	AvailableNumbers *AvailableNumberService
	Bridges          *BridgeService
	Calls            *CallService
	Conferences      *ConferenceService
	Domains          *DomainService
	Errors           *UserErrorService
	Media            *MediaService
	Messages         *MessageService
	NumberInfo       *NumberInfoService
	PhoneNumbers     *PhoneNumberService
	Recordings       *RecordingService
}

// NewClient creates a new client for the passed in credentials. If httpClient is nil
// a default client with a 60 second timeout is used.
func NewClient(credentials *Credentials, httpClient *http.Client) (*Client, error) {
	if credentials == nil || credentials.UserID == "" || credentials.APIToken == "" || credentials.APISecret == "" {
		return nil, &ValidationError{Message: "missing user id, token or secret in credentials"}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		credentials: credentials,
		baseURL:     DefaultBaseURL,
		apiVersion:  DefaultAPIVersion,
		httpClient:  httpClient,
		userAgent:   fmt.Sprintf("GoSDK_v%s", SDKVersion),
	}

	c.Account = &AccountService{client: c}
	c.Applications = &ApplicationService{client: c}
	c.AvailableNumbers = &AvailableNumberService{client: c}
	c.Bridges = &BridgeService{client: c}
	c.Calls = &CallService{client: c}
	c.Conferences = &ConferenceService{client: c}
	c.Domains = &DomainService{client: c}
	c.Errors = &UserErrorService{client: c}
	c.Media = &MediaService{client: c}
	c.Messages = &MessageService{client: c}
	c.NumberInfo = &NumberInfoService{client: c}
	c.PhoneNumbers = &PhoneNumberService{client: c}
	c.Recordings = &RecordingService{client: c}

	return c, nil
}

// SetBaseURL overrides the API base URL, e.g. to point at a sandbox
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// UserID returns the user id these credentials are bound to
func (c *Client) UserID() string {
	return c.credentials.UserID
}

// userPath returns the per-user form of the passed in relative path
func (c *Client) userPath(path string) string {
	return "/users/" + c.credentials.UserID + path
}

// lastSegment extracts the final path segment of a URL, which is how the API
// communicates ids of newly created resources via Location headers
func lastSegment(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
