package catapult

import (
	"context"
)

const defaultTokenExpiry = 3600

// Endpoint is a SIP registration identity within a domain
type Endpoint struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	DomainID      string               `json:"domainId,omitempty"`
	ApplicationID string               `json:"applicationId,omitempty"`
	Enabled       bool                 `json:"enabled,omitempty"`
	SipURI        string               `json:"sipUri,omitempty"`
	Credentials   *EndpointCredentials `json:"credentials,omitempty"`

	client *Client
}

// EndpointCredentials are the SIP credentials of an endpoint. The server requires
// passwords of at least 6 characters, which the client simply forwards.
type EndpointCredentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Realm    string `json:"realm,omitempty"`
}

// Refresh re-fetches this endpoint and overwrites the local fields
func (e *Endpoint) Refresh(ctx context.Context) error {
	fresh, err := e.client.Domains.GetEndpoint(ctx, e.DomainID, e.ID)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Delete removes this endpoint from its domain
func (e *Endpoint) Delete(ctx context.Context) error {
	return e.client.Domains.DeleteEndpoint(ctx, e.DomainID, e.ID)
}

// CreateToken creates a short-lived auth token for this endpoint
func (e *Endpoint) CreateToken(ctx context.Context, expires int) (*EndpointToken, error) {
	return e.client.Domains.CreateEndpointToken(ctx, e.DomainID, e.ID, expires)
}

// GetApplication fetches the application this endpoint is bound to
func (e *Endpoint) GetApplication(ctx context.Context) (*Application, error) {
	if e.ApplicationID == "" {
		return nil, &ValidationError{Message: "endpoint isn't bound to an application"}
	}
	return e.client.Applications.Get(ctx, e.ApplicationID)
}

// EndpointToken is a short-lived bearer token for an endpoint
type EndpointToken struct {
	Token   string `json:"token"`
	Expires int    `json:"expires"`
}

// CreateEndpointData is the body for creating an endpoint
type CreateEndpointData struct {
	Name          string               `json:"name" validate:"required"`
	Description   string               `json:"description,omitempty"`
	ApplicationID string               `json:"applicationId,omitempty"`
	Enabled       *bool                `json:"enabled,omitempty"`
	Credentials   *EndpointCredentials `json:"credentials" validate:"required"`
}

// UpdateEndpointData holds the patchable fields of an endpoint
type UpdateEndpointData struct {
	Description   string               `json:"description,omitempty"`
	ApplicationID string               `json:"applicationId,omitempty"`
	Enabled       *bool                `json:"enabled,omitempty"`
	Credentials   *EndpointCredentials `json:"credentials,omitempty"`
}

func (s *DomainService) endpointPath(domainID string, parts ...string) string {
	return s.path(append([]string{domainID, "endpoints"}, parts...)...)
}

// CreateEndpoint creates a new endpoint in the domain and returns its id
func (s *DomainService) CreateEndpoint(ctx context.Context, domainID string, data *CreateEndpointData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	if data.Credentials.Password == "" {
		return "", &ValidationError{Message: "endpoint credentials require a password"}
	}
	return s.client.post(ctx, s.endpointPath(domainID), data)
}

// GetEndpoint fetches a single endpoint in the domain
func (s *DomainService) GetEndpoint(ctx context.Context, domainID, id string) (*Endpoint, error) {
	endpoint := &Endpoint{}
	if _, err := s.client.get(ctx, s.endpointPath(domainID, id), nil, endpoint); err != nil {
		return nil, err
	}
	endpoint.client = s.client
	if endpoint.DomainID == "" {
		endpoint.DomainID = domainID
	}
	return endpoint, nil
}

// ListEndpoints returns an iterator over the endpoints in the domain
func (s *DomainService) ListEndpoints(domainID string) *Iter[*Endpoint] {
	return listIter(s.client, s.endpointPath(domainID), nil, func(e *Endpoint) {
		e.client = s.client
		if e.DomainID == "" {
			e.DomainID = domainID
		}
	})
}

// UpdateEndpoint patches the endpoint with the passed in fields
func (s *DomainService) UpdateEndpoint(ctx context.Context, domainID, id string, data *UpdateEndpointData) error {
	if err := validateData(data); err != nil {
		return err
	}
	_, err := s.client.post(ctx, s.endpointPath(domainID, id), data)
	return err
}

// DeleteEndpoint removes the endpoint from the domain
func (s *DomainService) DeleteEndpoint(ctx context.Context, domainID, id string) error {
	return s.client.delete(ctx, s.endpointPath(domainID, id))
}

// CreateEndpointToken creates a short-lived auth token for the endpoint, expiry
// defaults to 3600 seconds
func (s *DomainService) CreateEndpointToken(ctx context.Context, domainID, id string, expires int) (*EndpointToken, error) {
	if expires <= 0 {
		expires = defaultTokenExpiry
	}
	token := &EndpointToken{}
	if _, err := s.client.postJSON(ctx, s.endpointPath(domainID, id, "tokens"), map[string]any{"expires": expires}, token); err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteEndpointToken invalidates a previously created endpoint token
func (s *DomainService) DeleteEndpointToken(ctx context.Context, domainID, id, token string) error {
	return s.client.delete(ctx, s.endpointPath(domainID, id, "tokens", token))
}
