package catapult

import (
	"context"
)

// Domain groups SIP endpoints under a DNS-unique name
type Domain struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Endpoints   string `json:"endpoints,omitempty"` // URL reference

	client *Client
}

// Refresh re-fetches this domain and overwrites the local fields
func (d *Domain) Refresh(ctx context.Context) error {
	fresh, err := d.client.Domains.Get(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *fresh
	return nil
}

// Delete removes this domain
func (d *Domain) Delete(ctx context.Context) error {
	return d.client.Domains.Delete(ctx, d.ID)
}

// ListEndpoints returns an iterator over the endpoints registered in this domain
func (d *Domain) ListEndpoints() *Iter[*Endpoint] {
	return d.client.Domains.ListEndpoints(d.ID)
}

// AddEndpoint creates a new endpoint in this domain
func (d *Domain) AddEndpoint(ctx context.Context, data *CreateEndpointData) (string, error) {
	return d.client.Domains.CreateEndpoint(ctx, d.ID, data)
}

// CreateDomainData is the body for creating a domain
type CreateDomainData struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// DomainService gives access to domains and the endpoints under them
type DomainService struct {
	client *Client
}

func (s *DomainService) path(parts ...string) string {
	return s.client.userPath("/domains" + joinPath(parts))
}

// Create creates a new domain and returns its id
func (s *DomainService) Create(ctx context.Context, data *CreateDomainData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(), data)
}

// Get fetches the domain with the passed in id
func (s *DomainService) Get(ctx context.Context, id string) (*Domain, error) {
	domain := &Domain{}
	if _, err := s.client.get(ctx, s.path(id), nil, domain); err != nil {
		return nil, err
	}
	domain.client = s.client
	return domain, nil
}

// List returns an iterator over this user's domains
func (s *DomainService) List() *Iter[*Domain] {
	return listIter(s.client, s.path(), nil, func(d *Domain) { d.client = s.client })
}

// Delete removes the domain with the passed in id
func (s *DomainService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, s.path(id))
}
