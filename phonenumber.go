package catapult

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// number states
const (
	NumberStateEnabled   = "enabled"
	NumberStateReleased  = "released"
	NumberStateAvailable = "available"
)

// PhoneNumber is a number allocated to this user
type PhoneNumber struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	NationalNumber string          `json:"nationalNumber,omitempty"`
	Name           string          `json:"name,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	Application    string          `json:"application,omitempty"` // URL reference
	FallbackNumber string          `json:"fallbackNumber,omitempty"`
	Price          decimal.Decimal `json:"price"`
	NumberState    string          `json:"numberState,omitempty"`
	CreatedTime    *time.Time      `json:"createdTime,omitempty"`

	client *Client
}

// ApplicationID returns the id of the application this number is bound to, or empty
func (n *PhoneNumber) ApplicationID() string {
	if n.Application == "" {
		return ""
	}
	return lastSegment(n.Application)
}

// GetApplication fetches the application this number is bound to
func (n *PhoneNumber) GetApplication(ctx context.Context) (*Application, error) {
	id := n.ApplicationID()
	if id == "" {
		return nil, &ValidationError{Message: "number isn't bound to an application"}
	}
	return n.client.Applications.Get(ctx, id)
}

// Refresh re-fetches this number and overwrites the local fields
func (n *PhoneNumber) Refresh(ctx context.Context) error {
	fresh, err := n.client.PhoneNumbers.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = *fresh
	return nil
}

// Release releases this number back to the platform. Released numbers are not
// immediately reusable.
func (n *PhoneNumber) Release(ctx context.Context) error {
	if err := n.client.PhoneNumbers.Delete(ctx, n.ID); err != nil {
		return err
	}
	n.NumberState = NumberStateReleased
	return nil
}

// AllocateNumberData is the body for allocating a specific number
type AllocateNumberData struct {
	Number         string `json:"number" validate:"required"`
	Name           string `json:"name,omitempty"`
	ApplicationID  string `json:"applicationId,omitempty"`
	FallbackNumber string `json:"fallbackNumber,omitempty"`
}

// UpdateNumberData holds the patchable fields of an allocated number
type UpdateNumberData struct {
	Name           string `json:"name,omitempty"`
	ApplicationID  string `json:"applicationId,omitempty"`
	FallbackNumber string `json:"fallbackNumber,omitempty"`
}

// PhoneNumberListParams are the filters accepted when listing numbers
type PhoneNumberListParams struct {
	ApplicationID string `schema:"applicationId,omitempty"`
	State         string `schema:"state,omitempty"`
	Name          string `schema:"name,omitempty"`
	City          string `schema:"city,omitempty"`
	NumberState   string `schema:"numberState,omitempty"`
	Size          int    `schema:"size,omitempty" validate:"omitempty,max=1000"`
}

// PhoneNumberService gives access to this user's allocated numbers
type PhoneNumberService struct {
	client *Client
}

func (s *PhoneNumberService) path(parts ...string) string {
	return s.client.userPath("/phoneNumbers" + joinPath(parts))
}

// Allocate allocates the passed in number to this user and returns its id
func (s *PhoneNumberService) Allocate(ctx context.Context, data *AllocateNumberData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(), data)
}

// Get fetches the allocated number with the passed in id
func (s *PhoneNumberService) Get(ctx context.Context, id string) (*PhoneNumber, error) {
	number := &PhoneNumber{}
	if _, err := s.client.get(ctx, s.path(id), nil, number); err != nil {
		return nil, err
	}
	number.client = s.client
	return number, nil
}

// List returns an iterator over this user's numbers
func (s *PhoneNumberService) List(params *PhoneNumberListParams) *Iter[*PhoneNumber] {
	query, err := encodeQuery(params)
	if err != nil {
		return &Iter[*PhoneNumber]{err: err}
	}
	return listIter(s.client, s.path(), query, func(n *PhoneNumber) { n.client = s.client })
}

// Update patches the number's name, application binding or fallback number
func (s *PhoneNumberService) Update(ctx context.Context, id string, data *UpdateNumberData) error {
	_, err := s.client.post(ctx, s.path(id), data)
	return err
}

// Delete releases the number, it is not immediately reusable
func (s *PhoneNumberService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, s.path(id))
}
