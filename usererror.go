package catapult

import (
	"context"
	"time"
)

// UserError is an error the platform recorded against this user, e.g. a callback
// that couldn't be delivered
type UserError struct {
	ID       string        `json:"id"`
	Time     *time.Time    `json:"time,omitempty"`
	Category string        `json:"category,omitempty"`
	Code     string        `json:"code,omitempty"`
	Message  string        `json:"message,omitempty"`
	Details  []ErrorDetail `json:"details,omitempty"`
}

// UserErrorService reads the errors recorded against this user
type UserErrorService struct {
	client *Client
}

func (s *UserErrorService) path(parts ...string) string {
	return s.client.userPath("/errors" + joinPath(parts))
}

// Get fetches the user error with the passed in id
func (s *UserErrorService) Get(ctx context.Context, id string) (*UserError, error) {
	ue := &UserError{}
	if _, err := s.client.get(ctx, s.path(id), nil, ue); err != nil {
		return nil, err
	}
	return ue, nil
}

// List returns an iterator over the errors recorded against this user
func (s *UserErrorService) List() *Iter[*UserError] {
	return listIter[*UserError](s.client, s.path(), nil, nil)
}
