package catapult

import (
	"context"
)

// Application owns the callback configuration shared by numbers and endpoints
type Application struct {
	ID                                 string `json:"id"`
	Name                               string `json:"name"`
	IncomingCallURL                    string `json:"incomingCallUrl,omitempty"`
	IncomingCallURLCallbackTimeout     int    `json:"incomingCallUrlCallbackTimeout,omitempty"`
	IncomingCallFallbackURL            string `json:"incomingCallFallbackUrl,omitempty"`
	IncomingMessageURL                 string `json:"incomingMessageUrl,omitempty"`
	IncomingMessageURLCallbackTimeout  int    `json:"incomingMessageUrlCallbackTimeout,omitempty"`
	IncomingMessageFallbackURL         string `json:"incomingMessageFallbackUrl,omitempty"`
	CallbackHTTPMethod                 string `json:"callbackHttpMethod,omitempty"`
	AutoAnswer                         bool   `json:"autoAnswer,omitempty"`

	client *Client
}

// Refresh re-fetches this application and overwrites the local fields
func (a *Application) Refresh(ctx context.Context) error {
	fresh, err := a.client.Applications.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *fresh
	return nil
}

// Delete removes this application
func (a *Application) Delete(ctx context.Context) error {
	return a.client.Applications.Delete(ctx, a.ID)
}

// ApplicationData holds the updatable fields of an application. Fields not listed
// here can't be patched, which is how the API's ignore-unknowns rule is expressed.
type ApplicationData struct {
	Name                              string `json:"name,omitempty"`
	IncomingCallURL                   string `json:"incomingCallUrl,omitempty"`
	IncomingCallURLCallbackTimeout    int    `json:"incomingCallUrlCallbackTimeout,omitempty"`
	IncomingCallFallbackURL           string `json:"incomingCallFallbackUrl,omitempty"`
	IncomingMessageURL                string `json:"incomingMessageUrl,omitempty"`
	IncomingMessageURLCallbackTimeout int    `json:"incomingMessageUrlCallbackTimeout,omitempty"`
	IncomingMessageFallbackURL        string `json:"incomingMessageFallbackUrl,omitempty"`
	CallbackHTTPMethod                string `json:"callbackHttpMethod,omitempty" validate:"omitempty,oneof=get post GET POST"`
	AutoAnswer                        *bool  `json:"autoAnswer,omitempty"`
}

// ApplicationListParams are the paging params accepted when listing applications
type ApplicationListParams struct {
	Page int `schema:"page,omitempty"`
	Size int `schema:"size,omitempty" validate:"omitempty,max=1000"`
}

// ApplicationService gives access to the application resource
type ApplicationService struct {
	client *Client
}

func (s *ApplicationService) path(parts ...string) string {
	return s.client.userPath("/applications" + joinPath(parts))
}

// Create creates a new application and returns its id
func (s *ApplicationService) Create(ctx context.Context, data *ApplicationData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	if data.Name == "" {
		return "", &ValidationError{Message: "application name is required"}
	}
	return s.client.post(ctx, s.path(), data)
}

// Get fetches the application with the passed in id
func (s *ApplicationService) Get(ctx context.Context, id string) (*Application, error) {
	app := &Application{}
	if _, err := s.client.get(ctx, s.path(id), nil, app); err != nil {
		return nil, err
	}
	app.client = s.client
	return app, nil
}

// List returns an iterator over this user's applications
func (s *ApplicationService) List(params *ApplicationListParams) *Iter[*Application] {
	query, err := encodeQuery(params)
	if err != nil {
		return &Iter[*Application]{err: err}
	}
	return listIter(s.client, s.path(), query, func(a *Application) { a.client = s.client })
}

// ListPages returns a page iterator over this user's applications with the passed
// in page size
func (s *ApplicationService) ListPages(size int) *PageIter[*Application] {
	return pageIter(s.client, s.path(), nil, size, func(a *Application) { a.client = s.client })
}

// Update patches the application, only the fields settable in data are sent
func (s *ApplicationService) Update(ctx context.Context, id string, data *ApplicationData) error {
	if err := validateData(data); err != nil {
		return err
	}
	_, err := s.client.post(ctx, s.path(id), data)
	return err
}

// Delete removes the application with the passed in id
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, s.path(id))
}
