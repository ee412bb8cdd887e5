package catapult

import (
	"context"
	"time"
)

// gather states
const (
	GatherStateStarted   = "started"
	GatherStateCompleted = "completed"
)

// Gather is a DTMF collection running against a call. Once completed it is terminal
// and cannot be resumed.
type Gather struct {
	ID            string     `json:"id"`
	State         string     `json:"state"`
	Reason        string     `json:"reason,omitempty"`
	Digits        string     `json:"digits,omitempty"`
	CreatedTime   *time.Time `json:"createdTime,omitempty"`
	CompletedTime *time.Time `json:"completedTime,omitempty"`
	Call          string     `json:"call,omitempty"` // URL reference

	client *Client
	callID string
}

// CallID returns the id of the call this gather runs against
func (g *Gather) CallID() string {
	if g.Call != "" {
		return lastSegment(g.Call)
	}
	return g.callID
}

// Refresh re-fetches this gather and overwrites the local fields
func (g *Gather) Refresh(ctx context.Context) error {
	fresh, err := g.client.Calls.GetGather(ctx, g.CallID(), g.ID)
	if err != nil {
		return err
	}
	fresh.callID = g.callID
	*g = *fresh
	return nil
}

// Complete stops digit collection. Completing an already completed gather is a
// local no-op.
func (g *Gather) Complete(ctx context.Context) error {
	if g.State == GatherStateCompleted {
		return nil
	}
	if err := g.client.Calls.CompleteGather(ctx, g.CallID(), g.ID); err != nil {
		return err
	}
	g.State = GatherStateCompleted
	return nil
}

// GatherPrompt is the audio played to the caller while digits are collected
type GatherPrompt struct {
	Sentence    string `json:"sentence,omitempty"`
	FileURL     string `json:"fileUrl,omitempty"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Locale      string `json:"locale,omitempty"`
	Voice       string `json:"voice,omitempty"`
	LoopEnabled bool   `json:"loopEnabled,omitempty"`
	Bargeable   bool   `json:"bargeable,omitempty"`
}

// CreateGatherData configures a new gather. The inter-digit timeout defaults to 5
// seconds server-side and may be at most 30.
type CreateGatherData struct {
	MaxDigits         int           `json:"maxDigits,omitempty" validate:"omitempty,max=30"`
	InterDigitTimeout int           `json:"interDigitTimeout,omitempty" validate:"omitempty,min=1,max=30"`
	TerminatingDigits string        `json:"terminatingDigits,omitempty"`
	Tag               string        `json:"tag,omitempty"`
	Prompt            *GatherPrompt `json:"prompt,omitempty"`
}

// CreateGather starts collecting digits on the call and returns the gather id
func (s *CallService) CreateGather(ctx context.Context, callID string, data *CreateGatherData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(callID, "gather"), data)
}

// GetGather fetches the state and collected digits of a gather
func (s *CallService) GetGather(ctx context.Context, callID, gatherID string) (*Gather, error) {
	gather := &Gather{}
	if _, err := s.client.get(ctx, s.path(callID, "gather", gatherID), nil, gather); err != nil {
		return nil, err
	}
	gather.client = s.client
	gather.callID = callID
	return gather, nil
}

// CompleteGather stops digit collection on the passed in gather
func (s *CallService) CompleteGather(ctx context.Context, callID, gatherID string) error {
	_, err := s.client.post(ctx, s.path(callID, "gather", gatherID), map[string]any{"state": GatherStateCompleted})
	return err
}
