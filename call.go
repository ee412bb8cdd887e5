package catapult

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/gocommon/jsonx"
)

// call states as reported by the platform
const (
	CallStateStarted      = "started"
	CallStateActive       = "active"
	CallStateRejected     = "rejected"
	CallStateCompleted    = "completed"
	CallStateTransferring = "transferring"
)

const defaultCallTimeout = 30

const dtmfAlphabet = "0123456789*#ABCD"

// Call is a phone call, either placed by the client or received by the platform.
// The local instance is a projection of server-side state and can be refreshed.
type Call struct {
	ID                   string     `json:"id"`
	Direction            string     `json:"direction"`
	From                 string     `json:"from"`
	To                   string     `json:"to"`
	State                string     `json:"state"`
	StartTime            *time.Time `json:"startTime,omitempty"`
	ActiveTime           *time.Time `json:"activeTime,omitempty"`
	EndTime              *time.Time `json:"endTime,omitempty"`
	CallbackURL          string     `json:"callbackUrl,omitempty"`
	ChargeableDuration   int        `json:"chargeableDuration,omitempty"`
	RecordingEnabled     bool       `json:"recordingEnabled,omitempty"`
	RecordingFileFormat  string     `json:"recordingFileFormat,omitempty"`
	TranscriptionEnabled bool       `json:"transcriptionEnabled,omitempty"`
	Bridge               string     `json:"bridge,omitempty"` // URL reference
	Events               string     `json:"events,omitempty"` // URL reference
	Tag                  string     `json:"tag,omitempty"`

	client *Client
}

// BridgeID returns the id of the bridge this call belongs to, or empty string
func (c *Call) BridgeID() string {
	if c.Bridge == "" {
		return ""
	}
	return lastSegment(c.Bridge)
}

// GetBridge fetches the bridge this call belongs to
func (c *Call) GetBridge(ctx context.Context) (*Bridge, error) {
	id := c.BridgeID()
	if id == "" {
		return nil, &ValidationError{Message: "call doesn't belong to a bridge"}
	}
	return c.client.Bridges.Get(ctx, id)
}

// Refresh re-fetches this call and overwrites the local fields
func (c *Call) Refresh(ctx context.Context) error {
	fresh, err := c.client.Calls.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// terminal states are sticky, local transitions out of them are no-ops
func (c *Call) setState(state string) {
	if c.State == CallStateCompleted || c.State == CallStateRejected {
		return
	}
	c.State = state
}

// Hangup ends this call
func (c *Call) Hangup(ctx context.Context) error {
	if err := c.client.Calls.Hangup(ctx, c.ID); err != nil {
		return err
	}
	c.setState(CallStateCompleted)
	return nil
}

// AnswerIncoming answers this incoming call
func (c *Call) AnswerIncoming(ctx context.Context) error {
	if err := c.client.Calls.AnswerIncoming(ctx, c.ID); err != nil {
		return err
	}
	c.setState(CallStateActive)
	return nil
}

// RejectIncoming rejects this incoming call
func (c *Call) RejectIncoming(ctx context.Context) error {
	if err := c.client.Calls.RejectIncoming(ctx, c.ID); err != nil {
		return err
	}
	c.setState(CallStateRejected)
	return nil
}

// Transfer transfers this call, returning the id of the new call the server creates
func (c *Call) Transfer(ctx context.Context, data *TransferCallData) (string, error) {
	newID, err := c.client.Calls.Transfer(ctx, c.ID, data)
	if err != nil {
		return "", err
	}
	c.setState(CallStateTransferring)
	return newID, nil
}

// BridgeWith creates a new bridge joining this call with the passed in calls
func (c *Call) BridgeWith(ctx context.Context, others ...*Call) (*Bridge, error) {
	callIDs := []string{c.ID}
	for _, o := range others {
		callIDs = append(callIDs, o.ID)
	}
	return c.client.Bridges.Create(ctx, &CreateBridgeData{CallIDs: callIDs, BridgeAudio: true})
}

func (c *Call) PlayAudioFile(ctx context.Context, fileURL string) error {
	return c.client.Calls.PlayAudioFile(ctx, c.ID, fileURL)
}
func (c *Call) SpeakSentence(ctx context.Context, sentence string) error {
	return c.client.Calls.SpeakSentence(ctx, c.ID, sentence)
}
func (c *Call) StopAudioFile(ctx context.Context) error {
	return c.client.Calls.StopAudioFile(ctx, c.ID)
}
func (c *Call) StopSpeaking(ctx context.Context) error {
	return c.client.Calls.StopSpeaking(ctx, c.ID)
}

// Event is a call event recorded by the platform. Payloads are open-ended so fields
// beyond the common three are kept as a map in the client's naming.
type Event struct {
	ID   string
	Name string
	Time *time.Time
	Data map[string]any
}

func (e *Event) UnmarshalJSON(d []byte) error {
	raw := map[string]any{}
	if err := jsonx.Unmarshal(d, &raw); err != nil {
		return err
	}
	data := coerceDates(fromExternal(raw)).(map[string]any)
	if id, ok := data["id"].(string); ok {
		e.ID = id
	}
	if name, ok := data["name"].(string); ok {
		e.Name = name
	}
	if t, ok := data["time"].(time.Time); ok {
		e.Time = &t
	}
	delete(data, "id")
	delete(data, "name")
	delete(data, "time")
	e.Data = data
	return nil
}

// CreateCallData is the body for placing a new call
type CreateCallData struct {
	From                 string            `json:"from" validate:"required"`
	To                   string            `json:"to" validate:"required"`
	CallTimeout          int               `json:"callTimeout,omitempty"`
	CallbackURL          string            `json:"callbackUrl,omitempty"`
	BridgeID             string            `json:"bridgeId,omitempty"`
	ConferenceID         string            `json:"conferenceId,omitempty"`
	RecordingEnabled     *bool             `json:"recordingEnabled,omitempty"`
	RecordingFileFormat  string            `json:"recordingFileFormat,omitempty" validate:"omitempty,oneof=wav mp3"`
	RecordingMaxDuration int               `json:"recordingMaxDuration,omitempty"`
	TranscriptionEnabled *bool             `json:"transcriptionEnabled,omitempty"`
	Tag                  string            `json:"tag,omitempty"`
	SipHeaders           map[string]string `json:"sipHeaders,omitempty"`
}

// UpdateCallData is the body for driving a call's state
type UpdateCallData struct {
	State               string         `json:"state,omitempty" validate:"omitempty,oneof=active completed rejected transferring"`
	RecordingEnabled    *bool          `json:"recordingEnabled,omitempty"`
	RecordingFileFormat string         `json:"recordingFileFormat,omitempty" validate:"omitempty,oneof=wav mp3"`
	TransferTo          string         `json:"transferTo,omitempty"`
	TransferCallerID    string         `json:"transferCallerId,omitempty"`
	WhisperAudio        *PlayAudioData `json:"whisperAudio,omitempty"`
	CallbackURL         string         `json:"callbackUrl,omitempty"`
}

// TransferCallData configures a call transfer
type TransferCallData struct {
	TransferTo       string         `json:"transferTo" validate:"required"`
	TransferCallerID string         `json:"transferCallerId,omitempty"`
	WhisperAudio     *PlayAudioData `json:"whisperAudio,omitempty"`
	CallbackURL      string         `json:"callbackUrl,omitempty"`
}

// CallListParams are the filters accepted when listing calls
type CallListParams struct {
	BridgeID     string `schema:"bridgeId,omitempty"`
	ConferenceID string `schema:"conferenceId,omitempty"`
	From         string `schema:"from,omitempty"`
	To           string `schema:"to,omitempty"`
	SortOrder    string `schema:"sortOrder,omitempty"`
	Size         int    `schema:"size,omitempty"`
}

// CallService gives access to the call resource and its verbs
type CallService struct {
	client *Client
}

func (s *CallService) path(parts ...string) string {
	return s.client.userPath("/calls" + joinPath(parts))
}

// Create places a new outbound call and returns its id. The call timeout defaults
// to 30 seconds when not set.
func (s *CallService) Create(ctx context.Context, data *CreateCallData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	body := *data
	if body.CallTimeout == 0 {
		body.CallTimeout = defaultCallTimeout
	}
	return s.client.post(ctx, s.path(), &body)
}

// Get fetches the call with the passed in id
func (s *CallService) Get(ctx context.Context, id string) (*Call, error) {
	call := &Call{}
	if _, err := s.client.get(ctx, s.path(id), nil, call); err != nil {
		return nil, err
	}
	call.client = s.client
	return call, nil
}

// List returns an iterator over this user's calls
func (s *CallService) List(params *CallListParams) *Iter[*Call] {
	query, err := encodeQuery(params)
	if err != nil {
		return &Iter[*Call]{err: err}
	}
	return listIter(s.client, s.path(), query, func(c *Call) { c.client = s.client })
}

// Update drives the call's state, e.g. hanging up or starting a transfer. When the
// server creates a new call (transfers) its id is returned.
func (s *CallService) Update(ctx context.Context, id string, data *UpdateCallData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(id), data)
}

// AnswerIncoming answers an incoming call
func (s *CallService) AnswerIncoming(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, &UpdateCallData{State: CallStateActive})
	return err
}

// RejectIncoming rejects an incoming call
func (s *CallService) RejectIncoming(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, &UpdateCallData{State: CallStateRejected})
	return err
}

// Hangup ends the call with the passed in id
func (s *CallService) Hangup(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, &UpdateCallData{State: CallStateCompleted})
	return err
}

// Transfer transfers the call to another number. The server creates a new call and
// returns its id via the Location header.
func (s *CallService) Transfer(ctx context.Context, id string, data *TransferCallData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.Update(ctx, id, &UpdateCallData{
		State:            CallStateTransferring,
		TransferTo:       data.TransferTo,
		TransferCallerID: data.TransferCallerID,
		WhisperAudio:     data.WhisperAudio,
		CallbackURL:      data.CallbackURL,
	})
}

func (s *CallService) audio(id string) *audioTarget {
	return &audioTarget{client: s.client, path: s.path(id, "audio")}
}

// PlayAudio posts the passed in playback data to the call
func (s *CallService) PlayAudio(ctx context.Context, id string, data *PlayAudioData) error {
	return s.audio(id).PlayAudio(ctx, data)
}

func (s *CallService) PlayAudioFile(ctx context.Context, id, fileURL string) error {
	return s.audio(id).PlayAudioFile(ctx, fileURL)
}
func (s *CallService) SpeakSentence(ctx context.Context, id, sentence string) error {
	return s.audio(id).SpeakSentence(ctx, sentence)
}
func (s *CallService) StopAudioFile(ctx context.Context, id string) error {
	return s.audio(id).StopAudioFile(ctx)
}
func (s *CallService) StopSpeaking(ctx context.Context, id string) error {
	return s.audio(id).StopSpeaking(ctx)
}

// SendDTMF sends the passed in digits to the call, each must be in 0-9*#ABCD
func (s *CallService) SendDTMF(ctx context.Context, id, digits string) error {
	for _, d := range digits {
		if !strings.ContainsRune(dtmfAlphabet, d) {
			return &ValidationError{Message: fmt.Sprintf("invalid DTMF digit '%c'", d)}
		}
	}
	_, err := s.client.post(ctx, s.path(id, "dtmf"), map[string]any{"dtmf_out": digits})
	return err
}

// ListEvents fetches the events recorded for the call
func (s *CallService) ListEvents(ctx context.Context, id string) ([]*Event, error) {
	var events []*Event
	if _, err := s.client.get(ctx, s.path(id, "events"), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches a single call event
func (s *CallService) GetEvent(ctx context.Context, id, eventID string) (*Event, error) {
	event := &Event{}
	if _, err := s.client.get(ctx, s.path(id, "events", eventID), nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListRecordings fetches the recordings made on the call
func (s *CallService) ListRecordings(id string) *Iter[*Recording] {
	return listIter(s.client, s.path(id, "recordings"), nil, func(r *Recording) { r.client = s.client })
}

// ListTranscriptions fetches the transcriptions made on the call
func (s *CallService) ListTranscriptions(id string) *Iter[*Transcription] {
	return listIter[*Transcription](s.client, s.path(id, "transcriptions"), nil, nil)
}

func joinPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return "/" + strings.Join(parts, "/")
}
