package catapult

import (
	"context"
	"time"
)

// conference states
const (
	ConferenceStateCreated   = "created"
	ConferenceStateActive    = "active"
	ConferenceStateCompleted = "completed"
)

// member states
const (
	MemberStateActive    = "active"
	MemberStateCompleted = "completed"
)

// Conference joins many calls around a host number, each represented by a member
type Conference struct {
	ID                 string     `json:"id"`
	From               string     `json:"from"`
	State              string     `json:"state"`
	ActiveMembers      int        `json:"activeMembers"`
	Mute               bool       `json:"mute,omitempty"`
	Hold               bool       `json:"hold,omitempty"`
	CallbackURL        string     `json:"callbackUrl,omitempty"`
	CallbackHTTPMethod string     `json:"callbackHttpMethod,omitempty"`
	CallbackTimeout    int        `json:"callbackTimeout,omitempty"`
	FallbackURL        string     `json:"fallbackUrl,omitempty"`
	CreatedTime        *time.Time `json:"createdTime,omitempty"`
	CompletedTime      *time.Time `json:"completedTime,omitempty"`
	Tag                string     `json:"tag,omitempty"`

	client *Client
}

// Refresh re-fetches this conference and overwrites the local fields
func (c *Conference) Refresh(ctx context.Context) error {
	fresh, err := c.client.Conferences.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Terminate completes the conference, disconnecting all members
func (c *Conference) Terminate(ctx context.Context) error {
	if err := c.client.Conferences.Update(ctx, c.ID, &UpdateConferenceData{State: ConferenceStateCompleted}); err != nil {
		return err
	}
	c.State = ConferenceStateCompleted
	return nil
}

// Mute/unmute and hold/unhold apply to every member at once
func (c *Conference) SetMute(ctx context.Context, mute bool) error {
	if err := c.client.Conferences.Update(ctx, c.ID, &UpdateConferenceData{Mute: &mute}); err != nil {
		return err
	}
	c.Mute = mute
	return nil
}

func (c *Conference) SetHold(ctx context.Context, hold bool) error {
	if err := c.client.Conferences.Update(ctx, c.ID, &UpdateConferenceData{Hold: &hold}); err != nil {
		return err
	}
	c.Hold = hold
	return nil
}

// AddMember joins the passed in call to this conference
func (c *Conference) AddMember(ctx context.Context, data *CreateMemberData) (string, error) {
	return c.client.Conferences.CreateMember(ctx, c.ID, data)
}

func (c *Conference) PlayAudioFile(ctx context.Context, fileURL string) error {
	return c.client.Conferences.PlayAudioFile(ctx, c.ID, fileURL)
}
func (c *Conference) SpeakSentence(ctx context.Context, sentence string) error {
	return c.client.Conferences.SpeakSentence(ctx, c.ID, sentence)
}
func (c *Conference) StopAudioFile(ctx context.Context) error {
	return c.client.Conferences.StopAudioFile(ctx, c.ID)
}
func (c *Conference) StopSpeaking(ctx context.Context) error {
	return c.client.Conferences.StopSpeaking(ctx, c.ID)
}

// ConferenceMember binds a call to a conference with its own mute/hold flags
type ConferenceMember struct {
	ID          string     `json:"id"`
	State       string     `json:"state"`
	Call        string     `json:"call,omitempty"` // URL reference
	Mute        bool       `json:"mute,omitempty"`
	Hold        bool       `json:"hold,omitempty"`
	JoinTone    bool       `json:"joinTone,omitempty"`
	LeavingTone bool       `json:"leavingTone,omitempty"`
	AddedTime   *time.Time `json:"addedTime,omitempty"`
	RemovedTime *time.Time `json:"removedTime,omitempty"`

	client       *Client
	conferenceID string
}

// CallID returns the id of the call this member represents
func (m *ConferenceMember) CallID() string {
	return lastSegment(m.Call)
}

// GetCall fetches the call this member represents
func (m *ConferenceMember) GetCall(ctx context.Context) (*Call, error) {
	return m.client.Calls.Get(ctx, m.CallID())
}

// Remove takes this member out of the conference. Removal is irreversible, the
// member transitions to completed.
func (m *ConferenceMember) Remove(ctx context.Context) error {
	if m.State == MemberStateCompleted {
		return nil
	}
	if err := m.client.Conferences.RemoveMember(ctx, m.conferenceID, m.ID); err != nil {
		return err
	}
	m.State = MemberStateCompleted
	return nil
}

func (m *ConferenceMember) SetMute(ctx context.Context, mute bool) error {
	if err := m.client.Conferences.UpdateMember(ctx, m.conferenceID, m.ID, &UpdateMemberData{Mute: &mute}); err != nil {
		return err
	}
	m.Mute = mute
	return nil
}

func (m *ConferenceMember) SetHold(ctx context.Context, hold bool) error {
	if err := m.client.Conferences.UpdateMember(ctx, m.conferenceID, m.ID, &UpdateMemberData{Hold: &hold}); err != nil {
		return err
	}
	m.Hold = hold
	return nil
}

func (m *ConferenceMember) PlayAudioFile(ctx context.Context, fileURL string) error {
	return m.client.Conferences.PlayMemberAudioFile(ctx, m.conferenceID, m.ID, fileURL)
}
func (m *ConferenceMember) SpeakSentence(ctx context.Context, sentence string) error {
	return m.client.Conferences.SpeakMemberSentence(ctx, m.conferenceID, m.ID, sentence)
}
func (m *ConferenceMember) StopAudioFile(ctx context.Context) error {
	return m.client.Conferences.memberAudio(m.conferenceID, m.ID).StopAudioFile(ctx)
}
func (m *ConferenceMember) StopSpeaking(ctx context.Context) error {
	return m.client.Conferences.memberAudio(m.conferenceID, m.ID).StopSpeaking(ctx)
}

// CreateConferenceData is the body for creating a conference
type CreateConferenceData struct {
	From               string `json:"from" validate:"required"`
	CallbackURL        string `json:"callbackUrl,omitempty"`
	CallbackHTTPMethod string `json:"callbackHttpMethod,omitempty" validate:"omitempty,oneof=get post GET POST"`
	CallbackTimeout    int    `json:"callbackTimeout,omitempty"`
	FallbackURL        string `json:"fallbackUrl,omitempty"`
	Tag                string `json:"tag,omitempty"`
}

// UpdateConferenceData drives global conference state
type UpdateConferenceData struct {
	State              string `json:"state,omitempty" validate:"omitempty,oneof=completed"`
	Mute               *bool  `json:"mute,omitempty"`
	Hold               *bool  `json:"hold,omitempty"`
	CallbackURL        string `json:"callbackUrl,omitempty"`
	CallbackHTTPMethod string `json:"callbackHttpMethod,omitempty" validate:"omitempty,oneof=get post GET POST"`
	CallbackTimeout    int    `json:"callbackTimeout,omitempty"`
	FallbackURL        string `json:"fallbackUrl,omitempty"`
	Tag                string `json:"tag,omitempty"`
}

// CreateMemberData is the body for joining a call to a conference
type CreateMemberData struct {
	CallID      string `json:"callId" validate:"required"`
	JoinTone    bool   `json:"joinTone,omitempty"`
	LeavingTone bool   `json:"leavingTone,omitempty"`
	Mute        bool   `json:"mute,omitempty"`
	Hold        bool   `json:"hold,omitempty"`
}

// UpdateMemberData changes a member's flags or removes it (state completed)
type UpdateMemberData struct {
	State       string `json:"state,omitempty" validate:"omitempty,oneof=completed"`
	Mute        *bool  `json:"mute,omitempty"`
	Hold        *bool  `json:"hold,omitempty"`
	JoinTone    *bool  `json:"joinTone,omitempty"`
	LeavingTone *bool  `json:"leavingTone,omitempty"`
}

// ConferenceService gives access to conferences and their members
type ConferenceService struct {
	client *Client
}

func (s *ConferenceService) path(parts ...string) string {
	return s.client.userPath("/conferences" + joinPath(parts))
}

// Create creates a new conference and returns its id
func (s *ConferenceService) Create(ctx context.Context, data *CreateConferenceData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(), data)
}

// Get fetches the conference with the passed in id
func (s *ConferenceService) Get(ctx context.Context, id string) (*Conference, error) {
	conf := &Conference{}
	if _, err := s.client.get(ctx, s.path(id), nil, conf); err != nil {
		return nil, err
	}
	conf.client = s.client
	return conf, nil
}

// Update drives global conference state, e.g. completing, muting or holding
func (s *ConferenceService) Update(ctx context.Context, id string, data *UpdateConferenceData) error {
	if err := validateData(data); err != nil {
		return err
	}
	_, err := s.client.post(ctx, s.path(id), data)
	return err
}

// CreateMember joins a call to the conference, returning the new member's id
func (s *ConferenceService) CreateMember(ctx context.Context, id string, data *CreateMemberData) (string, error) {
	if err := validateData(data); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(id, "members"), data)
}

// GetMember fetches a single conference member
func (s *ConferenceService) GetMember(ctx context.Context, id, memberID string) (*ConferenceMember, error) {
	member := &ConferenceMember{}
	if _, err := s.client.get(ctx, s.path(id, "members", memberID), nil, member); err != nil {
		return nil, err
	}
	member.client = s.client
	member.conferenceID = id
	return member, nil
}

// ListMembers fetches the members of the conference
func (s *ConferenceService) ListMembers(ctx context.Context, id string) ([]*ConferenceMember, error) {
	var members []*ConferenceMember
	if _, err := s.client.get(ctx, s.path(id, "members"), nil, &members); err != nil {
		return nil, err
	}
	for _, m := range members {
		m.client = s.client
		m.conferenceID = id
	}
	return members, nil
}

// UpdateMember changes a member's flags
func (s *ConferenceService) UpdateMember(ctx context.Context, id, memberID string, data *UpdateMemberData) error {
	if err := validateData(data); err != nil {
		return err
	}
	_, err := s.client.post(ctx, s.path(id, "members", memberID), data)
	return err
}

// RemoveMember takes the member out of the conference by completing it
func (s *ConferenceService) RemoveMember(ctx context.Context, id, memberID string) error {
	return s.UpdateMember(ctx, id, memberID, &UpdateMemberData{State: MemberStateCompleted})
}

func (s *ConferenceService) audio(id string) *audioTarget {
	return &audioTarget{client: s.client, path: s.path(id, "audio")}
}

func (s *ConferenceService) memberAudio(id, memberID string) *audioTarget {
	return &audioTarget{client: s.client, path: s.path(id, "members", memberID, "audio")}
}

// PlayAudio posts the passed in playback data to the conference
func (s *ConferenceService) PlayAudio(ctx context.Context, id string, data *PlayAudioData) error {
	return s.audio(id).PlayAudio(ctx, data)
}

func (s *ConferenceService) PlayAudioFile(ctx context.Context, id, fileURL string) error {
	return s.audio(id).PlayAudioFile(ctx, fileURL)
}
func (s *ConferenceService) SpeakSentence(ctx context.Context, id, sentence string) error {
	return s.audio(id).SpeakSentence(ctx, sentence)
}
func (s *ConferenceService) StopAudioFile(ctx context.Context, id string) error {
	return s.audio(id).StopAudioFile(ctx)
}
func (s *ConferenceService) StopSpeaking(ctx context.Context, id string) error {
	return s.audio(id).StopSpeaking(ctx)
}

// PlayMemberAudio posts the passed in playback data to a single member
func (s *ConferenceService) PlayMemberAudio(ctx context.Context, id, memberID string, data *PlayAudioData) error {
	return s.memberAudio(id, memberID).PlayAudio(ctx, data)
}

func (s *ConferenceService) PlayMemberAudioFile(ctx context.Context, id, memberID, fileURL string) error {
	return s.memberAudio(id, memberID).PlayAudioFile(ctx, fileURL)
}
func (s *ConferenceService) SpeakMemberSentence(ctx context.Context, id, memberID, sentence string) error {
	return s.memberAudio(id, memberID).SpeakSentence(ctx, sentence)
}
