package catapult

import (
	"context"
	"time"
)

// bridge states
const (
	BridgeStateCreated   = "created"
	BridgeStateActive    = "active"
	BridgeStateHold      = "hold"
	BridgeStateCompleted = "completed"
	BridgeStateError     = "error"
)

// Bridge joins up to two calls with optional two-way audio
type Bridge struct {
	ID            string     `json:"id"`
	State         string     `json:"state"`
	BridgeAudio   bool       `json:"bridgeAudio"`
	CreatedTime   *time.Time `json:"createdTime,omitempty"`
	ActivatedTime *time.Time `json:"activatedTime,omitempty"`
	CompletedTime *time.Time `json:"completedTime,omitempty"`
	Calls         string     `json:"calls,omitempty"` // URL reference

	client *Client
}

// Refresh re-fetches this bridge and overwrites the local fields
func (b *Bridge) Refresh(ctx context.Context) error {
	fresh, err := b.client.Bridges.Get(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// FetchCalls fetches the calls currently in this bridge
func (b *Bridge) FetchCalls(ctx context.Context) ([]*Call, error) {
	return b.client.Bridges.FetchCalls(ctx, b.ID)
}

// CallParty places a new outbound call already joined to this bridge
func (b *Bridge) CallParty(ctx context.Context, from, to string) (string, error) {
	return b.client.Bridges.CallParty(ctx, b.ID, from, to)
}

func (b *Bridge) PlayAudioFile(ctx context.Context, fileURL string) error {
	return b.client.Bridges.PlayAudioFile(ctx, b.ID, fileURL)
}
func (b *Bridge) SpeakSentence(ctx context.Context, sentence string) error {
	return b.client.Bridges.SpeakSentence(ctx, b.ID, sentence)
}
func (b *Bridge) StopAudioFile(ctx context.Context) error {
	return b.client.Bridges.StopAudioFile(ctx, b.ID)
}
func (b *Bridge) StopSpeaking(ctx context.Context) error {
	return b.client.Bridges.StopSpeaking(ctx, b.ID)
}

// CreateBridgeData is the body for creating a bridge with 0, 1 or 2 calls
type CreateBridgeData struct {
	BridgeAudio bool     `json:"bridgeAudio"`
	CallIDs     []string `json:"callIds,omitempty" validate:"max=2"`
}

// BridgeService gives access to the bridge resource
type BridgeService struct {
	client *Client
}

func (s *BridgeService) path(parts ...string) string {
	return s.client.userPath("/bridges" + joinPath(parts))
}

// Create creates a new bridge over the passed in calls
func (s *BridgeService) Create(ctx context.Context, data *CreateBridgeData) (*Bridge, error) {
	if err := validateData(data); err != nil {
		return nil, err
	}
	id, err := s.client.post(ctx, s.path(), data)
	if err != nil {
		return nil, err
	}
	return &Bridge{ID: id, State: BridgeStateCreated, BridgeAudio: data.BridgeAudio, client: s.client}, nil
}

// Get fetches the bridge with the passed in id
func (s *BridgeService) Get(ctx context.Context, id string) (*Bridge, error) {
	bridge := &Bridge{}
	if _, err := s.client.get(ctx, s.path(id), nil, bridge); err != nil {
		return nil, err
	}
	bridge.client = s.client
	return bridge, nil
}

// List returns an iterator over this user's bridges
func (s *BridgeService) List() *Iter[*Bridge] {
	return listIter(s.client, s.path(), nil, func(b *Bridge) { b.client = s.client })
}

// Update replaces the bridge's call set and/or toggles audio
func (s *BridgeService) Update(ctx context.Context, id string, data *CreateBridgeData) error {
	if err := validateData(data); err != nil {
		return err
	}
	_, err := s.client.post(ctx, s.path(id), data)
	return err
}

// FetchCalls fetches the current membership of the bridge
func (s *BridgeService) FetchCalls(ctx context.Context, id string) ([]*Call, error) {
	var calls []*Call
	if _, err := s.client.get(ctx, s.path(id, "calls"), nil, &calls); err != nil {
		return nil, err
	}
	for _, c := range calls {
		c.client = s.client
	}
	return calls, nil
}

// CallParty places a new outbound call already joined to the bridge, returning the
// new call's id
func (s *BridgeService) CallParty(ctx context.Context, id, from, to string) (string, error) {
	return s.client.Calls.Create(ctx, &CreateCallData{From: from, To: to, BridgeID: id})
}

func (s *BridgeService) audio(id string) *audioTarget {
	return &audioTarget{client: s.client, path: s.path(id, "audio")}
}

// PlayAudio posts the passed in playback data to the bridge
func (s *BridgeService) PlayAudio(ctx context.Context, id string, data *PlayAudioData) error {
	return s.audio(id).PlayAudio(ctx, data)
}

func (s *BridgeService) PlayAudioFile(ctx context.Context, id, fileURL string) error {
	return s.audio(id).PlayAudioFile(ctx, fileURL)
}
func (s *BridgeService) SpeakSentence(ctx context.Context, id, sentence string) error {
	return s.audio(id).SpeakSentence(ctx, sentence)
}
func (s *BridgeService) StopAudioFile(ctx context.Context, id string) error {
	return s.audio(id).StopAudioFile(ctx)
}
func (s *BridgeService) StopSpeaking(ctx context.Context, id string) error {
	return s.audio(id).StopSpeaking(ctx)
}
