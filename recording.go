package catapult

import (
	"context"
	"io"
	"net/http"
	"time"
)

// recording states
const (
	RecordingStateRecording = "recording"
	RecordingStateComplete  = "complete"
	RecordingStateSaving    = "saving"
	RecordingStateError     = "error"
)

// Recording is an audio recording made on a call
type Recording struct {
	ID        string     `json:"id"`
	Call      string     `json:"call,omitempty"`  // URL reference
	Media     string     `json:"media,omitempty"` // URL reference
	State     string     `json:"state,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	client *Client
}

// CallID returns the id of the call this recording was made on
func (r *Recording) CallID() string {
	return lastSegment(r.Call)
}

// GetCall fetches the call this recording was made on
func (r *Recording) GetCall(ctx context.Context) (*Call, error) {
	return r.client.Calls.Get(ctx, r.CallID())
}

// DownloadMedia fetches the recorded audio as a stream, the caller must close it
func (r *Recording) DownloadMedia(ctx context.Context) (io.ReadCloser, string, error) {
	if r.Media == "" {
		return nil, "", &ValidationError{Message: "recording has no media"}
	}
	return r.client.stream(ctx, http.MethodGet, r.Media, nil, "")
}

// RecordingService reads recordings and creates transcriptions of them
type RecordingService struct {
	client *Client
}

func (s *RecordingService) path(parts ...string) string {
	return s.client.userPath("/recordings" + joinPath(parts))
}

// Get fetches the recording with the passed in id
func (s *RecordingService) Get(ctx context.Context, id string) (*Recording, error) {
	rec := &Recording{}
	if _, err := s.client.get(ctx, s.path(id), nil, rec); err != nil {
		return nil, err
	}
	rec.client = s.client
	return rec, nil
}

// List returns an iterator over this user's recordings
func (s *RecordingService) List() *Iter[*Recording] {
	return listIter(s.client, s.path(), nil, func(r *Recording) { r.client = s.client })
}

// CreateTranscription starts transcription of the recording, returning the new
// transcription's id
func (s *RecordingService) CreateTranscription(ctx context.Context, id string) (string, error) {
	return s.client.post(ctx, s.path(id, "transcriptions"), map[string]any{})
}

// GetTranscription fetches a single transcription of the recording
func (s *RecordingService) GetTranscription(ctx context.Context, id, transcriptionID string) (*Transcription, error) {
	t := &Transcription{}
	if _, err := s.client.get(ctx, s.path(id, "transcriptions", transcriptionID), nil, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTranscriptions fetches the transcriptions of the recording
func (s *RecordingService) ListTranscriptions(id string) *Iter[*Transcription] {
	return listIter[*Transcription](s.client, s.path(id, "transcriptions"), nil, nil)
}
