package catapult

import (
	"context"
	"fmt"
	"strings"
)

// PlayAudioData configures audio playback on a call, bridge, conference or member.
// Exactly one of FileURL or Sentence should be set; an empty (non-nil) value stops
// playback of the corresponding kind.
type PlayAudioData struct {
	FileURL     *string `json:"fileUrl,omitempty"`
	Sentence    *string `json:"sentence,omitempty"`
	Gender      string  `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Locale      string  `json:"locale,omitempty"`
	Voice       string  `json:"voice,omitempty"`
	LoopEnabled *bool   `json:"loopEnabled,omitempty"`
	Tag         string  `json:"tag,omitempty"`
}

// the supported text-to-speech voices and the locale each belongs to
var voiceLocales = map[string]string{
	"susan":     "en_US", // the default voice
	"kate":      "en_US",
	"julie":     "en_US",
	"dave":      "en_US",
	"paul":      "en_US",
	"bridget":   "en_UK",
	"esperanza": "es",
	"violeta":   "es",
	"jorge":     "es",
	"jolie":     "fr",
	"bernard":   "fr",
	"katrin":    "de",
	"stefan":    "de",
	"paola":     "it",
	"luca":      "it",
}

// AudioPlayer is the capability shared by every resource that accepts audio playback
type AudioPlayer interface {
	PlayAudioFile(ctx context.Context, fileURL string) error
	SpeakSentence(ctx context.Context, sentence string) error
	StopAudioFile(ctx context.Context) error
	StopSpeaking(ctx context.Context) error
}

// audioTarget gives a resource's audio sub-path the shared playback verbs
type audioTarget struct {
	client *Client
	path   string
}

// PlayAudio posts the passed in playback data to this target's audio path
func (t *audioTarget) PlayAudio(ctx context.Context, data *PlayAudioData) error {
	if err := validateAudio(data); err != nil {
		return err
	}
	_, err := t.client.post(ctx, t.path, data)
	return err
}

func (t *audioTarget) PlayAudioFile(ctx context.Context, fileURL string) error {
	return t.PlayAudio(ctx, &PlayAudioData{FileURL: &fileURL})
}

func (t *audioTarget) SpeakSentence(ctx context.Context, sentence string) error {
	return t.PlayAudio(ctx, &PlayAudioData{Sentence: &sentence})
}

// StopAudioFile stops file playback by sending an empty file URL
func (t *audioTarget) StopAudioFile(ctx context.Context) error {
	empty := ""
	return t.PlayAudio(ctx, &PlayAudioData{FileURL: &empty})
}

// StopSpeaking stops sentence playback by sending an empty sentence
func (t *audioTarget) StopSpeaking(ctx context.Context) error {
	empty := ""
	return t.PlayAudio(ctx, &PlayAudioData{Sentence: &empty})
}

func validateAudio(data *PlayAudioData) error {
	if data.FileURL == nil && data.Sentence == nil {
		return &ValidationError{Message: "either fileUrl or sentence is required"}
	}
	if err := validateData(data); err != nil {
		return err
	}
	if data.Voice != "" {
		locale, found := voiceLocales[strings.ToLower(data.Voice)]
		if !found {
			return &ValidationError{Message: fmt.Sprintf("unsupported voice '%s'", data.Voice)}
		}
		if data.Locale != "" && data.Locale != locale {
			return &ValidationError{Message: fmt.Sprintf("voice '%s' isn't available in locale '%s'", data.Voice, data.Locale)}
		}
	}
	return nil
}
