package catapult

import (
	"time"
)

// transcription states
const (
	TranscriptionStateCompleted = "completed"
	TranscriptionStateError     = "error"
)

// Transcription is the text of a recording produced by the platform
type Transcription struct {
	ID                 string     `json:"id"`
	State              string     `json:"state,omitempty"`
	Text               string     `json:"text,omitempty"`
	TextSize           int        `json:"textSize,omitempty"`
	TextURL            string     `json:"textUrl,omitempty"`
	ChargeableDuration int        `json:"chargeableDuration,omitempty"`
	Time               *time.Time `json:"time,omitempty"`
}
