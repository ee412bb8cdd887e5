// Package bxml builds the XML documents the platform executes to drive call flow.
// A Response is an ordered sequence of verbs, serialized in push order.
package bxml

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Header is the declaration emitted ahead of every document
const Header = `<?xml version="1.0" encoding="ASCII"?>` + "\n"

// Verb is a single call-control instruction inside a Response
type Verb interface {
	verb()
}

// Validator is implemented by verbs with rules beyond what their types express
type Validator interface {
	Validate() error
}

// Response is the root of a BXML document
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []Verb   `xml:""`
}

// NewResponse creates a new response from the passed in verbs
func NewResponse(verbs ...Verb) *Response {
	return &Response{Verbs: verbs}
}

// Push appends a verb to the response
func (r *Response) Push(v Verb) *Response {
	r.Verbs = append(r.Verbs, v)
	return r
}

// ToXML validates and serializes the document
func (r *Response) ToXML() (string, error) {
	for _, v := range r.Verbs {
		if validator, ok := v.(Validator); ok {
			if err := validator.Validate(); err != nil {
				return "", err
			}
		}
	}
	data, err := xml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("unable to marshal BXML body: %w", err)
	}
	return Header + string(data), nil
}

// SpeakSentence reads a sentence to the caller. Absent optional attributes are
// not emitted.
type SpeakSentence struct {
	XMLName xml.Name `xml:"SpeakSentence"`
	Text    string   `xml:",chardata"`
	Gender  string   `xml:"gender,attr,omitempty"`
	Locale  string   `xml:"locale,attr,omitempty"`
	Voice   string   `xml:"voice,attr,omitempty"`
}

func (s *SpeakSentence) verb() {}

func (s *SpeakSentence) Validate() error {
	if s.Text == "" {
		return errors.New("SpeakSentence requires a sentence")
	}
	return nil
}

// PlayAudio plays the audio at a URL, or DTMF digits, to the caller
type PlayAudio struct {
	XMLName xml.Name `xml:"PlayAudio"`
	URL     string   `xml:",chardata"`
	Digits  string   `xml:"digits,attr,omitempty"`
}

func (p *PlayAudio) verb() {}

// Pause waits the given number of seconds before the next verb runs
type Pause struct {
	XMLName  xml.Name `xml:"Pause"`
	Duration int      `xml:"duration,attr"`
}

func (p *Pause) verb() {}

// PhoneNumber is a dial target inside a Transfer
type PhoneNumber struct {
	XMLName xml.Name `xml:"PhoneNumber"`
	Number  string   `xml:",chardata"`
}

// Transfer sends the call to another number. Child elements emit in a fixed
// order: each PhoneNumber, then SpeakSentence, then PlayAudio.
type Transfer struct {
	XMLName               xml.Name       `xml:"Transfer"`
	TransferCallerID      string         `xml:"transferCallerId,attr,omitempty"`
	TransferTo            string         `xml:"transferTo,attr,omitempty"`
	CallTimeout           int            `xml:"callTimeout,attr,omitempty"`
	RecordingEnabled      *bool          `xml:"recordingEnabled,attr,omitempty"`
	RecordingCallbackURL  string         `xml:"recordingCallbackUrl,attr,omitempty"`
	FileFormat            string         `xml:"fileFormat,attr,omitempty"`
	TerminatingDigits     string         `xml:"terminatingDigits,attr,omitempty"`
	MaxDuration           int            `xml:"maxDuration,attr,omitempty"`
	Transcribe            *bool          `xml:"transcribe,attr,omitempty"`
	TranscribeCallbackURL string         `xml:"transcribeCallbackUrl,attr,omitempty"`
	PhoneNumbers          []PhoneNumber  `xml:"PhoneNumber"`
	SpeakSentence         *SpeakSentence `xml:"SpeakSentence"`
	PlayAudio             *PlayAudio     `xml:"PlayAudio"`
}

func (t *Transfer) verb() {}

func (t *Transfer) Validate() error {
	if t.SpeakSentence != nil {
		if err := t.SpeakSentence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TransferNumbers wraps plain numbers as Transfer children
func TransferNumbers(numbers ...string) []PhoneNumber {
	out := make([]PhoneNumber, len(numbers))
	for i, n := range numbers {
		out[i] = PhoneNumber{Number: n}
	}
	return out
}

// Gather collects DTMF digits from the caller. Child elements emit PlayAudio
// before SpeakSentence.
type Gather struct {
	XMLName           xml.Name       `xml:"Gather"`
	RequestURL        string         `xml:"requestUrl,attr"`
	RequestURLTimeout int            `xml:"requestUrlTimeout,attr,omitempty"`
	TerminatingDigits string         `xml:"terminatingDigits,attr,omitempty"`
	InterDigitTimeout int            `xml:"interDigitTimeout,attr,omitempty"`
	Bargeable         *bool          `xml:"bargeable,attr,omitempty"`
	MaxDigits         int            `xml:"maxDigits,attr,omitempty"`
	PlayAudio         *PlayAudio     `xml:"PlayAudio"`
	SpeakSentence     *SpeakSentence `xml:"SpeakSentence"`
}

func (g *Gather) verb() {}

func (g *Gather) Validate() error {
	if g.RequestURL == "" {
		return errors.New("Gather requires a request URL")
	}
	if g.SpeakSentence != nil {
		return g.SpeakSentence.Validate()
	}
	return nil
}

// Record records the caller until a terminating digit or the maximum duration
type Record struct {
	XMLName               xml.Name `xml:"Record"`
	RequestURL            string   `xml:"requestUrl,attr,omitempty"`
	RequestURLTimeout     int      `xml:"requestUrlTimeout,attr,omitempty"`
	TerminatingDigits     string   `xml:"terminatingDigits,attr,omitempty"`
	MaxDuration           int      `xml:"maxDuration,attr,omitempty"`
	Transcribe            *bool    `xml:"transcribe,attr,omitempty"`
	TranscribeCallbackURL string   `xml:"transcribeCallbackUrl,attr,omitempty"`
	FileFormat            string   `xml:"fileFormat,attr,omitempty"`
}

func (r *Record) verb() {}

// Redirect replaces the rest of the document with one fetched from a URL
type Redirect struct {
	XMLName           xml.Name `xml:"Redirect"`
	RequestURL        string   `xml:"requestUrl,attr,omitempty"`
	RequestURLTimeout int      `xml:"requestUrlTimeout,attr,omitempty"`
}

func (r *Redirect) verb() {}

// Reject rejects an incoming call without answering it
type Reject struct {
	XMLName xml.Name `xml:"Reject"`
}

func (r *Reject) verb() {}

// Hangup ends the call
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

func (h *Hangup) verb() {}

// SendMessage sends a text message from within a call flow
type SendMessage struct {
	XMLName           xml.Name `xml:"SendMessage"`
	Text              string   `xml:",chardata"`
	From              string   `xml:"from,attr"`
	To                string   `xml:"to,attr"`
	StatusCallbackURL string   `xml:"statusCallbackUrl,attr,omitempty"`
	RequestURL        string   `xml:"requestUrl,attr,omitempty"`
	RequestURLTimeout int      `xml:"requestUrlTimeout,attr,omitempty"`
}

func (s *SendMessage) verb() {}

func (s *SendMessage) Validate() error {
	if s.Text == "" || s.From == "" || s.To == "" {
		return errors.New("SendMessage requires text, from and to")
	}
	return nil
}

// Media attaches media URLs to an enclosing message
type Media struct {
	XMLName xml.Name `xml:"Media"`
	URLs    []string `xml:"Url"`
}

func (m *Media) verb() {}

func (m *Media) Validate() error {
	if len(m.URLs) == 0 {
		return errors.New("Media requires at least one URL")
	}
	return nil
}
