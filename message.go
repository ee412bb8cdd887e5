package catapult

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
)

// message states
const (
	MessageStateReceived = "received"
	MessageStateQueued   = "queued"
	MessageStateSending  = "sending"
	MessageStateSent     = "sent"
	MessageStateError    = "error"
)

// receipt request modes
const (
	ReceiptNone  = "none"
	ReceiptAll   = "all"
	ReceiptError = "error"
)

// Message is an SMS or MMS message
type Message struct {
	ID                  string     `json:"id"`
	Direction           string     `json:"direction,omitempty"`
	From                string     `json:"from"`
	To                  string     `json:"to"`
	Text                string     `json:"text,omitempty"`
	Media               []string   `json:"media,omitempty"`
	State               string     `json:"state,omitempty"`
	Time                *time.Time `json:"time,omitempty"`
	DeliveryState       string     `json:"deliveryState,omitempty"`
	DeliveryCode        string     `json:"deliveryCode,omitempty"`
	DeliveryDescription string     `json:"deliveryDescription,omitempty"`
	ReceiptRequested    string     `json:"receiptRequested,omitempty"`
	Tag                 string     `json:"tag,omitempty"`

	// ErrorMessage is only set on batch send failures
	ErrorMessage string `json:"-"`
}

// MessageData is the body for sending a message. Either text or at least one media
// URL must be present.
type MessageData struct {
	From               string   `json:"from" validate:"required"`
	To                 string   `json:"to" validate:"required"`
	Text               string   `json:"text,omitempty"`
	Media              []string `json:"media,omitempty"`
	ReceiptRequested   string   `json:"receiptRequested,omitempty" validate:"omitempty,oneof=none all error"`
	CallbackURL        string   `json:"callbackUrl,omitempty"`
	CallbackHTTPMethod string   `json:"callbackHttpMethod,omitempty" validate:"omitempty,oneof=get post GET POST"`
	CallbackTimeout    int      `json:"callbackTimeout,omitempty"`
	FallbackURL        string   `json:"fallbackUrl,omitempty"`
	Tag                string   `json:"tag,omitempty"`
}

func (d *MessageData) validate() error {
	if err := validateData(d); err != nil {
		return err
	}
	if d.Text == "" && len(d.Media) == 0 {
		return &ValidationError{Message: "either text or media is required"}
	}
	return nil
}

// asMessage projects the request body onto a message instance
func (d *MessageData) asMessage() *Message {
	return &Message{
		From:             d.From,
		To:               d.To,
		Text:             d.Text,
		Media:            d.Media,
		ReceiptRequested: d.ReceiptRequested,
		Tag:              d.Tag,
	}
}

// MessageListParams are the filters accepted when listing messages
type MessageListParams struct {
	From          string `schema:"from,omitempty"`
	To            string `schema:"to,omitempty"`
	FromDateTime  string `schema:"fromDateTime,omitempty"`
	ToDateTime    string `schema:"toDateTime,omitempty"`
	Direction     string `schema:"direction,omitempty"`
	State         string `schema:"state,omitempty"`
	DeliveryState string `schema:"deliveryState,omitempty"`
	SortOrder     string `schema:"sortOrder,omitempty"`
	Size          int    `schema:"size,omitempty" validate:"omitempty,max=1000"`
}

// MessageService sends and fetches messages
type MessageService struct {
	client *Client
}

func (s *MessageService) path(parts ...string) string {
	return s.client.userPath("/messages" + joinPath(parts))
}

// Send sends a single message and returns its id
func (s *MessageService) Send(ctx context.Context, data *MessageData) (string, error) {
	if err := data.validate(); err != nil {
		return "", err
	}
	return s.client.post(ctx, s.path(), data)
}

// Get fetches the message with the passed in id
func (s *MessageService) Get(ctx context.Context, id string) (*Message, error) {
	msg := &Message{}
	if _, err := s.client.get(ctx, s.path(id), nil, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns an iterator over this user's messages
func (s *MessageService) List(params *MessageListParams) *Iter[*Message] {
	query, err := encodeQuery(params)
	if err != nil {
		return &Iter[*Message]{err: err}
	}
	return listIter[*Message](s.client, s.path(), query, nil)
}

// NewBatch creates a sender that submits multiple messages in a single request
func (s *MessageService) NewBatch() *BatchSender {
	return &BatchSender{service: s}
}

// BatchSender accumulates messages and submits them together. The server reports
// acceptance per message, so a commit yields both successes and failures. A sender
// can only be committed once.
type BatchSender struct {
	service   *MessageService
	data      []*MessageData
	committed bool
}

// Push adds a message to the batch, validating it locally first
func (b *BatchSender) Push(data *MessageData) error {
	if b.committed {
		return &ValidationError{Message: "batch sender has already been committed"}
	}
	if err := data.validate(); err != nil {
		return err
	}
	b.data = append(b.data, data)
	return nil
}

// Commit submits the batch. The response array parallels the request order: each
// success becomes a message carrying its new id and the original body, each failure
// becomes a message in the error state carrying the server's error message.
func (b *BatchSender) Commit(ctx context.Context) ([]*Message, []*Message, error) {
	if b.committed {
		return nil, nil, &ValidationError{Message: "batch sender has already been committed"}
	}
	if len(b.data) == 0 {
		return nil, nil, &ValidationError{Message: "batch sender has no messages to commit"}
	}
	b.committed = true

	resp, err := b.service.client.request(ctx, http.MethodPost, b.service.path(), nil, b.data, nil)
	if err != nil {
		return nil, nil, err
	}

	var successes, failures []*Message
	i := 0
	var parseErr error
	jsonparser.ArrayEach(resp.body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if i >= len(b.data) || parseErr != nil {
			return
		}
		msg := b.data[i].asMessage()
		i++

		result, _ := jsonparser.GetString(value, "result")
		switch result {
		case "accepted":
			location, _ := jsonparser.GetString(value, "location")
			msg.ID = lastSegment(location)
			successes = append(successes, msg)
		case "error":
			msg.State = MessageStateError
			msg.ErrorMessage, _ = jsonparser.GetString(value, "error", "message")
			failures = append(failures, msg)
		default:
			parseErr = fmt.Errorf("unexpected batch result '%s'", result)
		}
	})
	if parseErr != nil {
		return nil, nil, parseErr
	}
	if i != len(b.data) {
		return nil, nil, fmt.Errorf("batch response contained %d results for %d messages", i, len(b.data))
	}
	return successes, failures, nil
}
