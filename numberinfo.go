package catapult

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// NumberInfo is the CNAM record of a phone number
type NumberInfo struct {
	Name    string     `json:"name,omitempty"`
	Number  string     `json:"number"`
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// NumberInfoService looks up caller-id names for numbers
type NumberInfoService struct {
	client *Client
}

// Get looks up the CNAM record for the passed in E.164 number. The number is
// URL-encoded so that + becomes %2B, already-encoded input is left alone.
func (s *NumberInfoService) Get(ctx context.Context, number string) (*NumberInfo, error) {
	info := &NumberInfo{}
	if _, err := s.client.get(ctx, "/phoneNumbers/numberInfo/"+encodeNumber(number), nil, info); err != nil {
		return nil, err
	}
	return info, nil
}

// encodeNumber URL-encodes a number for use as a path segment, avoiding double
// encoding of input that already is
func encodeNumber(number string) string {
	if strings.Contains(number, "%") {
		return number
	}
	return url.QueryEscape(number)
}
