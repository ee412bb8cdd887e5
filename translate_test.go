package catapult

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToExternal(t *testing.T) {
	in := map[string]any{
		"from_":        "+15551234567",
		"callback_url": "http://example.com/cb",
		"call_timeout": 30,
		"whisper_audio": map[string]any{
			"file_url": "http://example.com/hello.mp3",
		},
		"tags": []any{map[string]any{"sort_order": "asc"}},
		"time": time.Date(2016, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, map[string]any{
		"from":        "+15551234567",
		"callbackUrl": "http://example.com/cb",
		"callTimeout": 30,
		"whisperAudio": map[string]any{
			"fileUrl": "http://example.com/hello.mp3",
		},
		"tags": []any{map[string]any{"sortOrder": "asc"}},
		"time": "2016-03-15T12:00:00Z",
	}, toExternal(in))
}

func TestFromExternal(t *testing.T) {
	in := map[string]any{
		"callbackUrl":        "http://example.com/cb",
		"callState":          "completed",
		"chargeableDuration": float64(60),
		"details":            []any{map[string]any{"requestMethod": "POST"}},
	}

	assert.Equal(t, map[string]any{
		"callback_url":        "http://example.com/cb",
		"call_state":          "completed",
		"chargeable_duration": float64(60),
		"details":             []any{map[string]any{"request_method": "POST"}},
	}, fromExternal(in))
}

func TestRoundTrip(t *testing.T) {
	in := map[string]any{
		"callback_url":        "http://example.com/cb",
		"digits":              "123",
		"inter_digit_timeout": float64(5),
	}
	assert.Equal(t, in, fromExternal(toExternal(in)))
}

func TestCoerceDates(t *testing.T) {
	in := map[string]any{
		"created_time": "2016-03-15T12:00:00Z",
		"end_time":     "not a date",
		"tag":          "2016-03-15T12:00:00Z", // not a date key
		"events": []any{
			map[string]any{"time": "2016-03-15T12:30:00Z"},
		},
	}

	assert.Equal(t, map[string]any{
		"created_time": time.Date(2016, 3, 15, 12, 0, 0, 0, time.UTC),
		"end_time":     "not a date",
		"tag":          "2016-03-15T12:00:00Z",
		"events": []any{
			map[string]any{"time": time.Date(2016, 3, 15, 12, 30, 0, 0, time.UTC)},
		},
	}, coerceDates(in))
}

func TestKeyConversion(t *testing.T) {
	tcs := []struct {
		snake string
		camel string
	}{
		{"from", "from"},
		{"from_", "from"},
		{"callback_url", "callbackUrl"},
		{"inter_digit_timeout", "interDigitTimeout"},
		{"dtmf_out", "dtmfOut"},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.camel, snakeToCamel(tc.snake), "snake: %s", tc.snake)
	}

	assert.Equal(t, "callback_url", camelToSnake("callbackUrl"))
	assert.Equal(t, "from", camelToSnake("from"))
	assert.Equal(t, "recording_file_format", camelToSnake("recordingFileFormat"))
}
