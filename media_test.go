package catapult_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedia(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/media": {
			httpx.NewMockResponse(200, nil, []byte(`[
				{"mediaName": "greeting.mp3", "contentLength": 561276, "content": "`+baseURL+`/users/u-123/media/greeting.mp3"},
				{"mediaName": "beep.wav", "contentLength": 9000, "content": "`+baseURL+`/users/u-123/media/beep.wav"}
			]`)),
		},
		baseURL + "/users/u-123/media/notes.txt": {
			httpx.NewMockResponse(200, nil, nil),                                                             // upload
			httpx.NewMockResponse(200, map[string]string{"Content-Type": "text/plain"}, []byte(`some text`)), // download
			httpx.NewMockResponse(200, nil, nil),                                                             // delete
		},
	})

	files, err := client.Media.List().All(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "greeting.mp3", files[0].MediaName)
	assert.Equal(t, int64(561276), files[0].ContentLength)

	err = client.Media.UploadStream(context.Background(), "notes.txt", strings.NewReader("some text"), "text/plain")
	assert.NoError(t, err)

	body, contentType, err := client.Media.Download(context.Background(), "notes.txt")
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "some text", string(content))
	assert.Equal(t, "text/plain", contentType)

	assert.NoError(t, client.Media.Delete(context.Background(), "notes.txt"))

	// a name is always required
	err = client.Media.Upload(context.Background(), "", []byte(`x`), "")
	assert.IsType(t, &catapult.ValidationError{}, err)
}
