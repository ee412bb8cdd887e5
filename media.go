package catapult

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/nyaruka/gocommon/httpx"
)

const defaultMediaType = "application/octet-stream"

// MediaFile is a named binary object stored by the platform, the name is its identity
type MediaFile struct {
	MediaName     string `json:"mediaName"`
	ContentLength int64  `json:"contentLength"`
	Content       string `json:"content,omitempty"` // absolute URL used for download
}

// MediaService uploads, downloads and lists stored media
type MediaService struct {
	client *Client
}

func (s *MediaService) path(name string) string {
	if name == "" {
		return s.client.userPath("/media")
	}
	return s.client.userPath("/media/" + url.PathEscape(name))
}

// List returns an iterator over this user's media files
func (s *MediaService) List() *Iter[*MediaFile] {
	return listIter[*MediaFile](s.client, s.path(""), nil, nil)
}

// Upload stores the passed in bytes under the given name. An empty content type
// defaults to detection from the data itself.
func (s *MediaService) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if name == "" {
		return &ValidationError{Message: "media name is required"}
	}
	if contentType == "" {
		contentType, _ = httpx.DetectContentType(data)
	}
	if contentType == "" {
		contentType = defaultMediaType
	}
	_, err := s.client.request(ctx, http.MethodPut, s.path(name), nil, data, map[string]string{"Content-Type": contentType})
	return err
}

// UploadFile stores the file at the passed in path under the given name. The file
// is closed on all exit paths.
func (s *MediaService) UploadFile(ctx context.Context, name, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening media file %s: %w", path, err)
	}
	defer f.Close()

	return s.UploadStream(ctx, name, f, contentType)
}

// UploadStream stores the contents of an already-open stream under the given name.
// The stream is read to EOF, its lifetime stays with the caller.
func (s *MediaService) UploadStream(ctx context.Context, name string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading media stream: %w", err)
	}
	return s.Upload(ctx, name, data, contentType)
}

// Download fetches the media file as a stream along with its content type. The
// caller owns the returned body and must close it.
func (s *MediaService) Download(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return s.client.stream(ctx, http.MethodGet, s.path(name), nil, "")
}

// DownloadURL fetches a media file by its absolute content URL
func (s *MediaService) DownloadURL(ctx context.Context, contentURL string) (io.ReadCloser, string, error) {
	return s.client.stream(ctx, http.MethodGet, contentURL, nil, "")
}

// Delete removes the media file with the passed in name
func (s *MediaService) Delete(ctx context.Context, name string) error {
	return s.client.delete(ctx, s.path(name))
}
