// Package uploads is the typed client for the file routes: progress
// photos and other attachments.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fittrack/go-fitness-client/api"
)

// MaxFileSize is the largest upload the backend accepts.
const MaxFileSize = 5 * 1024 * 1024

// ErrFileTooLarge is returned for uploads exceeding MaxFileSize.
var ErrFileTooLarge = errors.New("file exceeds the 5 MB upload limit")

// ErrUnsupportedType is returned for uploads that are not images.
var ErrUnsupportedType = errors.New("only image uploads are supported")

// File is the backend's record of an uploaded file.
type File struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Client is the typed client for the file routes.
type Client struct {
	api *api.Client
}

// NewClient creates an uploads Client over the shared api client.
func NewClient(client *api.Client) *Client {
	return &Client{api: client}
}

// Upload sends the file content as multipart form data. size is the
// content length in bytes; it is validated before any bytes are sent.
func (c *Client) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*File, error) {
	if size > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "[Client.Upload] %s (%d bytes)", filename, size)
	}
	if !isImage(filename) {
		return nil, errors.Wrapf(ErrUnsupportedType, "[Client.Upload] %s", filename)
	}

	var out File
	if err := c.api.Upload(ctx, "files/upload", "file", filename, r, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Upload] files/upload")
	}
	return &out, nil
}

// Mine fetches the signed-in user's uploaded files.
func (c *Client) Mine(ctx context.Context) ([]File, error) {
	var out []File
	if err := c.api.Get(ctx, "files/user/me", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.Mine] files/user/me")
	}
	return out, nil
}

// Delete removes an uploaded file.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("files/%s", fileID), nil); err != nil {
		return errors.Wrapf(err, "[Client.Delete] files/%s", fileID)
	}
	return nil
}

// URL returns the download URL for a stored file.
func (c *Client) URL(fileID string) string {
	return fmt.Sprintf("%s/files/%s", c.api.BaseURL(), fileID)
}

func isImage(filename string) bool {
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	return strings.HasPrefix(mimeType, "image/")
}
