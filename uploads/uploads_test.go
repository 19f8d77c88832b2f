package uploads_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/uploads"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *uploads.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return uploads.NewClient(api.NewClient(server.URL + "/api"))
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/files/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "progress.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(content))

		_ = json.NewEncoder(w).Encode(uploads.File{
			ID: "f1", FileName: header.Filename, FileType: "image/png", FileSize: int64(len(content)),
		})
	})

	content := "png-bytes"
	file, err := c.Upload(context.Background(), "progress.png", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, "f1", file.ID)
	require.Equal(t, "progress.png", file.FileName)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Upload(context.Background(), "huge.png", uploads.MaxFileSize+1, strings.NewReader("x"))
	require.ErrorIs(t, err, uploads.ErrFileTooLarge)
	require.False(t, called)
}

func TestUploadRejectsNonImage(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Upload(context.Background(), "notes.pdf", 10, strings.NewReader("x"))
	require.ErrorIs(t, err, uploads.ErrUnsupportedType)
	require.False(t, called)
}

func TestMine(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/files/user/me", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]uploads.File{{ID: "f1"}, {ID: "f2"}})
	})

	files, err := c.Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/files/f1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "f1"))
}
