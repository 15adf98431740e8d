package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnovs/filestash/internal/client/models"
)

func TestAuthenticate_StoresToken(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds["username"])
		assert.Equal(t, "pw", creds["password"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	assert.False(t, c.IsAuthenticated())

	require.NoError(t, c.Register(ctx, "alice", []byte("pw")))
	assert.True(t, c.IsAuthenticated())

	c.Logout()
	assert.False(t, c.IsAuthenticated())
}

func TestAuthenticate_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"conflict", http.StatusConflict, ErrConflict},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			defer srv.Close()

			c := NewFilestashClient(srv.URL)
			err := c.Login(ctx, "alice", []byte("pw"))
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestRequests_CarryBearerToken(t *testing.T) {
	ctx := context.Background()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-xyz"})
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]*models.FileInfo{})
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	require.NoError(t, c.Login(ctx, "alice", []byte("pw")))

	_, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestUpload_SendsMultipart(t *testing.T) {
	ctx := context.Background()
	payload := []byte("file contents")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/upload", r.URL.Path)

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "text/plain", header.Header.Get("Content-Type"))
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, payload, data)

		json.NewEncoder(w).Encode(&models.FileInfo{
			ID:               "file-1",
			OriginalFileName: header.Filename,
			ContentType:      "text/plain",
			Size:             int64(len(data)),
			UploadedAt:       time.Now(),
		})
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	info, err := c.Upload(ctx, "notes.txt", "text/plain", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "file-1", info.ID)
	assert.EqualValues(t, len(payload), info.Size)
}

func TestDownload_WritesBody(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/file-1/download", r.URL.Path)
		io.WriteString(w, "payload bytes")
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	var buf bytes.Buffer
	require.NoError(t, c.Download(ctx, "file-1", &buf))
	assert.Equal(t, "payload bytes", buf.String())
}

func TestDownload_NotFound(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	err := c.Download(ctx, "missing", io.Discard)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/files/file-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewFilestashClient(srv.URL)
	assert.NoError(t, c.Delete(ctx, "file-1"))
}

func TestServerUnavailable(t *testing.T) {
	ctx := context.Background()

	c := NewFilestashClient("http://127.0.0.1:1")
	err := c.Login(ctx, "alice", []byte("pw"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, strings.HasPrefix(err.Error(), ErrUnavailable.Error()))
}
