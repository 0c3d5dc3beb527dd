package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageService_DownloadHTTP(t *testing.T) {
	small := bytes.Repeat([]byte("a"), 512)
	large := bytes.Repeat([]byte("b"), 64<<10)

	mux := http.NewServeMux()
	mux.HandleFunc("/small.pdf", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(small) })
	mux.HandleFunc("/large.pdf", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(large) })
	mux.HandleFunc("/empty.pdf", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("/missing.pdf", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tests := []struct {
		name     string
		path     string
		maxBytes int64
		want     []byte
		errMsg   string
	}{
		{name: "within limit", path: "/small.pdf", maxBytes: 1024, want: small},
		{name: "no limit", path: "/large.pdf", maxBytes: 0, want: large},
		{name: "body over limit", path: "/large.pdf", maxBytes: 1024, errMsg: "too large"},
		{name: "empty body", path: "/empty.pdf", maxBytes: 1024, errMsg: "empty body"},
		{name: "error status", path: "/missing.pdf", maxBytes: 1024, errMsg: "status 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLocalStorageService(&config.StorageConfig{MaxDownloadBytes: tt.maxBytes})

			got, err := svc.Download(context.Background(), srv.URL+tt.path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorageService_UploadThenDownload(t *testing.T) {
	svc := NewLocalStorageService(&config.StorageConfig{LocalDir: t.TempDir()})
	data := []byte("%PDF-1.4 resume")

	url, err := svc.Upload(context.Background(), "Resume.PDF", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	got, err := svc.Download(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDownloadURL_RejectsUnsupportedScheme(t *testing.T) {
	svc := NewLocalStorageService(&config.StorageConfig{})

	_, err := svc.Download(context.Background(), "ftp://example.com/resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resume url")
}
