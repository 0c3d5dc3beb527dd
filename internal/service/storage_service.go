package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// StorageServiceInterface stores resume files and reads them back by URL.
type StorageServiceInterface interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// NewStorageService picks the remote object store when an upload URL is
// configured and falls back to local disk otherwise.
func NewStorageService(cfg *config.StorageConfig) StorageServiceInterface {
	if cfg.UploadURL != "" {
		return NewHTTPStorageService(cfg)
	}
	return NewLocalStorageService(cfg)
}

// HTTPStorageService talks to an upload API that accepts multipart files
// and answers with the public URL of the stored object.
type HTTPStorageService struct {
	cfg    *config.StorageConfig
	client *resty.Client
}

func NewHTTPStorageService(cfg *config.StorageConfig) *HTTPStorageService {
	return &HTTPStorageService{cfg: cfg, client: resty.New()}
}

func (s *HTTPStorageService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.APIKey).
		SetFileReader("file", storedName(filename), bytes.NewReader(data)).
		SetFormData(map[string]string{"folder": s.cfg.Folder}).
		Post(s.cfg.UploadURL)
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload resume: status %d", resp.StatusCode())
	}

	body := resp.String()
	for _, path := range []string{"secure_url", "url", "data.url", "data.secure_url"} {
		if url := gjson.Get(body, path).String(); url != "" {
			return url, nil
		}
	}
	return "", fmt.Errorf("upload resume: response has no url")
}

func (s *HTTPStorageService) Download(ctx context.Context, url string) ([]byte, error) {
	return downloadURL(ctx, s.client, url, s.cfg.MaxDownloadBytes)
}

// LocalStorageService keeps resumes on disk and returns file:// URLs.
type LocalStorageService struct {
	cfg    *config.StorageConfig
	client *resty.Client
}

func NewLocalStorageService(cfg *config.StorageConfig) *LocalStorageService {
	return &LocalStorageService{cfg: cfg, client: resty.New()}
}

func (s *LocalStorageService) Upload(_ context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.LocalDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(s.cfg.LocalDir, storedName(filename)))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write resume: %w", err)
	}
	return "file://" + filepath.ToSlash(path), nil
}

func (s *LocalStorageService) Download(ctx context.Context, url string) ([]byte, error) {
	if path, ok := strings.CutPrefix(url, "file://"); ok {
		data, err := os.ReadFile(filepath.FromSlash(path))
		if err != nil {
			return nil, fmt.Errorf("read resume: %w", err)
		}
		return data, nil
	}
	return downloadURL(ctx, s.client, url, s.cfg.MaxDownloadBytes)
}

func downloadURL(ctx context.Context, client *resty.Client, url string, maxBytes int64) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported resume url %q", url)
	}
	req := client.R().SetContext(ctx)
	if maxBytes > 0 {
		// stop reading once the body passes the limit
		req.SetResponseBodyLimit(int(maxBytes))
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download resume: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download resume: status %d", resp.StatusCode())
	}
	data := resp.Body()
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("download resume: %d bytes exceeds limit of %d", len(data), maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("download resume: empty body")
	}
	return data, nil
}

func storedName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return uuid.NewString() + ext
}
