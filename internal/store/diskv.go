package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvKV implements KV on flat files, one per record, for users who prefer
// plain-file storage over a database.
type DiskvKV struct {
	d *diskv.Diskv
}

// NewDiskvKV creates a file-backed KV rooted at basePath.
func NewDiskvKV(basePath string) (*DiskvKV, error) {
	if basePath == "" {
		return nil, errors.New("diskv: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("diskv: ensure base path: %w", err)
	}
	return &DiskvKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

// Load returns the blob stored under key.
func (s *DiskvKV) Load(key string) ([]byte, bool, error) {
	if !s.d.Has(key) {
		return nil, false, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("diskv: loading record %q: %w", key, err)
	}
	return data, true, nil
}

// Save writes the blob under key, replacing any previous value.
func (s *DiskvKV) Save(key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("diskv: saving record %q: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *DiskvKV) Close() error { return nil }
