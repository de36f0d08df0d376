package storage

import (
	"context"
	"io"
)

// Storage is the file storage abstraction used for uploaded images
// (company logos, avatars).
type Storage interface {
	// Save stores a file at the given path.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration.
type Config struct {
	BasePath string // local storage root
	BaseURL  string // public URL base
}

// NewStorage builds the configured storage backend.
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
}
