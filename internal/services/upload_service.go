package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"weijob_backend/internal/config"
	"weijob_backend/internal/storage"
	"weijob_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	// Upload validates and stores one file, returning its public URL.
	Upload(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (string, error)
}

type UploadServiceImpl struct {
	storage storage.Storage
}

func NewUploadService(st storage.Storage) UploadService {
	return &UploadServiceImpl{storage: st}
}

func (s *UploadServiceImpl) Upload(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (string, error) {
	cfg := config.GetConfig()

	if size > cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	allowed := false
	for _, t := range cfg.Upload.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", apperrors.ErrInvalidFileType
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)

	if err := s.storage.Save(ctx, path, reader, contentType); err != nil {
		return "", apperrors.ErrStorage(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.ErrStorage(err)
	}
	return url, nil
}
