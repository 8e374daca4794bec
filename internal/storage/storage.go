package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/events"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// Service is a filesystem-backed file store.
type Service struct {
	root       string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewService creates the storage root when missing.
func NewService(cfg config.StorageConfig, dispatcher events.Dispatcher, logger *zap.Logger) (*Service, error) {
	if cfg.RootDir == "" {
		return nil, errors.New("storage root not configured")
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Service{root: cfg.RootDir, dispatcher: dispatcher, logger: logger}, nil
}

// Store writes the content under a collision-free name and returns it.
func (s *Service) Store(ctx context.Context, filename string, content io.Reader) (string, int64, error) {
	base, err := sanitize(filename)
	if err != nil {
		return "", 0, err
	}

	stored := uuid.NewString() + "_" + base
	dst, err := os.Create(filepath.Join(s.root, stored))
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, content)
	if err != nil {
		return "", 0, fmt.Errorf("write file: %w", err)
	}

	s.logger.Info("file stored", zap.String("filename", stored), zap.Int64("size", size))
	s.publish(ctx, events.EventFileStored, events.FilePayload{Filename: stored, Size: size})
	return stored, size, nil
}

// Path resolves a stored filename to its on-disk location.
func (s *Service) Path(filename string) (string, error) {
	base, err := sanitize(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.root, base)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperrors.NewNotFound("file", map[string]any{"filename": base})
		}
		return "", err
	}
	return path, nil
}

// Delete removes a stored file.
func (s *Service) Delete(ctx context.Context, filename string) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	s.logger.Info("file deleted", zap.String("filename", filepath.Base(path)))
	s.publish(ctx, events.EventFileDeleted, events.FilePayload{Filename: filepath.Base(path)})
	return nil
}

func (s *Service) publish(ctx context.Context, eventType events.EventType, payload events.FilePayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Entity:    "FILE",
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func sanitize(filename string) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) || strings.Contains(base, "..") {
		return "", apperrors.NewValidationError("invalid filename", map[string]any{"filename": filename})
	}
	return base, nil
}
