package storage

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/events"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(config.StorageConfig{RootDir: t.TempDir()}, events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestStoreAndServe(t *testing.T) {
	svc := newTestService(t)

	stored, size, err := svc.Store(context.Background(), "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_report.pdf"))
	assert.Equal(t, int64(len("content")), size)

	path, err := svc.Path(stored)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestStoreStripsDirectoryComponents(t *testing.T) {
	svc := newTestService(t)

	stored, _, err := svc.Store(context.Background(), "../outside/../../name.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_name.txt"))
	assert.NotContains(t, stored, "/")
}

func TestStoreRejectsEmptyFilename(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Store(context.Background(), "  ", strings.NewReader("x"))
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestPathMissingFile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Path("missing.txt")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestDeleteRemovesFile(t *testing.T) {
	svc := newTestService(t)

	stored, _, err := svc.Store(context.Background(), "tmp.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), stored))

	_, err = svc.Path(stored)
	assert.Error(t, err)
}

func TestStorePublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.EventType
	dispatcher.Subscribe(events.EventFileStored, func(_ context.Context, event events.Event) error {
		published = append(published, event.Type)
		return nil
	})

	svc, err := NewService(config.StorageConfig{RootDir: t.TempDir()}, dispatcher, zap.NewNop())
	require.NoError(t, err)

	_, _, err = svc.Store(context.Background(), "evt.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, []events.EventType{events.EventFileStored}, published)
}
