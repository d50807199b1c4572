package services_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"github.com/studenthunter/backend/internal/services"
)

func TestMarkNotificationRead(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := services.NewAdminService(db)

	n := models.AdminNotification{ID: uuid.New(), Type: "system", Title: "Disk space low"}
	require.NoError(t, db.Create(&n).Error)

	require.NoError(t, svc.MarkNotificationRead(n.ID))

	var got models.AdminNotification
	require.NoError(t, db.First(&got, "id = ?", n.ID).Error)
	assert.True(t, got.IsRead)
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	t.Parallel()
	svc := services.NewAdminService(newTestDB(t))

	err := svc.MarkNotificationRead(uuid.New())
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)
}

func TestMarkNotificationReadStorageError(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	require.NoError(t, db.Exec("DROP TABLE admin_notifications").Error)
	svc := services.NewAdminService(db)

	err := svc.MarkNotificationRead(uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrNotificationNotFound)
}

// levelRecorder is a slog.Handler that remembers the levels it saw.
type levelRecorder struct {
	mu     sync.Mutex
	levels []slog.Level
}

func (h *levelRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *levelRecorder) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.levels = append(h.levels, r.Level)
	return nil
}

func (h *levelRecorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *levelRecorder) WithGroup(string) slog.Handler      { return h }

func (h *levelRecorder) sawError() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, l := range h.levels {
		if l >= slog.LevelError {
			return true
		}
	}
	return false
}

// Swaps the default logger, so no t.Parallel here.
func TestCreateUserAuditFailureDoesNotBlock(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec("DROP TABLE moderation_logs").Error)

	rec := &levelRecorder{}
	prev := slog.Default()
	slog.SetDefault(slog.New(rec))
	defer slog.SetDefault(prev)

	svc := services.NewAdminService(db)
	user, err := svc.CreateUser(uuid.New(), &dto.CreateUserRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&count)
	assert.EqualValues(t, 1, count)

	assert.True(t, rec.sawError(), "audit write failure should be logged")
}
