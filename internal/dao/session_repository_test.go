package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gookit/goutil/dump"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRepositories(t *testing.T) map[string]domain.SessionRepository {
	dir := t.TempDir()

	fileRepo, err := NewSessionRepository(DriverFile, filepath.Join(dir, "session.yaml"))
	require.NoError(t, err)

	sqliteRepo, err := NewSessionRepository(DriverSqlite, filepath.Join(dir, "db", "session.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		fileRepo.Close()
		sqliteRepo.Close()
	})

	return map[string]domain.SessionRepository{
		DriverFile:   fileRepo,
		DriverSqlite: sqliteRepo,
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()

	for name, repo := range sessionRepositories(t) {
		t.Run(name, func(t *testing.T) {
			// 初始为登出状态
			s, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.False(t, s.IsLoggedIn())
			assert.Equal(t, domain.LoggedOutUserID, s.UserID)
			assert.Equal(t, domain.RoleNormal, s.Role)

			saved := &domain.Session{
				UserID:   42,
				Role:     domain.RoleMajorAdmin,
				Username: "alice",
				SavedAt:  time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
			}
			require.NoError(t, repo.Save(ctx, saved))

			s, err = repo.Load(ctx)
			require.NoError(t, err)
			dump.P(s)
			assert.True(t, s.IsLoggedIn())
			assert.Equal(t, int64(42), s.UserID)
			assert.Equal(t, domain.RoleMajorAdmin, s.Role)
			assert.Equal(t, "alice", s.Username)
			assert.True(t, saved.SavedAt.Equal(s.SavedAt))

			// 覆盖保存
			require.NoError(t, repo.Save(ctx, &domain.Session{UserID: 7, Role: domain.RoleSuperAdmin, Username: "root"}))
			s, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(7), s.UserID)
			assert.False(t, s.SavedAt.IsZero())

			require.NoError(t, repo.Clear(ctx))
			s, err = repo.Load(ctx)
			require.NoError(t, err)
			assert.False(t, s.IsLoggedIn())

			// 重复清除不报错
			assert.NoError(t, repo.Clear(ctx))
		})
	}
}

func TestNewSessionRepository_UnknownDriver(t *testing.T) {
	_, err := NewSessionRepository("redis", "x")
	assert.Error(t, err)
}
