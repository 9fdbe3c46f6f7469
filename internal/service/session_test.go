package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	s := NewSessionStore(repo, nil)

	assert.False(t, s.IsLoggedIn())
	_, err := s.RequireLogin()
	assert.True(t, errors.Is(err, code.ErrorNotLoggedIn))

	require.NoError(t, s.Save(ctx, &domain.Session{UserID: 7, Role: domain.RoleMajorAdmin, Username: "alice"}))
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, 1, repo.saves)
	assert.False(t, repo.session.SavedAt.IsZero())

	// 新的 store 从仓储恢复
	restored := NewSessionStore(repo, nil)
	loaded, err := restored.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.UserID)
	assert.Equal(t, domain.RoleMajorAdmin, restored.Current().Role)

	require.NoError(t, restored.Clear(ctx))
	assert.False(t, restored.IsLoggedIn())
	assert.Equal(t, int64(domain.LoggedOutUserID), restored.Current().UserID)
}

func TestSessionStore_CurrentIsCopy(t *testing.T) {
	s := loggedIn(t, 3, domain.RoleNormal)
	c := s.Current()
	c.UserID = 99
	assert.Equal(t, int64(3), s.Current().UserID)
}

func TestSessionStore_RepositoryError(t *testing.T) {
	repo := &memRepo{err: errors.New("disk full")}
	s := NewSessionStore(repo, nil)

	err := s.Save(context.Background(), &domain.Session{UserID: 1, Role: domain.RoleNormal})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorSessionStore))
	assert.False(t, s.IsLoggedIn())

	_, err = s.Load(context.Background())
	assert.True(t, errors.Is(err, code.ErrorSessionStore))
}
