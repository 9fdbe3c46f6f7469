package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_GrantAndRevoke(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	admin := b.AddUser("root", "pw", domain.RoleSuperAdmin)
	b.AddUser("carol", "pw", domain.RoleNormal)

	svc := NewAdminService(newClient(t, b), loggedIn(t, admin, domain.RoleSuperAdmin), newValidator(t), &ServiceConfig{Lang: code.LangEN}, nil)
	ctx := context.Background()

	major := int64(1)
	msg, err := svc.Grant(ctx, "carol", domain.RoleMajorAdmin, &major)
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, domain.RoleMajorAdmin, b.Role("carol"))

	// 服务端 message 为 null 时使用默认提示
	msg, err = svc.Revoke(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "Operation completed", msg)
	assert.Equal(t, domain.RoleNormal, b.Role("carol"))

	_, err = svc.Grant(ctx, "nobody", domain.RoleSystemAdmin, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "目标用户不存在")
}

func TestAdmin_GrantRejectsInvalidRole(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	admin := b.AddUser("root", "pw", domain.RoleSuperAdmin)
	svc := NewAdminService(newClient(t, b), loggedIn(t, admin, domain.RoleSuperAdmin), newValidator(t), nil, nil)

	for _, role := range []domain.Role{0, 5, -1} {
		_, err := svc.Grant(context.Background(), "carol", role, nil)
		assert.True(t, errors.Is(err, code.ErrorInvalidParams))
	}
	assert.Zero(t, b.Calls("/api/permissions"))
}

func TestAdmin_RequiresLogin(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	svc := NewAdminService(newClient(t, b), NewSessionStore(&memRepo{}, nil), nil, nil, nil)
	_, err := svc.Revoke(context.Background(), "carol")
	assert.True(t, errors.Is(err, code.ErrorNotLoggedIn))
}
