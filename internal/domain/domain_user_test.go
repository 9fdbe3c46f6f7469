package domain

import (
	"testing"

	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	tests := []struct {
		role   Role
		admin  bool
		global bool
		zh     string
	}{
		{RoleNormal, false, false, "普通用户"},
		{RoleMajorAdmin, true, false, "专业管理员"},
		{RoleSystemAdmin, true, true, "通用管理员"},
		{RoleSuperAdmin, true, true, "超级管理员"},
		{Role(0), false, false, "普通用户"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.admin, tt.role.IsAdmin(), "role %d", tt.role)
		assert.Equal(t, tt.global, tt.role.HasGlobalPermission(), "role %d", tt.role)
		assert.Equal(t, tt.zh, tt.role.Label(code.LangZH))
	}
	assert.Equal(t, "Super admin", RoleSuperAdmin.Label(code.LangEN))
	assert.False(t, Role(5).Valid())
}

func TestSession(t *testing.T) {
	s := NewLoggedOutSession()
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, RoleNormal, s.Role)

	var nilSession *Session
	assert.False(t, nilSession.IsLoggedIn())

	s.UserID = 7
	assert.True(t, s.IsLoggedIn())
}

func TestProfileDisplayName(t *testing.T) {
	p := &Profile{Username: "alice"}
	assert.Equal(t, "alice", p.DisplayName())
	nick := "Al"
	p.Nickname = &nick
	assert.Equal(t, "Al", p.DisplayName())
}

func TestAttachmentStoredName(t *testing.T) {
	a := &Attachment{AccessURL: "/api/attachments/download/3/abc-123.pdf"}
	assert.Equal(t, "abc-123.pdf", a.StoredName())
}
