package domain

import (
	"time"

	"github.com/haierkeys/bitshared-cli/pkg/code"
)

// Role 用户角色等级
type Role int

const (
	RoleNormal      Role = 1
	RoleMajorAdmin  Role = 2
	RoleSystemAdmin Role = 3
	RoleSuperAdmin  Role = 4
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r >= RoleNormal && r <= RoleSuperAdmin
}

// IsAdmin 专业管理员及以上
func (r Role) IsAdmin() bool {
	return r >= RoleMajorAdmin
}

// HasGlobalPermission 通用管理员及以上，拥有全部课程权限
func (r Role) HasGlobalPermission() bool {
	return r >= RoleSystemAdmin
}

// Label returns the display name in the given language.
// Unknown roles render as a normal user.
func (r Role) Label(lang string) string {
	zh := lang == code.LangZH
	switch r {
	case RoleMajorAdmin:
		if zh {
			return "专业管理员"
		}
		return "Major admin"
	case RoleSystemAdmin:
		if zh {
			return "通用管理员"
		}
		return "System admin"
	case RoleSuperAdmin:
		if zh {
			return "超级管理员"
		}
		return "Super admin"
	default:
		if zh {
			return "普通用户"
		}
		return "Normal user"
	}
}

// User 登录/注册接口返回的用户
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Profile 用户详细资料
type Profile struct {
	UserID   int64   `json:"userId"`
	Username string  `json:"username"`
	Nickname *string `json:"nickname"`
	Bio      *string `json:"bio"`
	Major    *string `json:"major"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
}

// DisplayName 昵称优先，否则用户名
func (p *Profile) DisplayName() string {
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	return p.Username
}

// LoggedOutUserID 未登录时的用户 ID
const LoggedOutUserID int64 = -1

// Session 本地登录会话
type Session struct {
	UserID   int64     `json:"userId" yaml:"user-id"`
	Role     Role      `json:"role" yaml:"role"`
	Username string    `json:"username" yaml:"username"`
	SavedAt  time.Time `json:"savedAt" yaml:"saved-at"`
}

// NewLoggedOutSession 返回登出状态的会话
func NewLoggedOutSession() *Session {
	return &Session{UserID: LoggedOutUserID, Role: RoleNormal}
}

// IsLoggedIn 是否已登录
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.UserID != LoggedOutUserID
}
