package dto

// LoginRequest User login request parameters
// 用户登录请求参数
type LoginRequest struct {
	Username string `json:"username" validate:"required"` // User name // 用户名
	Password string `json:"password" validate:"required"` // Password // 密码
}

// RegisterRequest User registration request parameters
// 用户注册请求参数
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`    // User name // 用户名
	Password string `json:"password" validate:"required"`    // Password // 密码
	Email    string `json:"email" validate:"required,email"` // User email // 用户邮件
}

// ProfileRequest Create/update profile request; UserID is only sent on create
// 创建/更新个人资料请求，创建时需要 userId
type ProfileRequest struct {
	UserID   *int64 `json:"userId,omitempty"`           // Owner, create only // 创建时需要
	Nickname string `json:"nickname" validate:"max=64"` // Nickname // 昵称
	Bio      string `json:"bio" validate:"max=512"`     // Bio // 个人简介
	Major    string `json:"major" validate:"max=128"`   // Major // 专业
}
