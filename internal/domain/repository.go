// Package domain 定义领域模型和接口
package domain

import "context"

// SessionRepository 会话仓储接口
// A repository holds at most one session: the locally logged-in user.
type SessionRepository interface {
	// Load 读取已保存的会话，不存在时返回登出状态的会话
	Load(ctx context.Context) (*Session, error)

	// Save 覆盖保存会话
	Save(ctx context.Context, session *Session) error

	// Clear 删除已保存的会话
	Clear(ctx context.Context) error

	// Close 释放底层资源
	Close() error
}
