package service

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	apperrors "github.com/haierkeys/bitshared-cli/pkg/errors"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"go.uber.org/zap"
)

// SessionStore holds the logged-in user and is injected into every
// controller that needs the acting user id or role.
// SessionStore 会话存储，注入到各控制器
type SessionStore interface {
	// Load 从仓储读取会话并设为当前会话
	Load(ctx context.Context) (*domain.Session, error)
	// Save 保存并设为当前会话
	Save(ctx context.Context, s *domain.Session) error
	// Clear 清除会话，当前会话变为登出状态
	Clear(ctx context.Context) error
	// Current 当前会话副本
	Current() *domain.Session
	IsLoggedIn() bool
	// RequireLogin returns the current session or ErrorNotLoggedIn
	RequireLogin() (*domain.Session, error)
}

type sessionStore struct {
	mu      sync.RWMutex
	repo    domain.SessionRepository
	current *domain.Session
	logger  *zap.Logger
}

// NewSessionStore 创建会话存储，初始为登出状态，需调用 Load
func NewSessionStore(repo domain.SessionRepository, lg *zap.Logger) SessionStore {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &sessionStore{repo: repo, current: domain.NewLoggedOutSession(), logger: lg}
}

func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(code.ErrorSessionStore, err)
	}
	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return s.Current(), nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	saved := *session
	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now()
	}
	if err := s.repo.Save(ctx, &saved); err != nil {
		return apperrors.NewAppError(code.ErrorSessionStore, err)
	}
	s.mu.Lock()
	s.current = &saved
	s.mu.Unlock()

	s.logger.Debug("session saved",
		zap.Int64(logger.FieldUID, saved.UserID),
		zap.Int(logger.FieldRole, int(saved.Role)))
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return apperrors.NewAppError(code.ErrorSessionStore, err)
	}
	s.mu.Lock()
	s.current = domain.NewLoggedOutSession()
	s.mu.Unlock()
	return nil
}

func (s *sessionStore) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := *s.current
	return &c
}

func (s *sessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsLoggedIn()
}

func (s *sessionStore) RequireLogin() (*domain.Session, error) {
	c := s.Current()
	if !c.IsLoggedIn() {
		return nil, code.ErrorNotLoggedIn
	}
	return c, nil
}
