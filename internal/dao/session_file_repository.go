package dao

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileSessionRepository 以 YAML 文件保存会话
type fileSessionRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileSessionRepository 创建文件会话仓储
func NewFileSessionRepository(path string) domain.SessionRepository {
	return &fileSessionRepository{path: path}
}

func (r *fileSessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return domain.NewLoggedOutSession(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "dao: read session file")
	}

	s := domain.NewLoggedOutSession()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "dao: parse session file")
	}
	return s, nil
}

func (r *fileSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "dao: encode session")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return errors.Wrap(err, "dao: create session dir")
	}

	// 先写临时文件再改名，避免半写入
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(err, "dao: write session file")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrap(err, "dao: write session file")
	}
	return nil
}

func (r *fileSessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "dao: remove session file")
	}
	return nil
}

func (r *fileSessionRepository) Close() error {
	return nil
}
