package dao

import (
	"context"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRowID 会话表只使用一行
const sessionRowID int64 = 1

// sqliteSessionRepository 实现 domain.SessionRepository 接口
type sqliteSessionRepository struct {
	db *gorm.DB
}

// NewSqliteSessionRepository 创建 SQLite 会话仓储并迁移表结构
func NewSqliteSessionRepository(db *gorm.DB) (domain.SessionRepository, error) {
	if err := model.AutoMigrate(db, "Session"); err != nil {
		return nil, errors.Wrap(err, "dao: migrate session")
	}
	return &sqliteSessionRepository{db: db}, nil
}

// toDomain 将数据库模型转换为领域模型
func (r *sqliteSessionRepository) toDomain(m *model.Session) *domain.Session {
	return &domain.Session{
		UserID:   m.UserID,
		Role:     domain.Role(m.Role),
		Username: m.Username,
		SavedAt:  m.SavedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *sqliteSessionRepository) toModel(s *domain.Session) *model.Session {
	return &model.Session{
		ID:       sessionRowID,
		UserID:   s.UserID,
		Role:     int64(s.Role),
		Username: s.Username,
		SavedAt:  s.SavedAt,
	}
}

func (r *sqliteSessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	var m model.Session
	err := r.db.WithContext(ctx).First(&m, sessionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewLoggedOutSession(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "dao: load session")
	}
	return r.toDomain(&m), nil
}

func (r *sqliteSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Save(r.toModel(s)).Error; err != nil {
		return errors.Wrap(err, "dao: save session")
	}
	return nil
}

func (r *sqliteSessionRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Delete(&model.Session{}, sessionRowID).Error; err != nil {
		return errors.Wrap(err, "dao: clear session")
	}
	return nil
}

func (r *sqliteSessionRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
