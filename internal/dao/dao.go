// Package dao 实现数据访问层
package dao

import (
	"os"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	// DriverFile YAML 文件会话存储
	DriverFile = "file"
	// DriverSqlite SQLite 会话存储
	DriverSqlite = "sqlite"
)

// NewDBEngine opens (and creates) a pure-Go SQLite database at path
// NewDBEngine 打开 SQLite 数据库，不存在时自动创建
func NewDBEngine(path string) (*gorm.DB, error) {
	if path != ":memory:" && !fileurl.IsExist(path) {
		if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "dao")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "dao")
	}

	// 获取通用数据库对象 sql.DB ，单连接即可
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "dao")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// NewSessionRepository 按驱动创建会话仓储
func NewSessionRepository(driver, path string) (domain.SessionRepository, error) {
	switch driver {
	case DriverFile, "":
		return NewFileSessionRepository(path), nil
	case DriverSqlite:
		db, err := NewDBEngine(path)
		if err != nil {
			return nil, err
		}
		return NewSqliteSessionRepository(db)
	}
	return nil, errors.Errorf("dao: unknown session driver %q", driver)
}
