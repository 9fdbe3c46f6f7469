package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Session":
		return db.AutoMigrate(Session{})
	}
	return nil
}
