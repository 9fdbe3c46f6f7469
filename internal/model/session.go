package model

import "time"

const TableNameSession = "session"

// Session mapped from table <session>; the table holds a single row
type Session struct {
	ID       int64     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	UserID   int64     `gorm:"column:user_id;not null;default:-1" json:"userId" form:"userId"`
	Role     int64     `gorm:"column:role;not null;default:1" json:"role" form:"role"`
	Username string    `gorm:"column:username;not null;default:''" json:"username" form:"username"`
	SavedAt  time.Time `gorm:"column:saved_at" json:"savedAt" form:"savedAt"`
}

// TableName Session's table name
func (*Session) TableName() string {
	return TableNameSession
}
