package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表；当前仅承载游客占位身份，未接入真实认证流程
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                         // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`         // 用户名
	Email        string         `gorm:"uniqueIndex" json:"email"`                     // 邮箱
	PasswordHash string         `gorm:"type:varchar(200)" json:"-"`                   // 凭证占位（bcrypt）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
