package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitGuestUser 初始化游客占位用户；购物车与结算流程在未接入认证时回落到该身份
func InitGuestUser(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "guest"
	}

	var existing User
	err := DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 凭证仅为占位，不参与任何登录流程
	placeholder := make([]byte, 16)
	if _, err := rand.Read(placeholder); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(placeholder)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     username,
		Email:        username + "@autodropplatform.shop",
		PasswordHash: string(hash),
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Infow("guest_user_created", "username", username, "user_id", user.ID)
	return &user, nil
}
