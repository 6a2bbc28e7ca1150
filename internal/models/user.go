package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a registered account. All other resources are namespaced by
// the user that owns them.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	Username     string `json:"username" example:"jane"`
	PasswordHash string `json:"-"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)

	return nil
}
