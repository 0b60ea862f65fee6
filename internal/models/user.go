package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func ParseUserRole(s string) (UserRole, bool) {
	r := UserRole(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

type User struct {
	ID              uint     `gorm:"primaryKey"`
	Name            string   `gorm:"size:100;not null"`
	Email           string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash    string   `gorm:"size:255;not null"`
	Role            UserRole `gorm:"size:20;not null"`
	Enabled         bool     `gorm:"not null;default:false"`
	ActivationToken *string  `gorm:"size:64;uniqueIndex"` // Aktivasyon tamamlanınca nil
	PendingEmail    *string  `gorm:"size:100"`             // Onay bekleyen yeni e-posta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Activated: hesap aktif ve bekleyen aktivasyon token'ı yok
func (u *User) Activated() bool {
	return u.Enabled && u.ActivationToken == nil
}
