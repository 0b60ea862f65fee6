package models

import "time"

const EmailChangeTokenTTL = 2 * time.Hour

// EmailChangeToken confirms User.PendingEmail. It is deleted once used.
type EmailChangeToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token     string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (t *EmailChangeToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
