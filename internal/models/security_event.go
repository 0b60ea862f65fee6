package models

import "time"

type SecurityEventType string

const (
	SecurityEventLogin              SecurityEventType = "LOGIN"
	SecurityEventLogout             SecurityEventType = "LOGOUT"
	SecurityEventFailedLogin        SecurityEventType = "FAILED_LOGIN"
	SecurityEventPasswordReset      SecurityEventType = "PASSWORD_RESET"  // Şifre sıfırlama tamamlandı
	SecurityEventPasswordForgot     SecurityEventType = "PASSWORD_FORGOT" // Şifre sıfırlama başlatıldı
	SecurityEventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
)

type SecurityEvent struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Olayın ait olduğu kullanıcı
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Olayı tetikleyen kullanıcı, kullanıcının kendisiyse nil
	ActingUserID *uint

	Type     SecurityEventType `gorm:"size:30;index;not null"`
	Message  string            `gorm:"size:255"`
	Verified bool              `gorm:"not null;default:false"`
}
