package auth

import (
	"time"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	CountUsers() (int64, error)
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByActivationToken(token string) (*models.User, error)
	Create(u *models.User) error
	Save(u *models.User) error
	CreateResetToken(t *models.PasswordResetToken) error
	FindResetToken(token string) (*models.PasswordResetToken, error)
	// ResetPassword stores the new hash and consumes the token together.
	ResetPassword(t *models.PasswordResetToken, passwordHash string, at time.Time) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CountUsers() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *GormRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) FindByActivationToken(token string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("activation_token = ?", token).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *GormRepository) Save(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *GormRepository) CreateResetToken(t *models.PasswordResetToken) error {
	return r.db.Omit("User").Create(t).Error
}

func (r *GormRepository) FindResetToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.Preload("User").Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepository) ResetPassword(t *models.PasswordResetToken, passwordHash string, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", t.UserID).Update("password_hash", passwordHash).Error; err != nil {
			return err
		}
		// Kullanıcının diğer açık token'ları da geçersiz olur
		return tx.Model(&models.PasswordResetToken{}).
			Where("user_id = ? AND used_at IS NULL", t.UserID).
			Update("used_at", at).Error
	})
}
