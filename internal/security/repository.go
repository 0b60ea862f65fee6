package security

import (
	"time"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	Create(e *models.SecurityEvent) error
	// CountSince counts the events of one type a user collected after since.
	CountSince(userID uint, t models.SecurityEventType, since time.Time) (int64, error)
	FindSince(since time.Time, offset, limit int) ([]models.SecurityEvent, int64, error)
	FindByID(id uint) (*models.SecurityEvent, error)
	MarkVerified(e *models.SecurityEvent) error
	FindUser(id uint) (*models.User, error)
	FindAdmins() ([]models.User, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(e *models.SecurityEvent) error {
	return r.db.Omit("User").Create(e).Error
}

func (r *GormRepository) CountSince(userID uint, t models.SecurityEventType, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.SecurityEvent{}).
		Where("user_id = ? AND type = ? AND created_at > ?", userID, t, since).
		Count(&n).Error
	return n, err
}

// FindSince: en yeni olay en üstte
func (r *GormRepository) FindSince(since time.Time, offset, limit int) ([]models.SecurityEvent, int64, error) {
	q := r.db.Model(&models.SecurityEvent{}).Where("created_at > ?", since)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.SecurityEvent
	err := q.Preload("User").Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *GormRepository) FindByID(id uint) (*models.SecurityEvent, error) {
	var e models.SecurityEvent
	if err := r.db.Preload("User").First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormRepository) MarkVerified(e *models.SecurityEvent) error {
	e.Verified = true
	return r.db.Model(e).Update("verified", true).Error
}

func (r *GormRepository) FindUser(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) FindAdmins() ([]models.User, error) {
	var admins []models.User
	err := r.db.Where("role = ? AND enabled = ?", models.RoleAdmin, true).Find(&admins).Error
	return admins, err
}
