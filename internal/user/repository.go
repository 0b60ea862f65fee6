package user

import (
	"strings"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(search string, role models.UserRole, offset, limit int) ([]models.User, int64, error)
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Save(u *models.User) error
	// Delete removes the user together with everything the user owns.
	Delete(u *models.User) error
	// RequestEmailChange stores the pending address and its token together.
	RequestEmailChange(u *models.User, t *models.EmailChangeToken) error
	FindEmailToken(token string) (*models.EmailChangeToken, error)
	// ConfirmEmail applies the pending address and drops the token.
	ConfirmEmail(t *models.EmailChangeToken, email string) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindAll: role boşsa tüm roller
func (r *GormRepository) FindAll(search string, role models.UserRole, offset, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Order("id asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
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

func (r *GormRepository) Save(u *models.User) error {
	return r.db.Save(u).Error
}

// Delete: yemek ve malzemelerin users tablosuna FK'si yok, elle silinir.
// Listeler, token'lar ve güvenlik olayları cascade ile gider.
func (r *GormRepository) Delete(u *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.GroceryList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.Dish{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
}

func (r *GormRepository) RequestEmailChange(u *models.User, t *models.EmailChangeToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		return tx.Omit("User").Create(t).Error
	})
}

func (r *GormRepository) FindEmailToken(token string) (*models.EmailChangeToken, error) {
	var t models.EmailChangeToken
	if err := r.db.Preload("User").Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepository) ConfirmEmail(t *models.EmailChangeToken, email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", t.UserID).
			Updates(map[string]any{"email": email, "pending_email": nil}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.EmailChangeToken{}, t.ID).Error
	})
}
