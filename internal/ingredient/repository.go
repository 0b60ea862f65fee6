package ingredient

import (
	"slices"
	"strings"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(id uint) (*models.Ingredient, error)
	FindByIDAndOwner(id, userID uint) (*models.Ingredient, error)
	FindAllByOwner(userID uint) ([]models.Ingredient, error)
	Filter(userID uint, search string, categories []models.IngredientCategory, offset, limit int) ([]models.Ingredient, int64, error)
	Create(i *models.Ingredient) error
	CreateMany(items []models.Ingredient) error
	Save(i *models.Ingredient) error
	Delete(i *models.Ingredient) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByID(id uint) (*models.Ingredient, error) {
	var i models.Ingredient
	if err := r.db.First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *GormRepository) FindByIDAndOwner(id, userID uint) (*models.Ingredient, error) {
	var i models.Ingredient
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// FindAllByOwner: kategori sırası, sonra isim
func (r *GormRepository) FindAllByOwner(userID uint) ([]models.Ingredient, error) {
	var items []models.Ingredient
	if err := r.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.Ingredient) int {
		return models.CompareIngredients(&a, &b)
	})
	return items, nil
}

func (r *GormRepository) Filter(userID uint, search string, categories []models.IngredientCategory, offset, limit int) ([]models.Ingredient, int64, error) {
	q := r.db.Model(&models.Ingredient{}).Where("user_id = ?", userID)
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Ingredient
	if err := q.Order("name asc, id asc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepository) Create(i *models.Ingredient) error {
	return r.db.Create(i).Error
}

// CreateMany: toplu import, hepsi ya da hiçbiri
func (r *GormRepository) CreateMany(items []models.Ingredient) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&items, 100).Error
	})
}

func (r *GormRepository) Save(i *models.Ingredient) error {
	return r.db.Save(i).Error
}

func (r *GormRepository) Delete(i *models.Ingredient) error {
	return r.db.Delete(i).Error
}
