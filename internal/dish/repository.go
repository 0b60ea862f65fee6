package dish

import (
	"strings"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindByID(id uint) (*models.Dish, error)
	FindByIDAndOwner(id, userID uint) (*models.Dish, error)
	FindAllByOwner(userID uint, search string, offset, limit int) ([]models.Dish, int64, error)
	Filter(userID uint, search string, cuisines []models.CuisineType, offset, limit int) ([]models.Dish, int64, error)
	Create(d *models.Dish) error
	Update(d *models.Dish) error
	Delete(d *models.Dish) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		})
}

func (r *GormRepository) FindByID(id uint) (*models.Dish, error) {
	var d models.Dish
	if err := r.preloaded().First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepository) FindByIDAndOwner(id, userID uint) (*models.Dish, error) {
	var d models.Dish
	if err := r.preloaded().Where("id = ? AND user_id = ?", id, userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepository) FindAllByOwner(userID uint, search string, offset, limit int) ([]models.Dish, int64, error) {
	q := r.db.Model(&models.Dish{}).Where("user_id = ?", userID)
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return findPage(q, offset, limit)
}

// Filter searches name, description, tags and ingredient names; cuisines
// narrows by type when not empty.
func (r *GormRepository) Filter(userID uint, search string, cuisines []models.CuisineType, offset, limit int) ([]models.Dish, int64, error) {
	q := r.db.Model(&models.Dish{}).Where("dishes.user_id = ?", userID)
	if len(cuisines) > 0 {
		q = q.Where("dishes.type IN ?", cuisines)
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		// Birden çok malzeme eşleşse de yemek bir kez sayılsın diye alt sorgu
		matching := r.db.Table("dishes AS d").
			Distinct("d.id").
			Joins("LEFT JOIN dish_ingredients AS di ON di.dish_id = d.id").
			Joins("LEFT JOIN ingredients AS i ON i.id = di.ingredient_id").
			Where("LOWER(d.name) LIKE ? OR LOWER(d.description) LIKE ? OR LOWER(i.name) LIKE ? OR LOWER(d.tags) LIKE ?",
				like, like, like, like)
		q = q.Where("dishes.id IN (?)", matching)
	}
	return findPage(q, offset, limit)
}

func findPage(q *gorm.DB, offset, limit int) ([]models.Dish, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dishes []models.Dish
	err := q.
		Preload("Ingredients.Ingredient").
		Order("name asc, id asc").
		Offset(offset).
		Limit(limit).
		Find(&dishes).Error
	if err != nil {
		return nil, 0, err
	}
	return dishes, total, nil
}

func (r *GormRepository) Create(d *models.Dish) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
			return err
		}
		return createChildren(tx, d)
	})
}

// Update: malzeme ve adım listeleri tamamen yenisiyle değiştirilir
func (r *GormRepository) Update(d *models.Dish) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(d).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", d.ID).Delete(&models.DishIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", d.ID).Delete(&models.RecipeStep{}).Error; err != nil {
			return err
		}
		return createChildren(tx, d)
	})
}

func (r *GormRepository) Delete(d *models.Dish) error {
	return r.db.Select(clause.Associations).Delete(d).Error
}

func createChildren(tx *gorm.DB, d *models.Dish) error {
	for i := range d.Ingredients {
		d.Ingredients[i].DishID = d.ID
	}
	for i := range d.Steps {
		d.Steps[i].ID = 0
		d.Steps[i].DishID = d.ID
	}
	if len(d.Ingredients) > 0 {
		if err := tx.Omit("Ingredient").Create(&d.Ingredients).Error; err != nil {
			return err
		}
	}
	if len(d.Steps) > 0 {
		if err := tx.Create(&d.Steps).Error; err != nil {
			return err
		}
	}
	return nil
}
