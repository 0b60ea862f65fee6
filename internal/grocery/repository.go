package grocery

import (
	"slices"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DishLookup resolves the dishes referenced by cart entries.
type DishLookup interface {
	FindByIDAndOwner(id, userID uint) (*models.Dish, error)
}

// IngredientLookup resolves ingredients while a list is built or edited.
type IngredientLookup interface {
	FindByIDAndOwner(id, userID uint) (*models.Ingredient, error)
}

type ListRepository interface {
	Create(list *models.GroceryList) error
	FindByIDAndOwner(id, userID uint) (*models.GroceryList, error)
	FindAllByOwner(userID uint, offset, limit int) ([]models.GroceryList, int64, error)
	// ApplyReconciliation writes rec to list in one transaction. added are
	// the resolved rows of rec.Added.
	ApplyReconciliation(list *models.GroceryList, rec Reconciliation, added []models.GroceryListIngredient) error
	Delete(list *models.GroceryList) error
}

type GormListRepository struct {
	db *gorm.DB
}

func NewGormListRepository(db *gorm.DB) *GormListRepository {
	return &GormListRepository{db: db}
}

func (r *GormListRepository) Create(list *models.GroceryList) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(list).Error; err != nil {
			return err
		}
		if len(list.Ingredients) == 0 {
			return nil
		}
		for i := range list.Ingredients {
			list.Ingredients[i].GroceryListID = list.ID
		}
		return tx.Omit("Ingredient").Create(&list.Ingredients).Error
	})
}

func (r *GormListRepository) FindByIDAndOwner(id, userID uint) (*models.GroceryList, error) {
	var list models.GroceryList
	err := r.db.
		Preload("Ingredients.Ingredient").
		Where("id = ? AND user_id = ?", id, userID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// FindAllByOwner: en yeni hafta en üstte, malzemeler yüklenmez
func (r *GormListRepository) FindAllByOwner(userID uint, offset, limit int) ([]models.GroceryList, int64, error) {
	q := r.db.Model(&models.GroceryList{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []models.GroceryList
	err := q.Order("start_of_week desc, id desc").Offset(offset).Limit(limit).Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

func (r *GormListRepository) ApplyReconciliation(list *models.GroceryList, rec Reconciliation, added []models.GroceryListIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range rec.Removed {
			err := tx.
				Where("grocery_list_id = ? AND ingredient_id = ?", list.ID, item.IngredientID).
				Delete(&models.GroceryListIngredient{}).Error
			if err != nil {
				return err
			}
		}

		for _, item := range rec.Updated {
			err := tx.Model(&models.GroceryListIngredient{}).
				Where("grocery_list_id = ? AND ingredient_id = ?", list.ID, item.IngredientID).
				Update("quantity", item.Quantity).Error
			if err != nil {
				return err
			}
		}

		if len(added) > 0 {
			for i := range added {
				added[i].GroceryListID = list.ID
			}
			if err := tx.Omit("Ingredient").Create(&added).Error; err != nil {
				return err
			}
		}

		// Liste güncellenme zamanı
		if err := tx.Model(list).Update("updated_at", gorm.Expr("NOW()")).Error; err != nil {
			return err
		}

		list.Ingredients = slices.Concat(rec.Updated, added)
		return nil
	})
}

func (r *GormListRepository) Delete(list *models.GroceryList) error {
	return r.db.Select(clause.Associations).Delete(list).Error
}
