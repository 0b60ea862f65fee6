package export

import (
	"time"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/dish"
	"menuplanner-backend/internal/grocery"
	"menuplanner-backend/internal/ingredient"
	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

// Snapshot is everything a user owns, loaded in one read.
type Snapshot struct {
	User         models.User
	Ingredients  []models.Ingredient
	Dishes       []models.Dish
	GroceryLists []models.GroceryList
}

type Source interface {
	Load(userID uint) (*Snapshot, error)
}

type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

// Load reads inside a single transaction so the parts agree with each other.
func (s *GormSource) Load(userID uint) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&snap.User, "id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Order("id asc").Find(&snap.Ingredients).Error; err != nil {
			return err
		}
		err := tx.
			Preload("Ingredients.Ingredient").
			Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
			Where("user_id = ?", userID).
			Order("id asc").
			Find(&snap.Dishes).Error
		if err != nil {
			return err
		}
		return tx.
			Preload("Ingredients.Ingredient").
			Where("user_id = ?", userID).
			Order("start_of_week desc, id desc").
			Find(&snap.GroceryLists).Error
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

type GroceryListDocument struct {
	grocery.SummaryResponse
	Ingredients []grocery.IngredientResponse `json:"ingredients"`
}

type Document struct {
	ExportedAt   time.Time             `json:"exportedAt"`
	User         auth.UserResponse     `json:"user"`
	Ingredients  []ingredient.Response `json:"ingredients"`
	Dishes       []dish.Response       `json:"dishes"`
	GroceryLists []GroceryListDocument `json:"groceryLists"`
}

// NewDocument: liste malzemeleri sayfalamadaki sırayla yazılır
func NewDocument(snap *Snapshot, at time.Time) Document {
	doc := Document{
		ExportedAt:   at,
		User:         auth.NewUserResponse(&snap.User),
		Ingredients:  ingredient.NewResponses(snap.Ingredients),
		Dishes:       make([]dish.Response, 0, len(snap.Dishes)),
		GroceryLists: make([]GroceryListDocument, 0, len(snap.GroceryLists)),
	}
	for i := range snap.Dishes {
		doc.Dishes = append(doc.Dishes, dish.NewResponse(&snap.Dishes[i]))
	}
	for i := range snap.GroceryLists {
		l := &snap.GroceryLists[i]
		doc.GroceryLists = append(doc.GroceryLists, GroceryListDocument{
			SummaryResponse: grocery.NewSummaryResponse(l),
			Ingredients:     grocery.NewIngredientResponses(grocery.SortIngredients(l.Ingredients)),
		})
	}
	return doc
}
