package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinPeople   = 1
	MaxPeople   = 100
	MaxDishStep = 50
)

type Dish struct {
	ID          uint             `gorm:"primaryKey"`
	UserID      uint             `gorm:"index;not null"`
	Name        string           `gorm:"size:100;not null"`
	Description string           `gorm:"size:500;not null"`
	ImageURL    string           `gorm:"size:255;not null"`
	People      int              `gorm:"not null"` // Tarifteki miktarların kaç kişilik olduğu
	Tags        DishTags         `gorm:"type:varchar(500);not null;default:''"`
	Type        CuisineType      `gorm:"size:20;not null;index"`
	Ingredients []DishIngredient `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	Steps       []RecipeStep     `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DishIngredient: Dish.People kişi için gereken miktar
type DishIngredient struct {
	DishID       uint            `gorm:"primaryKey"`
	IngredientID uint            `gorm:"primaryKey"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

type RecipeStep struct {
	ID          uint   `gorm:"primaryKey"`
	DishID      uint   `gorm:"index;not null"`
	OrderIndex  int    `gorm:"not null"`
	Description string `gorm:"size:500;not null"`
}
