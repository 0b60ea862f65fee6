package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GroceryList struct {
	ID          uint                    `gorm:"primaryKey"`
	UserID      uint                    `gorm:"index;not null"`
	User        User                    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StartOfWeek time.Time               `gorm:"not null"`
	EndOfWeek   time.Time               `gorm:"not null"`
	Ingredients []GroceryListIngredient `gorm:"foreignKey:GroceryListID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroceryListIngredient: (liste, malzeme) başına tek satır
type GroceryListIngredient struct {
	GroceryListID uint            `gorm:"primaryKey"`
	IngredientID  uint            `gorm:"primaryKey"`
	Ingredient    Ingredient      `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}
