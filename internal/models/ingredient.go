package models

import (
	"cmp"
	"strings"
	"time"
)

type IngredientCategory string

const (
	CategoryVegetables IngredientCategory = "VEGETABLES"
	CategoryFruits     IngredientCategory = "FRUITS"
	CategoryDairy      IngredientCategory = "DAIRY"
	CategoryMeat       IngredientCategory = "MEAT"
	CategoryFish       IngredientCategory = "FISH"
	CategoryGrains     IngredientCategory = "GRAINS"
	CategorySpices     IngredientCategory = "SPICES"
	CategoryBaking     IngredientCategory = "BAKING"
	CategoryDrinks     IngredientCategory = "DRINKS"
	CategoryHousehold  IngredientCategory = "HOUSEHOLD"
	CategoryOther      IngredientCategory = "OTHER"
)

// Sıralama bu dizideki sıraya göre yapılır (alfabetik değil)
var ingredientCategories = []IngredientCategory{
	CategoryVegetables,
	CategoryFruits,
	CategoryDairy,
	CategoryMeat,
	CategoryFish,
	CategoryGrains,
	CategorySpices,
	CategoryBaking,
	CategoryDrinks,
	CategoryHousehold,
	CategoryOther,
}

// Rank returns the position of the category in the shopping order. Unknown
// categories sort last.
func (c IngredientCategory) Rank() int {
	for i, v := range ingredientCategories {
		if v == c {
			return i
		}
	}
	return len(ingredientCategories)
}

func (c IngredientCategory) Valid() bool {
	return c.Rank() < len(ingredientCategories)
}

func ParseIngredientCategory(s string) (IngredientCategory, bool) {
	c := IngredientCategory(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

func IngredientCategories() []IngredientCategory {
	out := make([]IngredientCategory, len(ingredientCategories))
	copy(out, ingredientCategories)
	return out
}

type MeasurementUnit string

const (
	UnitGram       MeasurementUnit = "G"
	UnitKilogram   MeasurementUnit = "KG"
	UnitMilliliter MeasurementUnit = "ML"
	UnitLiter      MeasurementUnit = "L"
	UnitPiece      MeasurementUnit = "PCS"
	UnitTablespoon MeasurementUnit = "TBSP"
	UnitTeaspoon   MeasurementUnit = "TSP"
	UnitCup        MeasurementUnit = "CUP"
	UnitPinch      MeasurementUnit = "PINCH"
)

var measurementUnits = []MeasurementUnit{
	UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece,
	UnitTablespoon, UnitTeaspoon, UnitCup, UnitPinch,
}

func (u MeasurementUnit) Valid() bool {
	for _, v := range measurementUnits {
		if v == u {
			return true
		}
	}
	return false
}

func ParseMeasurementUnit(s string) (MeasurementUnit, bool) {
	u := MeasurementUnit(strings.ToUpper(strings.TrimSpace(s)))
	return u, u.Valid()
}

type Ingredient struct {
	ID          uint               `gorm:"primaryKey"`
	UserID      uint               `gorm:"index;not null"`
	Name        string             `gorm:"size:100;not null"`
	Description string             `gorm:"size:250"`
	Category    IngredientCategory `gorm:"size:20;not null;index"`
	Unit        MeasurementUnit    `gorm:"size:10;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompareIngredients orders by category rank, then by name.
func CompareIngredients(a, b *Ingredient) int {
	if c := cmp.Compare(a.Category.Rank(), b.Category.Rank()); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
