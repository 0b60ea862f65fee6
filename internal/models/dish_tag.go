package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type DishTag string

const (
	TagBreakfast   DishTag = "BREAKFAST"
	TagBrunch      DishTag = "BRUNCH"
	TagLunch       DishTag = "LUNCH"
	TagDinner      DishTag = "DINNER"
	TagDessert     DishTag = "DESSERT"
	TagSnack       DishTag = "SNACK"
	TagAppetizer   DishTag = "APPETIZER"
	TagSideDish    DishTag = "SIDE_DISH"
	TagMainCourse  DishTag = "MAIN_COURSE"
	TagBeverage    DishTag = "BEVERAGE"
	TagVegetarian  DishTag = "VEGETARIAN"
	TagVegan       DishTag = "VEGAN"
	TagGlutenFree  DishTag = "GLUTEN_FREE"
	TagHealthy     DishTag = "HEALTHY"
	TagQuickMeal   DishTag = "QUICK_MEAL"
	TagComfortFood DishTag = "COMFORT_FOOD"
	TagGrilled     DishTag = "GRILLED"
	TagBaked       DishTag = "BAKED"
	TagFried       DishTag = "FRIED"
	TagRaw         DishTag = "RAW"
)

var dishTags = []DishTag{
	TagBreakfast, TagBrunch, TagLunch, TagDinner, TagDessert,
	TagSnack, TagAppetizer, TagSideDish, TagMainCourse, TagBeverage,
	TagVegetarian, TagVegan, TagGlutenFree, TagHealthy, TagQuickMeal,
	TagComfortFood, TagGrilled, TagBaked, TagFried, TagRaw,
}

func (t DishTag) Valid() bool {
	for _, v := range dishTags {
		if v == t {
			return true
		}
	}
	return false
}

func ParseDishTag(s string) (DishTag, bool) {
	t := DishTag(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// DishTags tek kolonda virgülle ayrılmış olarak saklanır ("VEGAN,BAKED")
type DishTags []DishTag

func (t DishTags) Value() (driver.Value, error) {
	parts := make([]string, len(t))
	for i, tag := range t {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ","), nil
}

func (t *DishTags) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("dish tags: unsupported column type %T", src)
	}

	out := DishTags{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tag, ok := ParseDishTag(part)
		if !ok {
			return fmt.Errorf("dish tags: unknown tag %q", part)
		}
		out = append(out, tag)
	}
	*t = out
	return nil
}

type CuisineType string

const (
	CuisineItalian       CuisineType = "ITALIAN"
	CuisineFrench        CuisineType = "FRENCH"
	CuisineChinese       CuisineType = "CHINESE"
	CuisineJapanese      CuisineType = "JAPANESE"
	CuisineMexican       CuisineType = "MEXICAN"
	CuisineIndian        CuisineType = "INDIAN"
	CuisineAmerican      CuisineType = "AMERICAN"
	CuisineThai          CuisineType = "THAI"
	CuisineSpanish       CuisineType = "SPANISH"
	CuisineMediterranean CuisineType = "MEDITERRANEAN"
	CuisineMiddleEastern CuisineType = "MIDDLE_EASTERN"
	CuisineKorean        CuisineType = "KOREAN"
	CuisineAfrican       CuisineType = "AFRICAN"
	CuisineGreek         CuisineType = "GREEK"
	CuisineTurkish       CuisineType = "TURKISH"
	CuisineMoroccan      CuisineType = "MOROCCAN"
)

var cuisineTypes = []CuisineType{
	CuisineItalian, CuisineFrench, CuisineChinese, CuisineJapanese,
	CuisineMexican, CuisineIndian, CuisineAmerican, CuisineThai,
	CuisineSpanish, CuisineMediterranean, CuisineMiddleEastern, CuisineKorean,
	CuisineAfrican, CuisineGreek, CuisineTurkish, CuisineMoroccan,
}

func (c CuisineType) Valid() bool {
	for _, v := range cuisineTypes {
		if v == c {
			return true
		}
	}
	return false
}

func ParseCuisineType(s string) (CuisineType, bool) {
	c := CuisineType(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// ParseCuisineTypes keeps the known values of list and drops the rest.
func ParseCuisineTypes(list []string) []CuisineType {
	var out []CuisineType
	for _, s := range list {
		if c, ok := ParseCuisineType(s); ok {
			out = append(out, c)
		}
	}
	return out
}
