package models

import "gorm.io/gorm"

// A Plate is a reusable recipe: weighted ingredients plus cached totals.
// The Total* columns are a display cache only; PlateService recomputes
// them from the components on every load.
type Plate struct {
    gorm.Model
    UserID      uint   `gorm:"index;not null" json:"user_id"`
    Name        string `gorm:"not null" json:"name"`
    Description string `json:"description,omitempty"`

    Components []PlateComponent `gorm:"-" json:"components"`

    TotalCalories float64 `json:"total_calories"`
    TotalProtein  float64 `json:"total_protein"`
    TotalCarbs    float64 `json:"total_carbs"`
    TotalFat      float64 `json:"total_fat"`
}

// One (ingredient, weight) line item inside a plate. Duplicate
// ingredient entries are allowed and stay distinct line items.
type PlateComponent struct {
    gorm.Model
    PlateID      uint    `gorm:"index;not null" json:"plate_id"`
    IngredientID uint    `gorm:"not null" json:"ingredient_id"`
    WeightGrams  float64 `gorm:"not null" json:"weight_grams"`

    // Resolved at load time from the ingredient catalog; never persisted here.
    Ingredient *Ingredient `gorm:"-" json:"ingredient,omitempty"`
}

// Equal compares the persisted identity of two line items: same
// ingredient, same weight, same row id. The resolved Ingredient
// pointer is deliberately ignored.
func (c PlateComponent) Equal(other PlateComponent) bool {
    return c.ID == other.ID &&
        c.IngredientID == other.IngredientID &&
        c.WeightGrams == other.WeightGrams
}
