package models

import "gorm.io/gorm"

// MacroCategory classifies an ingredient's nutritional contribution.
type MacroCategory string

const (
    CategoryProtein MacroCategory = "PROTEIN"
    CategoryCarb    MacroCategory = "CARB"
    CategoryFat     MacroCategory = "FAT"
    CategoryMineral MacroCategory = "MINERAL"
)

func (c MacroCategory) Valid() bool {
    switch c {
    case CategoryProtein, CategoryCarb, CategoryFat, CategoryMineral:
        return true
    }
    return false
}

// A user-owned catalog entry. CaloriesPerGram drives every plate total.
type Ingredient struct {
    gorm.Model
    UserID          uint          `gorm:"index;not null" json:"user_id"`
    Name            string        `gorm:"not null" json:"name"`
    Category        MacroCategory `gorm:"type:varchar(16);not null" json:"category"`
    CaloriesPerGram float64       `gorm:"not null" json:"calories_per_gram"`
}
