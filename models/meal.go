package models

import (
    "time"

    "gorm.io/gorm"
)

// A Meal is an immutable snapshot: created once (from a plate or by
// manual entry), never updated. It carries copied macro values rather
// than a reference to the plate, so later plate edits do not rewrite
// meal history.
type Meal struct {
    gorm.Model
    UserID uint   `gorm:"index;not null" json:"user_id"`
    Name   string `gorm:"not null" json:"name"`
    Type   string `json:"type"` // "Breakfast"|"Lunch"|"Dinner"|"Snack"

    Calories     float64 `json:"calories"`
    ProteinGrams float64 `json:"protein_grams"`
    CarbsGrams   float64 `json:"carbs_grams"`
    FatGrams     float64 `json:"fat_grams"`

    // Date is the local midnight of the calendar day the meal belongs to.
    Date          time.Time  `gorm:"index;not null" json:"date"`
    ScheduledTime time.Time  `gorm:"index;not null" json:"scheduled_time"`
    ReminderTime  *time.Time `json:"reminder_time,omitempty"`
}
