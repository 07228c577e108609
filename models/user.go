package models

import (
    "gorm.io/gorm"
)

// The four goal fields are a read projection of the Goal rows;
// GoalService rewrites them in the same transaction that writes
// the goals, so a profile read never needs a join.
type User struct {
    gorm.Model
    Email    string  `gorm:"uniqueIndex;not null" json:"email"`
    Password string  `gorm:"not null" json:"-"`
    Name     string  `json:"name"`
    LastName string  `json:"last_name"`
    Age      int     `json:"age"`
    Weight   float64 `json:"weight"`
    Height   float64 `json:"height"`
    PhotoURL string  `json:"photo_url,omitempty"`

    CalorieGoal float64 `json:"calorie_goal"`
    ProteinGoal float64 `json:"protein_goal"`
    CarbsGoal   float64 `json:"carbs_goal"`
    FatGoal     float64 `json:"fat_goal"`
}
