package models

import (
    "gorm.io/gorm"
)

// Macro-goal type labels. One Goal row per (user, type).
const (
    GoalCalories = "calories"
    GoalProtein  = "protein"
    GoalCarbs    = "carbs"
    GoalFat      = "fat"
)

// Goal is the canonical per-macro target. The matching scalar fields
// on User are a projection rewritten whenever a goal changes.
type Goal struct {
    gorm.Model
    UserID uint    `gorm:"uniqueIndex:idx_goals_user_type;not null" json:"user_id"`
    Type   string  `gorm:"uniqueIndex:idx_goals_user_type;not null" json:"type"`
    Value  float64 `json:"value"`
}
