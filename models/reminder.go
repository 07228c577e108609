package models

import "time"

// One scheduled meal reminder. Best effort: a row marks intent, the
// Delivered flag flips when the in-process timer actually fires.
type Reminder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	MealName  string    `gorm:"size:120" json:"meal_name"`
	FireAt    time.Time `gorm:"index" json:"fire_at"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}
