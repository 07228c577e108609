// services/meal_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/302xdwill/NutriFlow/models"
	"gorm.io/gorm"
)

// MealService schedules plates as meals and aggregates a day's meals
// into summary totals. Meals are append-only snapshots: there is no
// update path.
type MealService struct {
	db        *gorm.DB
	bus       *ChangeBus
	reminders *ReminderService

	now func() time.Time
}

func NewMealService(db *gorm.DB, bus *ChangeBus, reminders *ReminderService) *MealService {
	return &MealService{db: db, bus: bus, reminders: reminders, now: time.Now}
}

// mealsTopic keys on the local calendar day so a publish and a watch
// for the same instant always meet, whatever zone the instant carries.
func mealsTopic(userID uint, day time.Time) string {
	return fmt.Sprintf("meals/%d/%s", userID, day.In(time.Local).Format("2006-01-02"))
}

// startOfDay is the local midnight beginning date's calendar day.
func startOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// ScheduleFromPlate builds a meal snapshot from the plate's current
// totals and saves it. The meal never references the plate again, so
// later plate edits leave history alone. With a positive reminder
// offset the reminder fires reminderOffsetMinutes before the meal;
// instants already in the past are skipped by the reminder service.
func (s *MealService) ScheduleFromPlate(userID uint, plate *models.Plate, mealType string, scheduledTime time.Time, reminderOffsetMinutes int, day time.Time) (*models.Meal, error) {
	if plate == nil {
		return nil, validationf("select a plate to schedule")
	}

	meal := &models.Meal{
		UserID:        userID,
		Name:          plate.Name,
		Type:          mealType,
		Calories:      plate.TotalCalories,
		ProteinGrams:  plate.TotalProtein,
		CarbsGrams:    plate.TotalCarbs,
		FatGrams:      plate.TotalFat,
		Date:          startOfDay(day),
		ScheduledTime: scheduledTime,
	}
	if reminderOffsetMinutes > 0 {
		r := scheduledTime.Add(-time.Duration(reminderOffsetMinutes) * time.Minute)
		meal.ReminderTime = &r
	}

	if err := s.Save(meal); err != nil {
		return nil, err
	}
	if meal.ReminderTime != nil && s.reminders != nil {
		s.reminders.Schedule(userID, meal.Name, *meal.ReminderTime)
	}
	return meal, nil
}

// RecordManualMeal stores a direct entry that bypasses the plate
// catalog, stamped at the current instant.
func (s *MealService) RecordManualMeal(userID uint, name string, calories, protein, carbs, fat float64) (*models.Meal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationf("meal name must not be empty")
	}
	if calories < 0 || protein < 0 || carbs < 0 || fat < 0 {
		return nil, validationf("macro values must not be negative")
	}

	now := s.now()
	meal := &models.Meal{
		UserID:        userID,
		Name:          strings.TrimSpace(name),
		Type:          "Manual",
		Calories:      calories,
		ProteinGrams:  protein,
		CarbsGrams:    carbs,
		FatGrams:      fat,
		Date:          startOfDay(now),
		ScheduledTime: now,
	}
	if err := s.Save(meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Save inserts the meal. Insert only: snapshots are never updated.
// The scheduled instant is stored in UTC; sqlite compares timestamps
// as text, so mixed offsets in one column would break range queries.
func (s *MealService) Save(meal *models.Meal) error {
	meal.ScheduledTime = meal.ScheduledTime.UTC()
	if err := s.db.Create(meal).Error; err != nil {
		return persistence("save meal", err)
	}
	s.bus.Publish(mealsTopic(meal.UserID, meal.ScheduledTime))
	return nil
}

// GetMealsForDay returns the user's meals inside the half-open window
// [local midnight of date, +24h), ordered by scheduled time. A meal
// at exactly the next midnight belongs to the next day. The order is
// what the schedule screen shows, not insertion order.
func (s *MealService) GetMealsForDay(userID uint, date time.Time) ([]models.Meal, error) {
	start := startOfDay(date)
	end := start.Add(24 * time.Hour)

	// Endpoints in UTC to match the stored column, see Save.
	var meals []models.Meal
	err := s.db.
		Where("user_id = ? AND scheduled_time >= ? AND scheduled_time < ?", userID, start.UTC(), end.UTC()).
		Order("scheduled_time ASC").
		Find(&meals).Error
	if err != nil {
		return nil, persistence("list daily meals", err)
	}
	return meals, nil
}

// WatchDay emits the day's meal list on every meal write that lands
// inside that day.
func (s *MealService) WatchDay(userID uint, date time.Time) (<-chan []models.Meal, func()) {
	return watch(s.bus, mealsTopic(userID, date), func() ([]models.Meal, error) {
		return s.GetMealsForDay(userID, date)
	})
}

// ListAll returns every meal for the user, newest first.
func (s *MealService) ListAll(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ?", userID).
		Order("scheduled_time DESC").
		Find(&meals).Error
	if err != nil {
		return nil, persistence("list meals", err)
	}
	return meals, nil
}

// Aggregate sums the supplied meals field-wise. An empty list yields
// all zeros.
func (s *MealService) Aggregate(meals []models.Meal) Totals {
	var t Totals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.ProteinGrams
		t.Carbs += m.CarbsGrams
		t.Fat += m.FatGrams
	}
	return t
}
