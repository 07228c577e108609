// services/goal_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/302xdwill/NutriFlow/models"
	"gorm.io/gorm"
)

// GoalSet is a user's four macro targets in one value.
type GoalSet struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DefaultGoals seed a fresh account.
var DefaultGoals = GoalSet{Calories: 2000, Protein: 100, Carbs: 250, Fat: 70}

// Progress holds per-macro consumed/goal ratios clamped to [0, 1].
type Progress struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailySummary pairs one day's aggregated meals with the user's goals.
// Derived on demand, never persisted.
type DailySummary struct {
	Date     time.Time `json:"date"`
	Totals   Totals    `json:"totals"`
	Goals    GoalSet   `json:"goals"`
	Progress Progress  `json:"progress"`
}

// GoalService stores macro goals and compares daily totals against
// them. Goal rows are canonical; the scalar goal columns on users are
// a projection rewritten in the same transaction as the goal write.
type GoalService struct {
	db    *gorm.DB
	bus   *ChangeBus
	meals *MealService
}

func NewGoalService(db *gorm.DB, bus *ChangeBus, meals *MealService) *GoalService {
	return &GoalService{db: db, bus: bus, meals: meals}
}

func goalsTopic(userID uint) string {
	return fmt.Sprintf("goals/%d", userID)
}

// UpsertGoals writes all four goal rows and the user projection in
// one transaction, so readers of either representation agree.
func (s *GoalService) UpsertGoals(userID uint, goals GoalSet) error {
	for _, g := range []struct {
		typ   string
		value float64
	}{
		{models.GoalCalories, goals.Calories},
		{models.GoalProtein, goals.Protein},
		{models.GoalCarbs, goals.Carbs},
		{models.GoalFat, goals.Fat},
	} {
		if g.value < 0 {
			return validationf("%s goal must not be negative", g.typ)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertGoalRow(tx, userID, models.GoalCalories, goals.Calories); err != nil {
			return err
		}
		if err := upsertGoalRow(tx, userID, models.GoalProtein, goals.Protein); err != nil {
			return err
		}
		if err := upsertGoalRow(tx, userID, models.GoalCarbs, goals.Carbs); err != nil {
			return err
		}
		if err := upsertGoalRow(tx, userID, models.GoalFat, goals.Fat); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"calorie_goal": goals.Calories,
				"protein_goal": goals.Protein,
				"carbs_goal":   goals.Carbs,
				"fat_goal":     goals.Fat,
			}).Error
	})
	if err != nil {
		return persistence("upsert goals", err)
	}
	s.bus.Publish(goalsTopic(userID))
	return nil
}

func upsertGoalRow(tx *gorm.DB, userID uint, typ string, value float64) error {
	var goal models.Goal
	err := tx.Where("user_id = ? AND type = ?", userID, typ).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.Goal{UserID: userID, Type: typ, Value: value}).Error
	}
	if err != nil {
		return err
	}
	goal.Value = value
	return tx.Save(&goal).Error
}

// Goals reads the canonical goal rows, falling back to the defaults
// for any macro without a row yet.
func (s *GoalService) Goals(userID uint) (GoalSet, error) {
	var rows []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return GoalSet{}, persistence("load goals", err)
	}

	gs := DefaultGoals
	for _, row := range rows {
		switch row.Type {
		case models.GoalCalories:
			gs.Calories = row.Value
		case models.GoalProtein:
			gs.Protein = row.Value
		case models.GoalCarbs:
			gs.Carbs = row.Value
		case models.GoalFat:
			gs.Fat = row.Value
		}
	}
	return gs, nil
}

// WatchGoals emits the user's goal rows on every goal write.
func (s *GoalService) WatchGoals(userID uint) (<-chan []models.Goal, func()) {
	return watch(s.bus, goalsTopic(userID), func() ([]models.Goal, error) {
		var rows []models.Goal
		err := s.db.Where("user_id = ?", userID).Find(&rows).Error
		if err != nil {
			return nil, persistence("load goals", err)
		}
		return rows, nil
	})
}

// Compare turns day totals into per-macro progress ratios. A goal of
// zero yields zero progress rather than a division by zero.
func (s *GoalService) Compare(current Totals, goals GoalSet) Progress {
	return Progress{
		Calories: pct(current.Calories, goals.Calories),
		Protein:  pct(current.Protein, goals.Protein),
		Carbs:    pct(current.Carbs, goals.Carbs),
		Fat:      pct(current.Fat, goals.Fat),
	}
}

func pct(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target
	if p > 1 {
		return 1
	}
	return p
}

// DailySummaryFor aggregates the day's meals and pairs them with the
// user's current goals.
func (s *GoalService) DailySummaryFor(userID uint, date time.Time) (*DailySummary, error) {
	meals, err := s.meals.GetMealsForDay(userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals(userID)
	if err != nil {
		return nil, err
	}
	totals := s.meals.Aggregate(meals)
	return &DailySummary{
		Date:     startOfDay(date),
		Totals:   totals,
		Goals:    goals,
		Progress: s.Compare(totals, goals),
	}, nil
}
