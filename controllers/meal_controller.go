package controllers

import (
	"net/http"
	"time"

	"github.com/302xdwill/NutriFlow/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals  *services.MealService
	Plates *services.PlateService
	Goals  *services.GoalService
}

func NewMealController(meals *services.MealService, plates *services.PlateService, goals *services.GoalService) *MealController {
	return &MealController{Meals: meals, Plates: plates, Goals: goals}
}

type scheduleInput struct {
	PlateID               uint      `json:"plate_id" binding:"required"`
	Type                  string    `json:"type" binding:"required"`
	ScheduledTime         time.Time `json:"scheduled_time" binding:"required"`
	ReminderOffsetMinutes int       `json:"reminder_offset_minutes"`
	Date                  string    `json:"date"` // YYYY-MM-DD, defaults to the scheduled time's day
}

func (mc *MealController) Schedule(c *gin.Context) {
	uid := c.GetUint("userID")

	var input scheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := input.ScheduledTime
	if input.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	plate, err := mc.Plates.GetByID(uid, input.PlateID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Meals.ScheduleFromPlate(uid, plate, input.Type, input.ScheduledTime, input.ReminderOffsetMinutes, day)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

type manualMealInput struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (mc *MealController) RecordManual(c *gin.Context) {
	uid := c.GetUint("userID")

	var input manualMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Meals.RecordManualMeal(uid, input.Name, input.Calories, input.Protein, input.Carbs, input.Fat)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// parseDay reads ?date=YYYY-MM-DD, defaulting to today.
func parseDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

// GET /meals/day?date=2026-08-30
func (mc *MealController) ListDay(c *gin.Context) {
	uid := c.GetUint("userID")
	day, ok := parseDay(c)
	if !ok {
		return
	}

	meals, err := mc.Meals.GetMealsForDay(uid, day)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) ListAll(c *gin.Context) {
	uid := c.GetUint("userID")

	meals, err := mc.Meals.ListAll(uid)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/summary?date=2026-08-30 returns the day's totals against goals.
func (mc *MealController) DailySummary(c *gin.Context) {
	uid := c.GetUint("userID")
	day, ok := parseDay(c)
	if !ok {
		return
	}

	summary, err := mc.Goals.DailySummaryFor(uid, day)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
