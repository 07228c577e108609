package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/302xdwill/NutriFlow/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderService schedules best-effort one-shot meal reminders.
// A reminder whose fire instant is already in the past is skipped.
// Delivery goes out over the realtime hub and, when configured, as a
// push notification; either may be nil.
type ReminderService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService

	mu     sync.Mutex
	timers map[string]*time.Timer

	now func() time.Time
}

func NewReminderService(db *gorm.DB, hub *RealtimeHub, push *PushService) *ReminderService {
	return &ReminderService{
		db:     db,
		hub:    hub,
		push:   push,
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
}

// Schedule arms a one-shot reminder and returns its id, or "" when
// fireAt is not in the future.
func (s *ReminderService) Schedule(userID uint, mealName string, fireAt time.Time) string {
	delay := fireAt.Sub(s.now())
	if delay <= 0 {
		return ""
	}

	row := &models.Reminder{UserID: userID, MealName: mealName, FireAt: fireAt}
	if s.db != nil {
		if err := s.db.Create(row).Error; err != nil {
			log.Printf("reminder: record failed: %v", err)
		}
	}

	id := uuid.NewString()
	timer := time.AfterFunc(delay, func() {
		s.fire(id, row)
	})

	s.mu.Lock()
	s.timers[id] = timer
	s.mu.Unlock()
	return id
}

// Cancel disarms a pending reminder. Unknown ids are a no-op.
func (s *ReminderService) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports how many reminders are still armed.
func (s *ReminderService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop disarms everything, for shutdown.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *ReminderService) fire(id string, row *models.Reminder) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	message := fmt.Sprintf("Time to eat your %s!", row.MealName)
	if s.hub != nil {
		s.hub.Broadcast(row.UserID, map[string]any{
			"kind":      "meal.reminder",
			"meal_name": row.MealName,
			"message":   message,
		})
	}
	if s.push != nil {
		s.push.PushToUser(row.UserID, "Meal reminder", message, map[string]string{
			"meal_name": row.MealName,
		})
	}
	if s.db != nil && row.ID != 0 {
		if err := s.db.Model(row).Update("delivered", true).Error; err != nil {
			log.Printf("reminder: mark delivered failed: %v", err)
		}
	}
}
