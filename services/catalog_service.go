package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/302xdwill/NutriFlow/models"
	"gorm.io/gorm"
)

// CatalogService owns the per-user ingredient catalog.
type CatalogService struct {
	db  *gorm.DB
	bus *ChangeBus
}

func NewCatalogService(db *gorm.DB, bus *ChangeBus) *CatalogService {
	return &CatalogService{db: db, bus: bus}
}

func ingredientsTopic(userID uint) string {
	return fmt.Sprintf("ingredients/%d", userID)
}

func (s *CatalogService) Create(userID uint, name string, category models.MacroCategory, caloriesPerGram float64) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("ingredient name must not be empty")
	}
	if caloriesPerGram <= 0 {
		return nil, validationf("calories per gram must be greater than 0")
	}
	if !category.Valid() {
		return nil, validationf("unknown macro category %q", category)
	}

	ing := &models.Ingredient{
		UserID:          userID,
		Name:            name,
		Category:        category,
		CaloriesPerGram: caloriesPerGram,
	}
	if err := s.db.Create(ing).Error; err != nil {
		return nil, persistence("create ingredient", err)
	}
	s.bus.Publish(ingredientsTopic(userID))
	return ing, nil
}

// Get returns (nil, nil) when ownerID has no such ingredient.
func (s *CatalogService) Get(ownerID, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("load ingredient", err)
	}
	return &ing, nil
}

// List returns the user's ingredients ordered by name, optionally
// filtered to one category. An empty category means no filter.
func (s *CatalogService) List(userID uint, category models.MacroCategory) ([]models.Ingredient, error) {
	q := s.db.Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []models.Ingredient
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, persistence("list ingredients", err)
	}
	return out, nil
}

// Watch emits the current ingredient list and again after every
// catalog write for this user.
func (s *CatalogService) Watch(userID uint, category models.MacroCategory) (<-chan []models.Ingredient, func()) {
	return watch(s.bus, ingredientsTopic(userID), func() ([]models.Ingredient, error) {
		return s.List(userID, category)
	})
}

// Delete removes one of ownerID's ingredients. Plates that still
// reference it are not repaired here; loading such a plate surfaces a
// DanglingReferenceError from the plate store. A missing ingredient,
// including one owned by someone else, is a no-op.
func (s *CatalogService) Delete(ownerID, id uint) error {
	var ing models.Ingredient
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return persistence("load ingredient", err)
	}
	if err := s.db.Delete(&models.Ingredient{}, id).Error; err != nil {
		return persistence("delete ingredient", err)
	}
	s.bus.Publish(ingredientsTopic(ing.UserID))
	return nil
}
