package services

import (
	"errors"
	"fmt"

	"github.com/302xdwill/NutriFlow/models"
	"gorm.io/gorm"
)

// PlateService persists plates and their components as one unit and
// reconstructs them with resolved ingredients. Persisted totals are a
// display cache: every load recomputes them from the components.
type PlateService struct {
	db  *gorm.DB
	bus *ChangeBus
}

func NewPlateService(db *gorm.DB, bus *ChangeBus) *PlateService {
	return &PlateService{db: db, bus: bus}
}

func platesTopic(userID uint) string {
	return fmt.Sprintf("plates/%d", userID)
}

// Save upserts the plate row and replaces its full component set in
// one transaction. A reader never observes a plate with a partial
// component set. Returns the plate id.
func (s *PlateService) Save(plate *models.Plate) (uint, error) {
	// Updating by id only ever touches the caller's own plate.
	if plate.ID != 0 {
		var owned int64
		err := s.db.Model(&models.Plate{}).
			Where("id = ? AND user_id = ?", plate.ID, plate.UserID).
			Count(&owned).Error
		if err != nil {
			return 0, persistence("load plate", err)
		}
		if owned == 0 {
			return 0, validationf("plate not found")
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := *plate
		row.Components = nil
		if row.ID == 0 {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		// Full replacement, not a diff: drop the old set, insert the new.
		if err := tx.Where("plate_id = ?", row.ID).Delete(&models.PlateComponent{}).Error; err != nil {
			return err
		}
		for _, c := range plate.Components {
			fresh := models.PlateComponent{
				PlateID:      row.ID,
				IngredientID: c.IngredientID,
				WeightGrams:  c.WeightGrams,
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		}

		plate.ID = row.ID
		return nil
	})
	if err != nil {
		return 0, persistence("save plate", err)
	}
	s.bus.Publish(platesTopic(plate.UserID))
	return plate.ID, nil
}

// GetByID loads one of ownerID's plates, resolves every component's
// ingredient and recomputes the totals. Returns (nil, nil) when no
// such plate belongs to the owner. A component pointing at a deleted
// ingredient fails the whole load with a DanglingReferenceError.
func (s *PlateService) GetByID(ownerID, id uint) (*models.Plate, error) {
	var plate models.Plate
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&plate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("load plate", err)
	}
	if err := s.resolveComponents(&plate); err != nil {
		return nil, err
	}
	applyTotals(&plate)
	return &plate, nil
}

// ListByOwner returns the user's plates ordered by name, each with
// resolved components and recomputed totals.
func (s *PlateService) ListByOwner(userID uint) ([]models.Plate, error) {
	var plates []models.Plate
	err := s.db.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&plates).Error
	if err != nil {
		return nil, persistence("list plates", err)
	}
	for i := range plates {
		if err := s.resolveComponents(&plates[i]); err != nil {
			return nil, err
		}
		applyTotals(&plates[i])
	}
	return plates, nil
}

// WatchByOwner emits the current plate list and again after every
// plate write for this user.
func (s *PlateService) WatchByOwner(userID uint) (<-chan []models.Plate, func()) {
	return watch(s.bus, platesTopic(userID), func() ([]models.Plate, error) {
		return s.ListByOwner(userID)
	})
}

// Delete removes one of ownerID's plates and cascades to its
// components inside one transaction. The cascade is explicit
// application logic, not a schema-level foreign key rule. A missing
// plate, including one owned by someone else, is a no-op.
func (s *PlateService) Delete(ownerID, id uint) error {
	var plate models.Plate
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&plate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return persistence("load plate", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plate_id = ?", id).Delete(&models.PlateComponent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plate{}, id).Error
	})
	if err != nil {
		return persistence("delete plate", err)
	}
	s.bus.Publish(platesTopic(plate.UserID))
	return nil
}

func (s *PlateService) resolveComponents(plate *models.Plate) error {
	var comps []models.PlateComponent
	if err := s.db.Where("plate_id = ?", plate.ID).Find(&comps).Error; err != nil {
		return persistence("load plate components", err)
	}
	for i := range comps {
		var ing models.Ingredient
		err := s.db.First(&ing, comps[i].IngredientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DanglingReferenceError{PlateID: plate.ID, IngredientID: comps[i].IngredientID}
		}
		if err != nil {
			return persistence("load component ingredient", err)
		}
		comps[i].Ingredient = &ing
	}
	plate.Components = comps
	return nil
}

func applyTotals(plate *models.Plate) {
	t := ComputeTotals(plate.Components)
	plate.TotalCalories = t.Calories
	plate.TotalProtein = t.Protein
	plate.TotalCarbs = t.Carbs
	plate.TotalFat = t.Fat
}
