package services

import (
	"math"
	"strings"

	"github.com/302xdwill/NutriFlow/models"
)

// Totals are the four aggregate values derived from a component list.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// round2 rounds half-up to 2 decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ComputeTotals derives the plate totals from a component list. Pure:
// same components in, same totals out, regardless of order.
//
// Calories are weight times calories-per-gram over every component.
// Macro grams are calorie-derived: a component's calories divided by
// the Atwater factor of its category (4 kcal/g protein, 4 kcal/g
// carbs, 9 kcal/g fat). MINERAL components count toward calories only.
func ComputeTotals(components []models.PlateComponent) Totals {
	var t Totals
	for _, c := range components {
		if c.Ingredient == nil {
			continue
		}
		kcal := c.WeightGrams * c.Ingredient.CaloriesPerGram
		t.Calories += kcal

		switch c.Ingredient.Category {
		case models.CategoryProtein:
			t.Protein += kcal / 4
		case models.CategoryCarb:
			t.Carbs += kcal / 4
		case models.CategoryFat:
			t.Fat += kcal / 9
		}
	}
	t.Calories = round2(t.Calories)
	t.Protein = round2(t.Protein)
	t.Carbs = round2(t.Carbs)
	t.Fat = round2(t.Fat)
	return t
}

// ComposerState tracks where a draft is in its lifecycle.
type ComposerState string

const (
	StateEmpty    ComposerState = "empty"
	StateDrafting ComposerState = "drafting"
	StateValid    ComposerState = "valid"
	StateSaving   ComposerState = "saving"
	StateSaved    ComposerState = "saved"
	StateFailed   ComposerState = "failed"
)

// PlateComposer builds one plate draft at a time: name, description
// and weighted components, with totals recomputed after every edit.
// Not safe for concurrent use; one composer belongs to one caller.
type PlateComposer struct {
	plates *PlateService

	userID      uint
	plateID     uint
	name        string
	description string
	components  []models.PlateComponent

	state   ComposerState
	lastErr error
}

func NewPlateComposer(plates *PlateService, userID uint) *PlateComposer {
	return &PlateComposer{plates: plates, userID: userID, state: StateEmpty}
}

// LoadPlate seeds the draft from an existing plate so the composer
// re-saves it as a full replacement.
func (pc *PlateComposer) LoadPlate(p *models.Plate) {
	pc.plateID = p.ID
	pc.name = p.Name
	pc.description = p.Description
	pc.components = append([]models.PlateComponent(nil), p.Components...)
	pc.touch()
}

func (pc *PlateComposer) State() ComposerState { return pc.state }

func (pc *PlateComposer) Err() error { return pc.lastErr }

func (pc *PlateComposer) Components() []models.PlateComponent {
	return pc.components
}

func (pc *PlateComposer) SetName(name string) {
	pc.name = name
	pc.touch()
}

func (pc *PlateComposer) SetDescription(desc string) {
	pc.description = desc
	pc.touch()
}

// AddComponent appends a line item. Duplicate ingredients stay
// distinct line items; the draft is a list, not a set.
func (pc *PlateComposer) AddComponent(ing *models.Ingredient, weightGrams float64) error {
	if ing == nil {
		return validationf("select an ingredient before adding it")
	}
	if weightGrams <= 0 {
		return validationf("weight must be greater than 0 grams")
	}
	pc.components = append(pc.components, models.PlateComponent{
		IngredientID: ing.ID,
		Ingredient:   ing,
		WeightGrams:  weightGrams,
	})
	pc.touch()
	return nil
}

// UpdateComponentWeight replaces the weight at index. An out-of-range
// index is a no-op: the UI may hold a stale index after a removal.
func (pc *PlateComposer) UpdateComponentWeight(index int, weightGrams float64) {
	if index < 0 || index >= len(pc.components) {
		return
	}
	pc.components[index].WeightGrams = weightGrams
	pc.touch()
}

// RemoveComponent drops the first line item equal to component.
func (pc *PlateComposer) RemoveComponent(component models.PlateComponent) {
	for i, c := range pc.components {
		if c.Equal(component) {
			pc.components = append(pc.components[:i], pc.components[i+1:]...)
			pc.touch()
			return
		}
	}
}

// ClearComponents empties the draft's component list, for callers
// that replace the whole set rather than editing line items.
func (pc *PlateComposer) ClearComponents() {
	pc.components = nil
	pc.touch()
}

// Totals recomputes from the current component list.
func (pc *PlateComposer) Totals() Totals {
	return ComputeTotals(pc.components)
}

// validComponents are the line items that survive a save.
func (pc *PlateComposer) validComponents() []models.PlateComponent {
	var out []models.PlateComponent
	for _, c := range pc.components {
		if c.WeightGrams > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (pc *PlateComposer) valid() bool {
	return strings.TrimSpace(pc.name) != "" && len(pc.validComponents()) > 0
}

func (pc *PlateComposer) touch() {
	switch pc.state {
	case StateSaving:
		return
	}
	if pc.valid() {
		pc.state = StateValid
	} else {
		pc.state = StateDrafting
	}
	pc.lastErr = nil
}

// Save finalizes the draft: totals are computed once here and stored
// as the plate's cached summary. Only components with positive weight
// are persisted. On success the composer holds the saved plate id.
func (pc *PlateComposer) Save() (uint, error) {
	if !pc.valid() {
		err := validationf("name the plate and add at least one ingredient with weight above 0")
		pc.state = StateFailed
		pc.lastErr = err
		return 0, err
	}

	components := pc.validComponents()
	totals := ComputeTotals(components)

	plate := &models.Plate{
		UserID:        pc.userID,
		Name:          strings.TrimSpace(pc.name),
		Description:   strings.TrimSpace(pc.description),
		Components:    components,
		TotalCalories: totals.Calories,
		TotalProtein:  totals.Protein,
		TotalCarbs:    totals.Carbs,
		TotalFat:      totals.Fat,
	}
	plate.ID = pc.plateID

	pc.state = StateSaving
	id, err := pc.plates.Save(plate)
	if err != nil {
		pc.state = StateFailed
		pc.lastErr = err
		return 0, err
	}
	pc.plateID = id
	pc.state = StateSaved
	pc.lastErr = nil
	return id, nil
}

// Reset clears the draft back to an empty composer for the same user.
func (pc *PlateComposer) Reset() {
	pc.plateID = 0
	pc.name = ""
	pc.description = ""
	pc.components = nil
	pc.state = StateEmpty
	pc.lastErr = nil
}
