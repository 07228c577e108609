package services

import (
	"errors"
	"testing"
	"time"

	"github.com/302xdwill/NutriFlow/models"
)

// savePlate composes and saves a plate with the given components.
func savePlate(t *testing.T, plates *PlateService, userID uint, name string, comps ...models.PlateComponent) uint {
	t.Helper()

	pc := NewPlateComposer(plates, userID)
	pc.SetName(name)
	for _, c := range comps {
		if err := pc.AddComponent(c.Ingredient, c.WeightGrams); err != nil {
			t.Fatalf("AddComponent() error = %v", err)
		}
	}
	id, err := pc.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return id
}

func TestPlateService_SaveAndLoad(t *testing.T) {
	t.Run("round trip recomputes totals from components", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())

		chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
		rice := seedIngredient(t, db, 1, "Rice", models.CategoryCarb, 1.2)

		id := savePlate(t, plates, 1, "Chicken and rice",
			models.PlateComponent{Ingredient: chicken, WeightGrams: 100},
			models.PlateComponent{Ingredient: rice, WeightGrams: 150},
		)

		loaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded == nil {
			t.Fatal("GetByID() returned nil, want plate")
		}
		if len(loaded.Components) != 2 {
			t.Fatalf("components = %d, want 2", len(loaded.Components))
		}

		want := ComputeTotals(loaded.Components)
		if loaded.TotalCalories != want.Calories ||
			loaded.TotalProtein != want.Protein ||
			loaded.TotalCarbs != want.Carbs ||
			loaded.TotalFat != want.Fat {
			t.Errorf("loaded totals %v/%v/%v/%v do not match recomputation %+v",
				loaded.TotalCalories, loaded.TotalProtein, loaded.TotalCarbs, loaded.TotalFat, want)
		}
		if !almostEqual(loaded.TotalCalories, 345.0) {
			t.Errorf("TotalCalories = %v, want 345.0", loaded.TotalCalories)
		}
	})

	t.Run("persisted totals are a cache, not the source of truth", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())

		chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
		id := savePlate(t, plates, 1, "Plain chicken",
			models.PlateComponent{Ingredient: chicken, WeightGrams: 100})

		// Corrupt the cached totals out of band.
		if err := db.Model(&models.Plate{}).Where("id = ?", id).
			Update("total_calories", 9999).Error; err != nil {
			t.Fatalf("tamper update: %v", err)
		}

		loaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !almostEqual(loaded.TotalCalories, 165.0) {
			t.Errorf("TotalCalories = %v, want recomputed 165.0", loaded.TotalCalories)
		}
	})

	t.Run("missing plate loads as nil", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())

		loaded, err := plates.GetByID(1, 12345)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded != nil {
			t.Errorf("GetByID() = %v, want nil", loaded)
		}
	})

	t.Run("update replaces the full component set", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())

		chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
		rice := seedIngredient(t, db, 1, "Rice", models.CategoryCarb, 1.2)

		id := savePlate(t, plates, 1, "Chicken and rice",
			models.PlateComponent{Ingredient: chicken, WeightGrams: 100},
			models.PlateComponent{Ingredient: rice, WeightGrams: 150},
		)

		existing, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}

		pc := NewPlateComposer(plates, 1)
		pc.LoadPlate(existing)
		pc.ClearComponents()
		if err := pc.AddComponent(chicken, 200); err != nil {
			t.Fatalf("AddComponent() error = %v", err)
		}
		if _, err := pc.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		reloaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if len(reloaded.Components) != 1 {
			t.Fatalf("components after update = %d, want 1", len(reloaded.Components))
		}
		if reloaded.Components[0].WeightGrams != 200 {
			t.Errorf("component weight = %v, want 200", reloaded.Components[0].WeightGrams)
		}
	})

	t.Run("dangling ingredient fails the whole load", func(t *testing.T) {
		db := newTestDB(t)
		bus := NewChangeBus()
		plates := NewPlateService(db, bus)
		catalog := NewCatalogService(db, bus)

		chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
		id := savePlate(t, plates, 1, "Plain chicken",
			models.PlateComponent{Ingredient: chicken, WeightGrams: 100})

		if err := catalog.Delete(1, chicken.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_, err := plates.GetByID(1, id)
		var dangling *DanglingReferenceError
		if !errors.As(err, &dangling) {
			t.Fatalf("GetByID() error = %v, want DanglingReferenceError", err)
		}
		if dangling.IngredientID != chicken.ID {
			t.Errorf("IngredientID = %d, want %d", dangling.IngredientID, chicken.ID)
		}
	})
}

func TestPlateService_OwnerScoping(t *testing.T) {
	db := newTestDB(t)
	plates := NewPlateService(db, NewChangeBus())

	chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
	id := savePlate(t, plates, 1, "Plain chicken",
		models.PlateComponent{Ingredient: chicken, WeightGrams: 100})

	t.Run("load is scoped to the owner", func(t *testing.T) {
		loaded, err := plates.GetByID(2, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded != nil {
			t.Errorf("GetByID() as another user = %v, want nil", loaded)
		}
	})

	t.Run("delete by a non-owner is a no-op", func(t *testing.T) {
		if err := plates.Delete(2, id); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		loaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded == nil {
			t.Error("owner's plate gone after non-owner delete")
		}
	})

	t.Run("update cannot take over another user's plate", func(t *testing.T) {
		hijack := &models.Plate{
			UserID: 2,
			Name:   "Mine now",
			Components: []models.PlateComponent{
				{IngredientID: chicken.ID, WeightGrams: 50},
			},
		}
		hijack.ID = id
		if _, err := plates.Save(hijack); !IsValidation(err) {
			t.Fatalf("Save() error = %v, want validation error", err)
		}
		loaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded == nil || loaded.Name != "Plain chicken" {
			t.Errorf("owner's plate = %v, want untouched", loaded)
		}
	})
}

func TestPlateService_Delete(t *testing.T) {
	t.Run("cascades to all components", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())

		chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
		rice := seedIngredient(t, db, 1, "Rice", models.CategoryCarb, 1.2)
		oil := seedIngredient(t, db, 1, "Olive oil", models.CategoryFat, 9.0)

		id := savePlate(t, plates, 1, "Full plate",
			models.PlateComponent{Ingredient: chicken, WeightGrams: 100},
			models.PlateComponent{Ingredient: rice, WeightGrams: 150},
			models.PlateComponent{Ingredient: oil, WeightGrams: 10},
		)

		if err := plates.Delete(1, id); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		loaded, err := plates.GetByID(1, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loaded != nil {
			t.Errorf("GetByID() after delete = %v, want nil", loaded)
		}

		var count int64
		if err := db.Model(&models.PlateComponent{}).
			Where("plate_id = ?", id).Count(&count).Error; err != nil {
			t.Fatalf("count components: %v", err)
		}
		if count != 0 {
			t.Errorf("remaining components = %d, want 0", count)
		}
	})

	t.Run("deleting a missing plate is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		plates := NewPlateService(db, NewChangeBus())
		if err := plates.Delete(1, 999); err != nil {
			t.Errorf("Delete() error = %v, want nil", err)
		}
	})
}

func TestPlateService_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	plates := NewPlateService(db, NewChangeBus())

	chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)
	savePlate(t, plates, 1, "Zucchini mix", models.PlateComponent{Ingredient: chicken, WeightGrams: 50})
	savePlate(t, plates, 1, "Avocado toast", models.PlateComponent{Ingredient: chicken, WeightGrams: 50})
	savePlate(t, plates, 2, "Someone else's", models.PlateComponent{Ingredient: chicken, WeightGrams: 50})

	list, err := plates.ListByOwner(1)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("plates = %d, want 2", len(list))
	}
	if list[0].Name != "Avocado toast" || list[1].Name != "Zucchini mix" {
		t.Errorf("order = [%s, %s], want name ascending", list[0].Name, list[1].Name)
	}
}

func TestPlateService_WatchByOwner(t *testing.T) {
	db := newTestDB(t)
	bus := NewChangeBus()
	plates := NewPlateService(db, bus)

	chicken := seedIngredient(t, db, 1, "Chicken", models.CategoryProtein, 1.65)

	ch, cancel := plates.WatchByOwner(1)
	defer cancel()

	select {
	case snap := <-ch:
		if len(snap) != 0 {
			t.Fatalf("initial snapshot = %d plates, want 0", len(snap))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	savePlate(t, plates, 1, "New plate", models.PlateComponent{Ingredient: chicken, WeightGrams: 50})

	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Fatalf("snapshot after save = %d plates, want 1", len(snap))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after save")
	}

	cancel()
	savePlate(t, plates, 1, "Another", models.PlateComponent{Ingredient: chicken, WeightGrams: 50})

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("received snapshot after cancel")
		}
	case <-time.After(200 * time.Millisecond):
		// closed or silent is fine either way
	}
}
