package controllers

import (
	"net/http"
	"strconv"

	"github.com/302xdwill/NutriFlow/models"
	"github.com/302xdwill/NutriFlow/services"

	"github.com/gin-gonic/gin"
)

type PlateController struct {
	Plates  *services.PlateService
	Catalog *services.CatalogService
}

func NewPlateController(plates *services.PlateService, catalog *services.CatalogService) *PlateController {
	return &PlateController{Plates: plates, Catalog: catalog}
}

type componentInput struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	WeightGrams  float64 `json:"weight_grams" binding:"required"`
}

type plateInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Components  []componentInput `json:"components"`
}

// compose runs the request through a fresh composer draft so the same
// validation and totals rules apply to every save path.
func (pc *PlateController) compose(uid uint, plateID uint, input plateInput) (*services.PlateComposer, error) {
	composer := services.NewPlateComposer(pc.Plates, uid)
	if plateID != 0 {
		existing, err := pc.Plates.GetByID(uid, plateID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, &services.ValidationError{Reason: "plate not found"}
		}
		composer.LoadPlate(existing)
		composer.SetName(input.Name)
		composer.SetDescription(input.Description)
		composer.ClearComponents()
	} else {
		composer.SetName(input.Name)
		composer.SetDescription(input.Description)
	}

	for _, comp := range input.Components {
		ing, err := pc.Catalog.Get(uid, comp.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, &services.ValidationError{Reason: "unknown ingredient in component list"}
		}
		if err := composer.AddComponent(ing, comp.WeightGrams); err != nil {
			return nil, err
		}
	}
	return composer, nil
}

func (pc *PlateController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var input plateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	composer, err := pc.compose(uid, 0, input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	id, err := composer.Save()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	plate, err := pc.Plates.GetByID(uid, id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, plate)
}

// Update replaces the plate wholesale: name, description and the full
// component set.
func (pc *PlateController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plate id"})
		return
	}

	var input plateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	composer, err := pc.compose(uid, uint(id), input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if _, err := composer.Save(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	plate, err := pc.Plates.GetByID(uid, uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plate)
}

// Preview computes totals for a component list without saving, for
// the live numbers on the plate editor screen.
func (pc *PlateController) Preview(c *gin.Context) {
	uid := c.GetUint("userID")

	var input plateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var components []models.PlateComponent
	for _, comp := range input.Components {
		ing, err := pc.Catalog.Get(uid, comp.IngredientID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		if ing == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown ingredient in component list"})
			return
		}
		components = append(components, models.PlateComponent{
			IngredientID: ing.ID,
			Ingredient:   ing,
			WeightGrams:  comp.WeightGrams,
		})
	}

	c.JSON(http.StatusOK, services.ComputeTotals(components))
}

func (pc *PlateController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plate id"})
		return
	}

	plate, err := pc.Plates.GetByID(uid, uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if plate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plate not found"})
		return
	}
	c.JSON(http.StatusOK, plate)
}

func (pc *PlateController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	plates, err := pc.Plates.ListByOwner(uid)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plates)
}

func (pc *PlateController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plate id"})
		return
	}
	if err := pc.Plates.Delete(uid, uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plate deleted"})
}
