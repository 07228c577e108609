package controllers

import (
	"net/http"
	"strconv"

	"github.com/302xdwill/NutriFlow/models"
	"github.com/302xdwill/NutriFlow/services"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	Catalog *services.CatalogService
}

func NewIngredientController(catalog *services.CatalogService) *IngredientController {
	return &IngredientController{Catalog: catalog}
}

type ingredientInput struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	CaloriesPerGram float64 `json:"calories_per_gram" binding:"required"`
}

func (ic *IngredientController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ing, err := ic.Catalog.Create(uid, input.Name, models.MacroCategory(input.Category), input.CaloriesPerGram)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ing)
}

// GET /ingredients?category=PROTEIN
func (ic *IngredientController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	category := models.MacroCategory(c.Query("category"))

	list, err := ic.Catalog.List(uid, category)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ic *IngredientController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}
	if err := ic.Catalog.Delete(uid, uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}
