package controllers

import (
	"net/http"

	"github.com/302xdwill/NutriFlow/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{Goals: goals}
}

func (gc *GoalController) GetGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	goals, err := gc.Goals.Goals(uid)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (gc *GoalController) UpsertGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.GoalSet
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := gc.Goals.UpsertGoals(uid, input); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goals updated", "goals": input})
}
