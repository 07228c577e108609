package routes

import (
    "github.com/302xdwill/NutriFlow/controllers"
    "github.com/302xdwill/NutriFlow/middlewares"
    "github.com/302xdwill/NutriFlow/services"

    "github.com/gin-gonic/gin"
    "github.com/rs/cors"
    gincors "github.com/rs/cors/wrapper/gin"
    "gorm.io/gorm"
)

// Deps collects everything the router hands to the controllers.
type Deps struct {
    DB      *gorm.DB
    Users   *services.UserService
    Catalog *services.CatalogService
    Plates  *services.PlateService
    Meals   *services.MealService
    Goals   *services.GoalService
    Hub     *services.RealtimeHub
    Push    *services.PushService
}

func SetupRouter(d Deps) *gin.Engine {
    r := gin.Default()
    r.Use(gincors.New(cors.Options{
        AllowedOrigins: []string{"*"},
        AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
        AllowedHeaders: []string{"Authorization", "Content-Type"},
    }))

    authCtl := controllers.NewAuthController(d.Users)
    userCtl := controllers.NewUserController(d.Users)
    ingCtl := controllers.NewIngredientController(d.Catalog)
    plateCtl := controllers.NewPlateController(d.Plates, d.Catalog)
    mealCtl := controllers.NewMealController(d.Meals, d.Plates, d.Goals)
    goalCtl := controllers.NewGoalController(d.Goals)
    devCtl := controllers.NewDeviceController(d.DB, d.Push)
    rtCtl := controllers.NewRealtimeController(d.Hub)

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", authCtl.Register)
        auth.POST("/login", authCtl.Login)
    }

    // Protected user routes
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware(d.DB))
    {
        user.GET("/profile", userCtl.GetProfile)
        user.PUT("/profile", userCtl.UpdateProfile)
        user.GET("/goals", goalCtl.GetGoals)
        user.PUT("/goals", goalCtl.UpsertGoals)
        user.POST("/devices", devCtl.Register)
        user.POST("/notifications/toggle", devCtl.Toggle)
        user.GET("/events/ws", rtCtl.EventsWS)
    }

    ingredients := r.Group("/ingredients")
    ingredients.Use(middlewares.AuthMiddleware(d.DB))
    {
        ingredients.POST("", ingCtl.Create)
        ingredients.GET("", ingCtl.List)
        ingredients.DELETE("/:id", ingCtl.Delete)
    }

    plates := r.Group("/plates")
    plates.Use(middlewares.AuthMiddleware(d.DB))
    {
        plates.POST("", plateCtl.Create)
        plates.POST("/preview", plateCtl.Preview)
        plates.GET("", plateCtl.List)
        plates.GET("/:id", plateCtl.Get)
        plates.PUT("/:id", plateCtl.Update)
        plates.DELETE("/:id", plateCtl.Delete)
    }

    meals := r.Group("/meals")
    meals.Use(middlewares.AuthMiddleware(d.DB))
    {
        meals.POST("/schedule", mealCtl.Schedule)
        meals.POST("/manual", mealCtl.RecordManual)
        meals.GET("", mealCtl.ListAll)
        meals.GET("/day", mealCtl.ListDay)
        meals.GET("/summary", mealCtl.DailySummary)
    }

    return r
}
