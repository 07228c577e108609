package main

import (
    "log"
    "os"

    "github.com/302xdwill/NutriFlow/config"
    "github.com/302xdwill/NutriFlow/routes"
    "github.com/302xdwill/NutriFlow/services"
)

func main() {
    config.LoadEnv()

    db, err := config.OpenDB()
    if err != nil {
        log.Fatalf("database: %v", err)
    }

    bus := services.NewChangeBus()
    hub := services.NewRealtimeHub()

    // Push is optional: without AWS credentials reminders still reach
    // open websocket clients.
    push, err := services.NewPushService(db)
    if err != nil {
        log.Printf("push disabled: %v", err)
        push = nil
    }

    reminders := services.NewReminderService(db, hub, push)
    defer reminders.Stop()

    deps := routes.Deps{
        DB:      db,
        Users:   services.NewUserService(db),
        Catalog: services.NewCatalogService(db, bus),
        Plates:  services.NewPlateService(db, bus),
        Meals:   services.NewMealService(db, bus, reminders),
        Goals:   nil,
        Hub:     hub,
        Push:    push,
    }
    deps.Goals = services.NewGoalService(db, bus, deps.Meals)

    r := routes.SetupRouter(deps)

    addr := ":" + os.Getenv("PORT")
    if addr == ":" {
        addr = ":8080"
    }
    if err := r.Run(addr); err != nil {
        log.Fatalf("server: %v", err)
    }
}
