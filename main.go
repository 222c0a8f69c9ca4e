package main

import (
	"github.com/svenriksen/syncshack-2025/config"
	"github.com/svenriksen/syncshack-2025/models"
	"github.com/svenriksen/syncshack-2025/routes"
	"github.com/svenriksen/syncshack-2025/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Profile{},
		&models.Trip{},
		&models.GardenTile{},
		&models.LeaderboardWeek{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
