package main

import (
	"flag"

	"github.com/ziyuew/habitquest/config"
	"github.com/ziyuew/habitquest/game"
	"github.com/ziyuew/habitquest/models"
	"github.com/ziyuew/habitquest/routes"
	"github.com/ziyuew/habitquest/utils"
)

func main() {
	seed := flag.Bool("seed", false, "seed achievements, equipment catalog and demo accounts, then continue serving")
	flag.Parse()

	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Equipment{},
		&models.UserEquipment{},
		&models.DailyCheckIn{},
		&models.TowerProgress{},
	)

	if *seed {
		if err := game.Seed(db); err != nil {
			utils.Sugar.Fatalf("seeding failed: %v", err)
		}
		utils.Sugar.Infow("seed data applied")
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
