// @title Job Board Assessments API
// @version 1.0
// @description Assessment authoring, CSV question import and grading for the job board.

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"job_board_backend/internal/app"
	"job_board_backend/internal/config"
	"job_board_backend/pkg/logger"
	"log"
	"path/filepath"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run migrations on start, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg, filepath.Join(*configDir, "config.yaml"))
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished")
		return
	}

	application.Run()
}
