// @title TUTEUR INTELLIGENT API
// @version 1.0
// @description Backend du tuteur intelligent : leçons, exercices, quiz et génération d'exercices par IA.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/app"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/configwatcher"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	// Hot-reload: AI credentials and model can change without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		application.ApplyConfig(updated)
	})

	application.Run()
}
