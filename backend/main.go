package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"farmaapp/m/internal/api"
	"farmaapp/m/internal/config"
	"farmaapp/m/internal/database"
	"farmaapp/m/internal/migrations"
	"farmaapp/m/internal/report"
	"farmaapp/m/internal/repository"
	"farmaapp/m/internal/seed"
	"farmaapp/m/internal/settings"
)

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load(log)

	// Failure to open the database at all is the only fatal startup error;
	// schema, migration and seed problems are logged and tolerated.
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatalw("unable to open database", "path", cfg.DatabasePath, "error", err)
	}
	migrations.Run(db, log)
	seed.Types(db, log)
	seed.DefaultSettings(db, log)
	db.Close()

	items := repository.New(cfg.DatabasePath, log)
	st := settings.New(cfg.DatabasePath, log)
	reports := report.New(log)
	handler := api.New(items, st, reports, cfg.ExportDir, log)

	log.Infow("pharmacy inventory server starting", "port", cfg.HTTPPort, "db", cfg.DatabasePath)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalw("server error", "error", err)
	}
}
