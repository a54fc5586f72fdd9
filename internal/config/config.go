package config

import (
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Config holds application configuration values.
type Config struct {
	DatabasePath string
	HTTPPort     string
	ExportDir    string
}

// Load reads configuration from environment variables with reasonable
// defaults. The database lives in a per-user application-data directory
// unless DATABASE_PATH overrides it.
func Load(log *zap.SugaredLogger) Config {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = defaultDatabasePath(log)
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Warnw("invalid HTTP_PORT value, defaulting to 8080", "value", port)
		port = "8080"
	}

	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = defaultExportDir()
	}

	return Config{DatabasePath: dbPath, HTTPPort: port, ExportDir: exportDir}
}

func defaultDatabasePath(log *zap.SugaredLogger) string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnw("unable to resolve home directory, using working directory", "error", err)
		return "pharmacy.db"
	}
	dir := filepath.Join(home, ".pharmacy_app")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warnw("unable to create data directory, using working directory", "dir", dir, "error", err)
		return "pharmacy.db"
	}
	return filepath.Join(dir, "pharmacy.db")
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return home
}
