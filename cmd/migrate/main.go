package main

import (
	"context"
	"os"

	"careers-backend/internal/shared/config"
	"careers-backend/internal/shared/storage/db"
	"careers-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.failed", map[string]any{"error": "DATABASE_URL is not set"})
		os.Exit(1)
	}

	conn, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.complete", nil)
}
