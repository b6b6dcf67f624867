package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/careers"
	"careers-backend/internal/careers/sheets"
	"careers-backend/internal/shared/config"
	"careers-backend/internal/shared/server"
	"careers-backend/internal/shared/server/middleware"
	"careers-backend/internal/shared/storage/db"
	"careers-backend/internal/shared/storage/object/local"
	"careers-backend/internal/shared/telemetry"
)

// App wires the whole service together. Tests build one against a fresh
// in-memory backend.
type App struct {
	Cfg     config.Config
	Router  *gin.Engine
	Storage careers.Storage
	Backend string
	DB      *sql.DB
}

// ChooseBackend applies the selection policy: the spreadsheet backend only
// when all three sheet credentials are present and non-empty, otherwise
// Postgres when a database URL is set, otherwise the in-memory fallback.
// Decided once per process, never reevaluated at request time.
func ChooseBackend(cfg config.Config) string {
	if cfg.HasSheetCredentials() {
		return "sheets"
	}
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "memory"
}

func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Cfg: cfg, Backend: ChooseBackend(cfg)}

	switch app.Backend {
	case "sheets":
		client := sheets.NewClient(sheets.ClientConfig{
			SheetID:             cfg.SheetID,
			ServiceAccountEmail: cfg.ServiceAccountEmail,
			PrivateKey:          cfg.PrivateKey,
		})
		app.Storage = sheets.NewStore(client)
	case "postgres":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		app.DB = conn
		app.Storage = careers.NewPGStorage(conn)
	default:
		app.Storage = careers.NewMemoryStorage()
	}

	telemetry.Info("storage.selected", map[string]any{
		"backend":           app.Backend,
		"sheet_id_set":      cfg.SheetID != "",
		"service_email_set": cfg.ServiceAccountEmail != "",
		"private_key_set":   cfg.PrivateKey != "",
		"database_url_set":  cfg.DatabaseURL != "",
	})

	// Seeding against the sheet backend would force eager initialization,
	// so only the local backends get sample data.
	if cfg.SeedSampleJobs && app.Backend != "sheets" {
		created, err := careers.SeedSampleJobs(ctx, app.Storage)
		if err != nil {
			telemetry.Warn("seed.failed", map[string]any{"error": err.Error()})
		} else if created > 0 {
			telemetry.Info("seed.complete", map[string]any{"jobs": created})
		}
	}

	files, err := local.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	svc := careers.NewService(app.Storage, files, cfg.MaxResumeBytes)
	handler := careers.NewHandler(svc, careers.CredentialPresence{
		SheetID:             cfg.SheetID != "",
		ServiceAccountEmail: cfg.ServiceAccountEmail != "",
		PrivateKey:          cfg.PrivateKey != "",
		DatabaseURL:         cfg.DatabaseURL != "",
	})

	app.Router = server.NewRouter(server.RouterDeps{
		Careers:        handler,
		AllowedOrigins: cfg.CORSAllowOrigin,
		SubmitRate:     cfg.SubmitRatePerSec,
		SubmitBurst:    cfg.SubmitBurst,
		Limiter:        middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
