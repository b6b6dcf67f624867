package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	Env                 string
	SheetID             string
	ServiceAccountEmail string
	PrivateKey          string
	DatabaseURL         string
	UploadDir           string
	MaxResumeBytes      int64
	SubmitRatePerSec    float64
	SubmitBurst         int
	SeedSampleJobs      bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:                 env,
		SheetID:             strings.TrimSpace(getEnv("GOOGLE_SHEET_ID", "")),
		ServiceAccountEmail: strings.TrimSpace(getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", "")),
		PrivateKey:          getEnv("GOOGLE_PRIVATE_KEY", ""),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),
		MaxResumeBytes:      getEnvInt64("RESUME_MAX_BYTES", 5*1024*1024),
		SubmitRatePerSec:    getEnvFloat("SUBMIT_RATE_PER_SEC", 5.0/(15*60)),
		SubmitBurst:         int(getEnvInt64("SUBMIT_BURST", 5)),
		SeedSampleJobs:      env == "dev" || env == "local",
	}
}

// HasSheetCredentials reports whether all three spreadsheet secrets are
// present and non-empty. The spreadsheet-backed store is selected only when
// every one of them is set.
func (c Config) HasSheetCredentials() bool {
	return c.SheetID != "" && c.ServiceAccountEmail != "" && strings.TrimSpace(c.PrivateKey) != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
