package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/platform/logging"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config stores runtime configuration for the verifier.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	StoreDriver             string
	DBURL                   string
	DBDisablePreparedBinary bool
	SeedOnStart             bool
	LeagueID                string
	SourcesDir              string
	BackupDir               string
	AnnouncementSenders     []string
	SourceWorkers           int
	DefaultGameweek         int
	SourceTimezone          string
	SourceLocation          *time.Location
	UptraceEnabled          bool
	UptraceDSN              string
	LogLevel                logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storeDriver, err := parseStoreDriver(getEnv("STORE_DRIVER", StoreDriverPostgres))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeDriver == StoreDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_DRIVER=%s", StoreDriverPostgres)
	}
	disablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	seedDefault := "false"
	if storeDriver == StoreDriverMemory {
		seedDefault = "true"
	}
	seedOnStart, err := strconv.ParseBool(getEnv("SEED_ON_START", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_ON_START: %w", err)
	}

	sourceWorkers, err := getEnvAsInt("SOURCE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_WORKERS: %w", err)
	}
	if sourceWorkers <= 0 {
		return Config{}, fmt.Errorf("SOURCE_WORKERS must be > 0")
	}

	defaultGameweek, err := getEnvAsInt("DEFAULT_GAMEWEEK", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_GAMEWEEK: %w", err)
	}
	if defaultGameweek < 0 {
		return Config{}, fmt.Errorf("DEFAULT_GAMEWEEK must be >= 0")
	}

	sourceTimezone := strings.TrimSpace(getEnv("SOURCE_TIMEZONE", "UTC"))
	sourceLocation, err := time.LoadLocation(sourceTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_TIMEZONE: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "prediction-verifier"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		StoreDriver:             storeDriver,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: disablePreparedBinary,
		SeedOnStart:             seedOnStart,
		LeagueID:                strings.TrimSpace(getEnv("LEAGUE_ID", "")),
		SourcesDir:              strings.TrimSpace(getEnv("SOURCES_DIR", "./sources")),
		BackupDir:               strings.TrimSpace(getEnv("BACKUP_DIR", "./backups")),
		AnnouncementSenders:     splitCSV(getEnv("ANNOUNCEMENT_SENDERS", "")),
		SourceWorkers:           sourceWorkers,
		DefaultGameweek:         defaultGameweek,
		SourceTimezone:          sourceTimezone,
		SourceLocation:          sourceLocation,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStoreDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StoreDriverPostgres, StoreDriverMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", v, StoreDriverPostgres, StoreDriverMemory)
	}
}
