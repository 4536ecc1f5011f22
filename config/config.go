package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	WBAPIBaseURL string
	WBAPIToken   string

	GoogleCredentialsFile string
	SpreadsheetIDs        []string
	SheetName             string
	SheetClearRange       string

	SyncCronSpec string
	SyncOnStart  bool
	MaxRetries   int
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "tariffsync"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "tariffsync"))

	cfg.WBAPIBaseURL = cast.ToString(getOrReturnDefault("WB_API_BASE_URL", "https://common-api.wildberries.ru"))
	cfg.WBAPIToken = cast.ToString(getOrReturnDefault("WB_API_TOKEN", ""))

	cfg.GoogleCredentialsFile = cast.ToString(getOrReturnDefault("GOOGLE_CREDENTIALS_FILE", ""))
	cfg.SpreadsheetIDs = splitList(cast.ToString(getOrReturnDefault("SPREADSHEET_IDS", "")))
	cfg.SheetName = cast.ToString(getOrReturnDefault("SHEET_NAME", "stocks_coefs"))
	cfg.SheetClearRange = cast.ToString(getOrReturnDefault("SHEET_CLEAR_RANGE", "A1:G1000"))

	cfg.SyncCronSpec = cast.ToString(getOrReturnDefault("SYNC_CRON_SPEC", "0 * * * *"))
	cfg.SyncOnStart = cast.ToBool(getOrReturnDefault("SYNC_ON_START", true))
	cfg.MaxRetries = cast.ToInt(getOrReturnDefault("SYNC_MAX_RETRIES", 3))

	return cfg
}

// Validate rejects a configuration the pipeline cannot run with.
// The process must not start while this returns an error.
func (c Config) Validate() error {
	var missing []string
	if c.WBAPIToken == "" {
		missing = append(missing, "WB_API_TOKEN")
	}
	if c.GoogleCredentialsFile == "" {
		missing = append(missing, "GOOGLE_CREDENTIALS_FILE")
	}
	if len(c.SpreadsheetIDs) == 0 {
		missing = append(missing, "SPREADSHEET_IDS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("SYNC_MAX_RETRIES must be at least 1, got %d", c.MaxRetries)
	}
	if c.SheetName == "" {
		return fmt.Errorf("SHEET_NAME must not be empty")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
