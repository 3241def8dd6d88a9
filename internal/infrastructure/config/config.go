// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultLookbackDays is how far back a report's name-encoded date may lie
// for the file to still be eligible.
const DefaultLookbackDays = 30

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// SFTP drop the reporting system deposits files into
	SFTPHost     string
	SFTPPort     int
	SFTPUser     string
	SFTPPassword string
	RemoteDir    string
	DialTimeout  time.Duration

	// Local staging and export
	LocalDir     string
	OutputDir    string
	ExportFormat string // "csv" or "parquet"
	HistoryFile  string
	LookbackDays int

	// Optional MongoDB archive of extracted records
	ArchiveEnabled bool
	MongoURI       string
	MongoDB        string
	MongoUser      string
	MongoPassword  string

	// Optional airport reference database for enrichment
	PostgresDSN string

	// Optional metrics push
	PushgatewayURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		SFTPHost:     getEnv("SFTP_HOST", ""),
		SFTPPort:     getEnvAsInt("SFTP_PORT", 22),
		SFTPUser:     getEnv("SFTP_USER", ""),
		SFTPPassword: getEnv("SFTP_PASSWORD", ""),
		RemoteDir:    getEnv("SFTP_REMOTE_DIR", "/reports"),
		DialTimeout:  time.Duration(getEnvAsInt("SFTP_DIAL_TIMEOUT", 30)) * time.Second,

		LocalDir:     getEnv("LOCAL_DIR", "./reports"),
		OutputDir:    getEnv("OUTPUT_DIR", "./output"),
		ExportFormat: getEnv("EXPORT_FORMAT", "csv"),
		HistoryFile:  getEnv("HISTORY_FILE", "./processed_reports.log"),
		LookbackDays: getEnvAsInt("LOOKBACK_DAYS", DefaultLookbackDays),

		ArchiveEnabled: getEnvAsBool("ARCHIVE_ENABLED", false),
		MongoURI:       getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "flightreports"),
		MongoUser:      getEnv("MONGO_USER", ""),
		MongoPassword:  getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
	}

	if config.SFTPHost == "" {
		return nil, fmt.Errorf("SFTP_HOST is required")
	}
	if config.SFTPUser == "" {
		return nil, fmt.Errorf("SFTP_USER is required")
	}
	if config.ExportFormat != "csv" && config.ExportFormat != "parquet" {
		return nil, fmt.Errorf("EXPORT_FORMAT must be csv or parquet, got %q", config.ExportFormat)
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
