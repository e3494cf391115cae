package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted for DB_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds the full service configuration, resolved once at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Events   EventsConfig
	Storage  StorageConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host        string
	Port        string
	Environment string
}

// DatabaseConfig configures the backing store. For Postgres the transport
// (unix socket dir vs TCP) is selected here, once, based on the deployment
// context; callers only ever see the resolved DSN.
type DatabaseConfig struct {
	Backend string

	InstanceConnectionName string
	User                   string
	Password               string
	Name                   string
	Host                   string
	Port                   string

	SQLitePath string

	// Managed is true when hosting-platform markers are present and the
	// database is reached through its filesystem socket.
	Managed bool
}

// EventsConfig configures the change-event topic.
type EventsConfig struct {
	Brokers []string
	Topic   string
}

// StorageConfig configures the optional audio archive.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads configuration from the environment, loading a .env file first if
// one is present. Missing required database settings fail immediately.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvOrDefault("SERVER_PORT", "8000"),
			Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Backend:                getEnvOrDefault("DB_BACKEND", BackendPostgres),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
			User:                   os.Getenv("DB_USER"),
			Password:               os.Getenv("DB_PASS"),
			Name:                   os.Getenv("DB_NAME"),
			Host:                   getEnvOrDefault("DB_HOST", "127.0.0.1"),
			Port:                   getEnvOrDefault("DB_PORT", "5432"),
			SQLitePath:             getEnvOrDefault("SQLITE_PATH", "data/transcriptions.db"),
			Managed:                runningManaged(),
		},
		Events: EventsConfig{
			Brokers: strings.Split(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnvOrDefault("KAFKA_TOPIC", "transcriptions-events"),
		},
		Storage: StorageConfig{
			Enabled:   os.Getenv("STORAGE_ENABLED") == "true",
			Endpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnvOrDefault("MINIO_BUCKET", "transcription-audio"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d DatabaseConfig) validate() error {
	if d.Backend == BackendSQLite {
		return nil
	}
	if d.Backend != BackendPostgres {
		return fmt.Errorf("unsupported DB_BACKEND %q (want %q or %q)", d.Backend, BackendPostgres, BackendSQLite)
	}

	var missing []string
	if d.User == "" {
		missing = append(missing, "DB_USER")
	}
	if d.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if d.Managed && d.InstanceConnectionName == "" {
		missing = append(missing, "INSTANCE_CONNECTION_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required DB configuration: %s (check your .env or deployment env vars)",
			strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the Postgres connection string. Managed deployments connect over
// the platform's filesystem socket; local development connects over TCP,
// typically through a proxy on loopback. Both use the same credentials and
// database name.
func (d DatabaseConfig) DSN() string {
	if d.Managed {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			d.InstanceConnectionName, d.User, d.Password, d.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// runningManaged detects the hosting platform via its environment markers.
func runningManaged() bool {
	return os.Getenv("K_SERVICE") != "" || os.Getenv("CLOUD_RUN_JOB") != ""
}

// loadDotEnv loads the first .env file found among the candidate paths. Not
// finding one is fine; the environment may be set system-wide.
func loadDotEnv() {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
