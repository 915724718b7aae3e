package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongodb"
)

// Supported values for NUMBERING_POLICY.
const (
	PolicyBestEffort = "best-effort"
	PolicyStrict     = "strict"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is not set")

// Config holds seeder configuration
type Config struct {
	DatabaseURL     string
	DBDriver        string
	DBName          string // Mongo database name
	MaxOpenConns    int
	MaxIdleConns    int
	ContentDir      string // Empty means the embedded content pack
	NumberingPolicy string
	LogMode         string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}
	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	databaseURL := getEnv("DATABASE_URL", getEnv("MONGO_URI", ""))
	return &Config{
		DatabaseURL:     databaseURL,
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", InferDriver(databaseURL))),
		DBName:          getEnv("DB_NAME", "elearning"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ContentDir:      getEnv("CONTENT_DIR", ""),
		NumberingPolicy: strings.ToLower(getEnv("NUMBERING_POLICY", PolicyBestEffort)),
		LogMode:         getEnv("LOG_MODE", "development"),
	}
}

// Validate reports the first configuration problem that makes a seed run impossible.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.NumberingPolicy {
	case PolicyBestEffort, PolicyStrict:
	default:
		return fmt.Errorf("unsupported NUMBERING_POLICY %q", c.NumberingPolicy)
	}
	return nil
}

// InferDriver guesses the driver from the connection string scheme.
func InferDriver(url string) string {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return DriverMongo
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"), strings.Contains(url, "host="):
		return DriverPostgres
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"), strings.HasSuffix(url, ".sqlite"):
		return DriverSQLite
	case strings.Contains(url, "@tcp("):
		return DriverMySQL
	default:
		return DriverPostgres
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
