package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env            string `env:"APP_ENV" envDefault:"development"`
		Port           string `env:"PORT"    envDefault:"8080"`
		FrontendURL    string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		CourseDataFile string `env:"COURSE_DATA_FILE" envDefault:""`
		AuthRateLimit  string `env:"AUTH_RATE_LIMIT" envDefault:"10-M"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"golfku_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	EventsDB struct {
		Host     string `env:"EVENTS_DB_HOST"     envDefault:"localhost"`
		Port     string `env:"EVENTS_DB_PORT"     envDefault:"5432"`
		User     string `env:"EVENTS_DB_USER"     envDefault:"postgres"`
		Password string `env:"EVENTS_DB_PASSWORD" envDefault:"password"`
		Name     string `env:"EVENTS_DB_NAME"     envDefault:"golfku_events_db"`
		SSLMode  string `env:"EVENTS_DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"  envDefault:"supersecret"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"60"`
		ResetTokenExpiryMinutes  int    `env:"RESET_TOKEN_EXPIRY_MINUTES" envDefault:"15"`
	}
	SMTP struct {
		Host     string `env:"SMTP_HOST" envDefault:""`
		Port     int    `env:"SMTP_PORT" envDefault:"587"`
		Username string `env:"SMTP_USER" envDefault:""`
		Password string `env:"SMTP_PASS" envDefault:""`
		From     string `env:"SMTP_FROM" envDefault:"noreply@golfku.id"`
	}
	Events struct {
		Port           string `env:"EVENTS_PORT" envDefault:"5001"`
		ServiceURL     string `env:"EVENTS_SERVICE_URL" envDefault:"http://localhost:5001"`
		TimeoutSeconds int    `env:"EVENTS_TIMEOUT_SECONDS" envDefault:"3"`
	}
}

// Global DB instance for the main API service, set by Initialize.
var DB *gorm.DB

// Global DB instance for the events service, set by InitializeEvents.
var EventsDB *gorm.DB

var appConfig *Config
var once sync.Once
var eventsOnce sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
// It's designed to be called once.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.CourseDataFile = getEnv("COURSE_DATA_FILE", "")
	cfg.App.AuthRateLimit = getEnv("AUTH_RATE_LIMIT", "10-M")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "golfku_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- Events Service Database Configuration ---
	cfg.EventsDB.Host = getEnv("EVENTS_DB_HOST", cfg.DB.Host)
	cfg.EventsDB.Port = getEnv("EVENTS_DB_PORT", cfg.DB.Port)
	cfg.EventsDB.User = getEnv("EVENTS_DB_USER", cfg.DB.User)
	cfg.EventsDB.Password = getEnv("EVENTS_DB_PASSWORD", cfg.DB.Password)
	cfg.EventsDB.Name = getEnv("EVENTS_DB_NAME", "golfku_events_db")
	cfg.EventsDB.SSLMode = getEnv("EVENTS_DB_SSLMODE", cfg.DB.SSLMode)

	// --- JWT Configuration ---
	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "your-very-strong-access-secret")

	var err error
	cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}
	cfg.JWT.ResetTokenExpiryMinutes, err = getEnvAsInt("RESET_TOKEN_EXPIRY_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_EXPIRY_MINUTES: %w", err)
	}

	// --- SMTP Configuration ---
	cfg.SMTP.Host = getEnv("SMTP_HOST", "")
	cfg.SMTP.Port, err = getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTP.Username = getEnv("SMTP_USER", "")
	cfg.SMTP.Password = getEnv("SMTP_PASS", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", "noreply@golfku.id")

	// --- Events Service Configuration ---
	cfg.Events.Port = getEnv("EVENTS_PORT", "5001")
	cfg.Events.ServiceURL = getEnv("EVENTS_SERVICE_URL", "http://localhost:5001")
	cfg.Events.TimeoutSeconds, err = getEnvAsInt("EVENTS_TIMEOUT_SECONDS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENTS_TIMEOUT_SECONDS: %w", err)
	}

	// Basic validation for critical secrets
	if cfg.JWT.AccessTokenSecret == "your-very-strong-access-secret" {
		log.Println("WARNING: Using default JWT secret. Please set JWT_ACCESS_TOKEN_SECRET environment variable for production.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg // Set the global instance
	return cfg, nil
}

// ConnectDB establishes a connection to the main database and sets the
// global DB variable.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormDB, err := openPostgres(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// ConnectEventsDB establishes a connection to the events service database
// and sets the global EventsDB variable.
func ConnectEventsDB(cfg *Config) (*gorm.DB, error) {
	gormDB, err := openPostgres(cfg.EventsDB.Host, cfg.EventsDB.User, cfg.EventsDB.Password, cfg.EventsDB.Name, cfg.EventsDB.Port, cfg.EventsDB.SSLMode, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to events database: %w", err)
	}

	EventsDB = gormDB
	log.Println("Successfully connected to events database!")
	return gormDB, nil
}

func openPostgres(host, user, password, name, port, sslMode, env string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
		host, user, password, name, port, sslMode,
	)

	gormConfig := &gorm.Config{}
	if env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent) // Less verbose in production
	}

	return gorm.Open(postgres.Open(dsn), gormConfig)
}

// Initialize loads all configurations and connects to the main database.
// This should be called once at the start of the API service.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectDB(appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// InitializeEvents loads all configurations and connects to the events
// database. This should be called once at the start of the events service.
func InitializeEvents() error {
	var loadErr error
	eventsOnce.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectEventsDB(appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to events database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It panics if the configuration has not been loaded yet,
// ensuring that configuration is always available when requested after Initialize().
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
