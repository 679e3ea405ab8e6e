package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Record store backends
const (
	StoreBackendPostgres = "postgres"
	StoreBackendSheets   = "sheets"
	StoreBackendMemory   = "memory"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string        `validate:"required,numeric"`
	GinMode        string        `validate:"oneof=debug release test"`
	APIVersion     string        `validate:"required"`
	APIPrefix      string        `validate:"startswith=/"`
	ReadTimeout    time.Duration `validate:"gt=0"`
	WriteTimeout   time.Duration `validate:"gt=0"`
	IdleTimeout    time.Duration `validate:"gt=0"`
	MaxHeaderBytes int           `validate:"gt=0"`
	AppBaseURL     string        `validate:"required,url"`

	// Venue
	Venue VenueConfig

	// Record store
	StoreBackend string `validate:"oneof=postgres sheets memory"`
	Database     DatabaseConfig
	Sheets       SheetsConfig

	// Redis configuration
	Redis RedisConfig

	// Kafka booking events
	Kafka KafkaConfig

	// JWT configuration
	JWT   JWTConfig
	Admin AdminConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// QR code
	QR QRConfig

	// Logging
	LogLevel string `validate:"oneof=debug info warn warning error"`
}

// VenueConfig holds the fixed venue layout
type VenueConfig struct {
	SeatCount int `validate:"gte=1"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// SheetsConfig holds Google Sheets record store configuration
type SheetsConfig struct {
	SpreadsheetID   string
	Tab             string
	CredentialsFile string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int `validate:"gte=0,lte=15"`
	Addr     string

	BookedSeatsTTL time.Duration `validate:"gte=0"`
}

// KafkaConfig holds booking event publishing configuration
type KafkaConfig struct {
	Enabled      bool
	AuditEnabled bool
	Brokers      []string
	Topic        string
	AuditGroupID string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string        `validate:"required"`
	AccessExpiresIn time.Duration `validate:"gt=0"`
}

// AdminConfig holds the single operator account for admin routes.
// Admin login is disabled while PasswordHash is empty.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration" validate:"gt=0"`
	DefaultRequests int           `json:"default_requests" validate:"gte=0"`
	PublicRequests  int           `json:"public_requests" validate:"gte=0"`
	BookingRequests int           `json:"booking_requests" validate:"gte=0"`
	AdminRequests   int           `json:"admin_requests" validate:"gte=0"`
	HealthRequests  int           `json:"health_requests" validate:"gte=0"`
	WhitelistedIPs  []string      `json:"whitelisted_ips" validate:"dive,ip"`
}

// QRConfig holds QR code rendering configuration
type QRConfig struct {
	Size     int `validate:"gte=64,lte=2048"`
	Endpoint string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),

		Venue: VenueConfig{
			SeatCount: getIntEnv("SEAT_COUNT", 200),
		},

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendPostgres)),

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "seatbook_db"),
			User:     getEnv("DB_USER", "seatbook_user"),
			Password: getEnv("DB_PASSWORD", "seatbook_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("GOOGLE_SHEET_ID", ""),
			Tab:             getEnv("GOOGLE_SHEET_TAB", "Sheet1"),
			CredentialsFile: getEnv("SERVICE_ACCOUNT_FILE", "service_account.json"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:        getBoolEnv("REDIS_ENABLED", true),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			BookedSeatsTTL: getDurationEnv("BOOKED_SEATS_CACHE_TTL", 30*time.Second),
		},

		Kafka: KafkaConfig{
			Enabled:      getBoolEnv("KAFKA_ENABLED", false),
			AuditEnabled: getBoolEnv("KAFKA_AUDIT_ENABLED", false),
			Brokers:      getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:        getEnv("BOOKING_EVENTS_TOPIC", "booking-events"),
			AuditGroupID: getEnv("BOOKING_AUDIT_GROUP_ID", "seatbook-booking-audit"),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			AccessExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 15*time.Minute),
		},

		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		QR: QRConfig{
			Size:     getIntEnv("QR_SIZE", 256),
			Endpoint: getEnv("QR_ENDPOINT", "/"),
		},

		// Logging
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "debug")),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// Validate checks the loaded values and the settings the chosen store needs
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StoreBackend == StoreBackendSheets && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("invalid configuration: GOOGLE_SHEET_ID is required for the sheets store")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("invalid configuration: KAFKA_BROKERS is required when Kafka is enabled")
	}
	return nil
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
