package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Log store drivers accepted by LOG_STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

const (
	defaultJWTSecret          = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer          = "parkmate"
	defaultJWTExpiry          = time.Hour
	defaultRefreshTokenExpiry = 7 * 24 * time.Hour
	defaultPasswordResetTTL   = time.Hour
	defaultUnitRate           = "10"
	defaultCurrency           = "TL"
	maxUnitRateScale          = 2
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Log store selection
	LogStoreDriver string
	SQLitePath     string
	MongoURI       string
	MongoDatabase  string
	MigrationsPath string

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenExpiryDuration time.Duration
	PasswordResetTTL           time.Duration

	// Parking tariff
	ParkingUnitRate decimal.Decimal
	ParkingCurrency string

	DefaultTheme    string
	DefaultLanguage string

	// Formatted ulule/limiter rates, e.g. "5-M"
	LoginRateLimit string
	ExitRateLimit  string

	CORSAllowedOrigins []string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("SQLITE_PATH", "parkmate.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "parkmate")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("PASSWORD_RESET_TTL", "1h")
	v.SetDefault("PARKING_UNIT_RATE", defaultUnitRate)
	v.SetDefault("PARKING_CURRENCY", defaultCurrency)
	v.SetDefault("DEFAULT_THEME", "dark")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("EXIT_RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:8081")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		LogStoreDriver:  strings.ToLower(strings.TrimSpace(v.GetString("LOG_STORE_DRIVER"))),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		ParkingCurrency: v.GetString("PARKING_CURRENCY"),
		DefaultTheme:    v.GetString("DEFAULT_THEME"),
		DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		LoginRateLimit:  v.GetString("LOGIN_RATE_LIMIT"),
		ExitRateLimit:   v.GetString("EXIT_RATE_LIMIT"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),

		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.LogStoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite, StoreDriverMongo, StoreDriverMemory:
	default:
		log.Printf("Warning: Invalid value for LOG_STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.LogStoreDriver, StoreDriverPostgres)
		cfg.LogStoreDriver = StoreDriverPostgres
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.RefreshTokenExpiryDuration = durationOrDefault(v, "REFRESH_TOKEN_EXPIRY_DURATION", defaultRefreshTokenExpiry)
	cfg.PasswordResetTTL = durationOrDefault(v, "PASSWORD_RESET_TTL", defaultPasswordResetTTL)

	// Billed amounts keep at most maxUnitRateScale decimal places.
	rateStr := v.GetString("PARKING_UNIT_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || !rate.IsPositive() || !rate.Equal(rate.Round(maxUnitRateScale)) {
		rate = decimal.RequireFromString(defaultUnitRate)
		log.Printf("Warning: Invalid value for PARKING_UNIT_RATE ('%s'). Defaulting to %s.\n", rateStr, rate.String())
	}
	cfg.ParkingUnitRate = rate
	if cfg.ParkingCurrency == "" {
		cfg.ParkingCurrency = defaultCurrency
	}

	if cfg.DefaultTheme != "light" && cfg.DefaultTheme != "dark" {
		log.Printf("Warning: Invalid value for DEFAULT_THEME ('%s'). Defaulting to dark.\n", cfg.DefaultTheme)
		cfg.DefaultTheme = "dark"
	}
	if cfg.DefaultLanguage != "en" && cfg.DefaultLanguage != "tr" {
		log.Printf("Warning: Invalid value for DEFAULT_LANGUAGE ('%s'). Defaulting to en.\n", cfg.DefaultLanguage)
		cfg.DefaultLanguage = "en"
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	if cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google OAuth redirect flow will not function.")
	}

	return cfg, nil
}

// durationOrDefault parses key as a time.Duration, e.g. "60m" or "168h".
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
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
