package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// BackupConfig points at an S3-compatible bucket.
type BackupConfig struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // optional, for R2/MinIO style endpoints
	AccessKey string
	SecretKey string
}

// Enabled reports whether a bucket is configured.
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreBackend  string
	DatabaseURL   string
	EnableDBCheck bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RateLimit          string // ulule format, e.g. "100-M"
	CORSAllowedOrigins []string

	Backup BackupConfig

	LowStockThreshold int
	Location          *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "shopledger:")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "shop-ledger-app")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("BACKUP_BUCKET", "")
	v.SetDefault("BACKUP_PREFIX", "backups/")
	v.SetDefault("BACKUP_REGION", "auto")
	v.SetDefault("BACKUP_ENDPOINT", "")
	v.SetDefault("BACKUP_ACCESS_KEY", "")
	v.SetDefault("BACKUP_SECRET_KEY", "")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("TIMEZONE", "Local")

	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		StoreBackend:  strings.ToLower(v.GetString("STORE_BACKEND")),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisPrefix:   v.GetString("REDIS_PREFIX"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		Backup: BackupConfig{
			Bucket:    v.GetString("BACKUP_BUCKET"),
			Prefix:    v.GetString("BACKUP_PREFIX"),
			Region:    v.GetString("BACKUP_REGION"),
			Endpoint:  v.GetString("BACKUP_ENDPOINT"),
			AccessKey: v.GetString("BACKUP_ACCESS_KEY"),
			SecretKey: v.GetString("BACKUP_SECRET_KEY"),
		},
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		log.Printf("Warning: unknown STORE_BACKEND %q. Defaulting to %s.\n", cfg.StoreBackend, StoreMemory)
		cfg.StoreBackend = StoreMemory
	}
	if cfg.StoreBackend == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: STORE_BACKEND is postgres but PGSQL_URL is not set.")
	}

	// Load JWT Secret
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "12h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 10
	}

	tz := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid TIMEZONE ('%s'). Defaulting to Local.\n", tz)
		loc = time.Local
	}
	cfg.Location = loc

	return cfg, nil
}
