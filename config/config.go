// Package config loads the process configuration from the environment
// (optionally seeded from a .env file) and validates it once at startup.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// insecureDefaultSecret is the fallback the old deployment shipped with.
const insecureDefaultSecret = "default_secret_key"

const minSecretLength = 16

// Config is read-only after LoadConfig returns.
type Config struct {
	Host string
	Port string

	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration

	// MediaTimeout bounds handlers that move files to or from object
	// storage. Store calls inside them keep MongoTimeout.
	MediaTimeout time.Duration

	JWTSecret     string
	JWTAlgorithm  string
	JWTIssuer     string
	JWTAudience   string
	UserTokenTTL  time.Duration
	AdminTokenTTL time.Duration
	BcryptCost    int

	// AdminSignupKey, when non-empty, must be presented in X-Admin-Signup-Key
	// to create an admin account.
	AdminSignupKey string

	CORSOrigins   []string
	BodyLimitMB   int
	AuthRateLimit int

	LogLevel  string
	LogFormat string

	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicURL    string
	S3UsePathStyle bool
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// LoadConfig reads .env (if present) and the environment, then validates.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "mohafiz"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   getEnv("JWT_ALGORITHM", "HS256"),
		JWTIssuer:      getEnv("JWT_ISSUER", "mohafiz-backend"),
		JWTAudience:    getEnv("JWT_AUDIENCE", "mohafiz-clients"),
		AdminSignupKey: os.Getenv("ADMIN_SIGNUP_KEY"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,https://muhafizdashboardproject.vercel.app")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", "mohafiz"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.MongoTimeout, err = ParseDuration(getEnv("MONGO_TIMEOUT", "5s")); err != nil {
		errs = append(errs, fmt.Errorf("MONGO_TIMEOUT: %w", err))
	}
	if cfg.MediaTimeout, err = ParseDuration(getEnv("MEDIA_TIMEOUT", "30m")); err != nil {
		errs = append(errs, fmt.Errorf("MEDIA_TIMEOUT: %w", err))
	}
	if cfg.UserTokenTTL, err = ParseDuration(getEnv("USER_TOKEN_TTL", "7d")); err != nil {
		errs = append(errs, fmt.Errorf("USER_TOKEN_TTL: %w", err))
	}
	if cfg.AdminTokenTTL, err = ParseDuration(getEnv("ADMIN_TOKEN_TTL", "1d")); err != nil {
		errs = append(errs, fmt.Errorf("ADMIN_TOKEN_TTL: %w", err))
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "10")); err != nil {
		errs = append(errs, fmt.Errorf("BCRYPT_COST: %w", err))
	}
	if cfg.BodyLimitMB, err = strconv.Atoi(getEnv("BODY_LIMIT_MB", "100")); err != nil {
		errs = append(errs, fmt.Errorf("BODY_LIMIT_MB: %w", err))
	}
	if cfg.AuthRateLimit, err = strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "20")); err != nil {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT: %w", err))
	}
	if cfg.S3UsePathStyle, err = strconv.ParseBool(getEnv("S3_USE_PATH_STYLE", "true")); err != nil {
		errs = append(errs, fmt.Errorf("S3_USE_PATH_STYLE: %w", err))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would run with a guessable signing
// secret or an unsupported token algorithm.
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case c.JWTSecret == insecureDefaultSecret:
		errs = append(errs, errors.New("JWT_SECRET must not be the well-known default"))
	case len(c.JWTSecret) < minSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.JWTAlgorithm != "HS256" {
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported, only HS256", c.JWTAlgorithm))
	}
	if c.UserTokenTTL <= 0 || c.AdminTokenTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.MongoTimeout <= 0 {
		errs = append(errs, errors.New("MONGO_TIMEOUT must be positive"))
	}
	if c.MediaTimeout <= 0 {
		errs = append(errs, errors.New("MEDIA_TIMEOUT must be positive"))
	}
	// bounds mirror bcrypt.MinCost and bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range 4..31", c.BcryptCost))
	}
	if c.BodyLimitMB <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT_MB must be positive"))
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT must not be negative"))
	}
	if c.MongoURI == "" || c.MongoDB == "" {
		errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required"))
	}
	return errors.Join(errs...)
}

// StorageEnabled reports whether media uploads can be served.
func (c Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ParseDuration accepts time.ParseDuration syntax plus a whole-day "d" suffix
// such as "7d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
