package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Auth settings are required because tokens
// signed with a guessable secret are worse than no server at all; store
// settings only warn when missing, because the API is expected to boot
// and let store calls fail at call time when the database is away.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration from environment variables. Required
// variables are enforced by must(); store-related variables go through
// warn() and fall back to local defaults.
func Load() Config {
	return Config{
		Env:            warn("APP_ENV", "dev"),
		Port:           warn("APP_PORT", "8080"),
		DBUser:         warn("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         warn("DB_HOST", "localhost"),
		DBPort:         warn("DB_PORT", "3306"),
		DBName:         warn("DB_NAME", "agri_market"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// warn retrieves an environment variable, logging a startup warning and
// using the default when it is unset.
func warn(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Printf("warning: env var %s not set, using %q", key, def)
		return def
	}
	return v
}
