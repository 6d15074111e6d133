package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Profile   ProfileConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// AuthConfig is parsed and validated by service.NewAuthService.
// JWTSecret has no default: an empty value aborts startup.
type AuthConfig struct {
	JWTSecret      string
	JWTTTL         string
	CookieSecure   string
	CookieSameSite string
	CookieDomain   string
	CookiePath     string
	BcryptCost     int
	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ProfileConfig struct {
	PublicBaseURL string
}

type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

func Load() Config {
	env := getenv("APP_ENV", "development")

	cookieSecure := os.Getenv("AUTH_COOKIE_SECURE")
	if cookieSecure == "" {
		cookieSecure = strconv.FormatBool(env == "production")
	}

	return Config{
		Server: ServerConfig{
			Addr:            getenv("HTTP_ADDR", ":3000"),
			Env:             env,
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTTTL:         getenv("JWT_TTL", "100h"),
			CookieSecure:   cookieSecure,
			CookieSameSite: getenv("AUTH_COOKIE_SAMESITE", "lax"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookiePath:     getenv("AUTH_COOKIE_PATH", "/"),
			BcryptCost:     getInt("BCRYPT_COST", 0),
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminEmail:     os.Getenv("ADMIN_EMAIL"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Profile: ProfileConfig{
			PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: getFloat("LOGIN_RATE_PER_SECOND", 1),
			LoginBurst:     getInt("LOGIN_RATE_BURST", 5),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getFloat(key string, fallback float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
