package initializers

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogPretty bool

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Revalidate is how long product listings stay cached.
	Revalidate time.Duration

	CorsOrigin string
	PublicURL  string

	AuthURL       string
	SessionCookie string
	JWTSecret     string

	ImageHost string
	S3Bucket  string

	CommentRateLimit int64
}

// LoadEnv reads .env into the process environment. A missing file is fine,
// the variables may come from the real environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
}

func LoadConfig() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", false),

		DBDriver: getEnv("DB_DRIVER", "mysql"),
		DBDSN:    os.Getenv("DB_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		Revalidate:    time.Duration(getEnvInt("REVALIDATE", 60)) * time.Second,

		CorsOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		PublicURL:  getEnv("PUBLIC_URL", "http://localhost:3000"),

		AuthURL:       os.Getenv("AUTH_URL"),
		SessionCookie: getEnv("SESSION_COOKIE", "appSession"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		ImageHost: getEnv("IMAGE_HOST", "callback"),
		S3Bucket:  os.Getenv("S3_BUCKET"),

		CommentRateLimit: int64(getEnvInt("COMMENT_RATE_LIMIT", 10)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer, using default")
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
