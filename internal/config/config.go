package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime configuration sourced from the environment.
type Config struct {
	Port        string
	JWTSecret   string
	TokenExpiry time.Duration

	// StoreBackend selects the persistence layer: memory, file or mongo.
	StoreBackend string
	DataDir      string
	MongoURI     string
	MongoDB      string

	// SessionBackend selects where session records live: store or redis.
	SessionBackend string
	RedisURI       string

	// Notifier selects the notification transport: log or smtp.
	Notifier string

	AllowedOrigins []string
}

// LoadConfig reads the .env file (when present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenExpiry:    tokenExpiry(),
		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "ifto_esports"),
		SessionBackend: getEnv("SESSION_BACKEND", "store"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379"),
		Notifier:       getEnv("NOTIFIER", "log"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}
}

func tokenExpiry() time.Duration {
	minutes, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_MINUTES", "1440"))
	if err != nil || minutes <= 0 {
		minutes = 1440
	}
	return time.Duration(minutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
