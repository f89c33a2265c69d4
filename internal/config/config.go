package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	PathaoBaseURL      string
	PathaoClientID     string
	PathaoClientSecret string
	PathaoUsername     string
	PathaoPassword     string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGODB_URL", ""),
		DBName:         getEnvOrDefault("DB_NAME", "tweestbd"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		CORSOrigins:    getListEnv("CORS_ORIGINS", "*"),

		PathaoBaseURL:      getEnvOrDefault("PATHAO_BASE_URL", "https://api-hermes.pathao.com"),
		PathaoClientID:     getEnvOrDefault("PATHAO_CLIENT_ID", ""),
		PathaoClientSecret: getEnvOrDefault("PATHAO_CLIENT_SECRET", ""),
		PathaoUsername:     getEnvOrDefault("PATHAO_USERNAME", ""),
		PathaoPassword:     getEnvOrDefault("PATHAO_PASSWORD", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
