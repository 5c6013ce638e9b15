package infrastructures

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	PORT                   string
	LOG_LEVEL              string
	DATABASE_URL           string
	REDIS_ADDRESS          string
	REDIS_PASSWORD         string
	CACHE_NAMESPACE        string
	COUPON_STORE_BASE_URL  string
	COUPON_STORE_TOKEN     string
	COUPON_STORE_TIMEOUT   time.Duration
	COUPON_STORE_MAX_PAGES int
	CURRENCY_SYMBOL        string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		PORT:                   getEnv("PORT", "8080"),
		LOG_LEVEL:              getEnv("LOG_LEVEL", "info"),
		DATABASE_URL:           os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:          getEnv("REDIS_ADDRESS", "localhost:6379"),
		REDIS_PASSWORD:         os.Getenv("REDIS_PASSWORD"),
		CACHE_NAMESPACE:        getEnv("CACHE_NAMESPACE", "jewelry-backoffice"),
		COUPON_STORE_BASE_URL:  getEnv("COUPON_STORE_BASE_URL", "http://localhost:8000/api"),
		COUPON_STORE_TOKEN:     os.Getenv("COUPON_STORE_TOKEN"),
		COUPON_STORE_TIMEOUT:   getEnvDuration("COUPON_STORE_TIMEOUT", 30*time.Second),
		COUPON_STORE_MAX_PAGES: getEnvInt("COUPON_STORE_MAX_PAGES", 50),
		CURRENCY_SYMBOL:        getEnv("CURRENCY_SYMBOL", "₹"),
	}

	return Config
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
