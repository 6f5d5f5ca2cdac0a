package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080
	DefaultRateLimitMax          = 100
	DefaultRateLimitWindowMin    = 15
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	RateLimitMax       int
	RateLimitWindowMin int
	CookieSecure       bool
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	EmailFrom          string
}

func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("JWT_ACCESS_SECRET"),
		RefreshTokenSecret: mustGetEnv("JWT_REFRESH_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		RateLimitMax:       getEnvAsInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		RateLimitWindowMin: getEnvAsInt("RATE_LIMIT_WINDOW", DefaultRateLimitWindowMin),
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", false),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@apnisec.io"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
