package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins []string

	// AWS
	AWSRegion    string
	S3BucketName string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Startup
	SeedDemoProfiles bool
}

// Load reads configuration from the environment, picking up a local .env
// file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		S3BucketName:     getEnv("S3_BUCKET_NAME", ""),
		JWTSecret:        secret,
		TokenTTL:         parseDuration(getEnv("TOKEN_TTL", "24h")),
		SeedDemoProfiles: getEnv("SEED_DEMO_PROFILES", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
