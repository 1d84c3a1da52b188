package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// External collaborators
	AssessmentAPIURL string
	TranslateAPIURL  string

	// Fallback tier thresholds used when the assessment service does not
	// return a recommended tier.
	AssessmentProMin     float64
	AssessmentPremiumMin float64
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "habitat"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		AssessmentAPIURL: getEnv("ASSESSMENT_API_URL", "http://localhost:9000"),
		TranslateAPIURL:  getEnv("TRANSLATE_API_URL", "http://localhost:9001"),

		AssessmentProMin:     getEnvFloat("ASSESSMENT_PRO_MIN", 50),
		AssessmentPremiumMin: getEnvFloat("ASSESSMENT_PREMIUM_MIN", 80),
	}

	// The fallback tier table must stay strictly ascending above the
	// implicit 0 floor, or classification would fail on every request
	if cfg.AssessmentProMin <= 0 || cfg.AssessmentPremiumMin <= cfg.AssessmentProMin {
		return nil, fmt.Errorf("invalid assessment tier thresholds: pro=%v premium=%v",
			cfg.AssessmentProMin, cfg.AssessmentPremiumMin)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
