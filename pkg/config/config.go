package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Extraction    ExtractionConfig
	Search        SearchConfig
	Validation    ValidationConfig
	Observability ObservabilityConfig
}

type ExtractionConfig struct {
	// EarningsValueCutoff is the rupee value above which an otherwise
	// unclassifiable occurrence is presumed to be an earning.
	EarningsValueCutoff float64
	// FuzzyThreshold is the minimum 0-100 similarity score for rescuing
	// an OCR-garbled code symbol.
	FuzzyThreshold int
	// ContextWindowChars bounds the text inspected around a match when
	// scanning for section keywords.
	ContextWindowChars int
}

type SearchConfig struct {
	Workers  int
	Strategy string
}

type ValidationConfig struct {
	ContentWeight      float64
	CompletenessWeight float64
	ErrorRateWeight    float64
	PerformanceWeight  float64
	FormatWeight       float64
	MinScore           float64
	MinTextLength      int
	ArtifactCeiling    float64
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
	LogLevel       string
}

// Load reads configuration from the environment, merging in a .env file
// when one is present in the working directory.
func Load() (*Config, error) {
	// Missing .env is not an error; real environments set variables
	// directly.
	_ = godotenv.Load()

	cfg := &Config{
		Extraction: ExtractionConfig{
			EarningsValueCutoff: getEnvAsFloat("EXTRACT_EARNINGS_VALUE_CUTOFF", 15000),
			FuzzyThreshold:      getEnvAsInt("EXTRACT_FUZZY_THRESHOLD", 70),
			ContextWindowChars:  getEnvAsInt("EXTRACT_CONTEXT_WINDOW", 200),
		},
		Search: SearchConfig{
			Workers:  getEnvAsInt("SEARCH_WORKERS", 0),
			Strategy: getEnv("SEARCH_STRATEGY", "adaptive"),
		},
		Validation: ValidationConfig{
			ContentWeight:      getEnvAsFloat("VALIDATE_CONTENT_WEIGHT", 30),
			CompletenessWeight: getEnvAsFloat("VALIDATE_COMPLETENESS_WEIGHT", 20),
			ErrorRateWeight:    getEnvAsFloat("VALIDATE_ERROR_RATE_WEIGHT", 10),
			PerformanceWeight:  getEnvAsFloat("VALIDATE_PERFORMANCE_WEIGHT", 20),
			FormatWeight:       getEnvAsFloat("VALIDATE_FORMAT_WEIGHT", 20),
			MinScore:           getEnvAsFloat("VALIDATE_MIN_SCORE", 50),
			MinTextLength:      getEnvAsInt("VALIDATE_MIN_TEXT_LENGTH", 50),
			ArtifactCeiling:    getEnvAsFloat("VALIDATE_ARTIFACT_CEILING", 0.4),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Extraction.FuzzyThreshold < 0 || cfg.Extraction.FuzzyThreshold > 100 {
		return nil, fmt.Errorf("EXTRACT_FUZZY_THRESHOLD out of range: %d", cfg.Extraction.FuzzyThreshold)
	}
	if cfg.Validation.ArtifactCeiling <= 0 || cfg.Validation.ArtifactCeiling > 1 {
		return nil, fmt.Errorf("VALIDATE_ARTIFACT_CEILING must be in (0,1]: %v", cfg.Validation.ArtifactCeiling)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
