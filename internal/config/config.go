package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"genodiff/internal/errors"
)

// Config represents the complete toolkit configuration
type Config struct {
	Engine EngineConfig
	Data   DataConfig
}

// EngineConfig holds resampling engine defaults
type EngineConfig struct {
	NumTrials       int     // default trial count per run
	ConfidenceLevel float64 // percentile interval level
	Workers         int     // trial worker pool size; 1 = sequential
	StrictResample  bool    // degenerate bootstrap trial aborts the run
}

// DataConfig holds input file paths
type DataConfig struct {
	GenotypeFile string // tabular genotype file (.csv or .xlsx)
	StrataFile   string // comma-delimited sample -> strata mapping
	FastaFile    string // multi-FASTA alignment
}

// Load reads configuration from the environment (a .env file is honored when
// present) and validates it.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	config := &Config{
		Engine: EngineConfig{
			NumTrials:       getEnvIntOrDefault("GENODIFF_NREPS", 999),
			ConfidenceLevel: getEnvFloatOrDefault("GENODIFF_CONFIDENCE", 0.95),
			Workers:         getEnvIntOrDefault("GENODIFF_WORKERS", 1),
			StrictResample:  getEnvBoolOrDefault("GENODIFF_STRICT_RESAMPLE", false),
		},
		Data: DataConfig{
			GenotypeFile: getEnvOrDefault("GENODIFF_GENOTYPE_FILE", ""),
			StrataFile:   getEnvOrDefault("GENODIFF_STRATA_FILE", ""),
			FastaFile:    getEnvOrDefault("GENODIFF_FASTA_FILE", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Engine.NumTrials < 1 {
		return errors.ConfigInvalid("GENODIFF_NREPS must be >= 1")
	}
	if config.Engine.ConfidenceLevel <= 0 || config.Engine.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("GENODIFF_CONFIDENCE must be in (0, 1)")
	}
	if config.Engine.Workers < 1 {
		return errors.ConfigInvalid("GENODIFF_WORKERS must be >= 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
