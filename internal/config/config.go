// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir             string // Base directory for the draw database and snapshots (always absolute)
	LogLevel            string
	Port                int
	DevMode             bool
	Game                domain.GameConfig
	Optimizer           OptimizerConfig
	DefaultStrategy     domain.Strategy
	Predictor           PredictorConfig
	EnsembleWeightsFile string   // Optional YAML file overriding per-strategy ensemble weights
	RetrainSchedule     string   // Cron expression (with seconds); empty disables scheduled retraining
	StreamOrigins       []string // Host patterns allowed to open the optimizer stream cross-origin
	Archive             ArchiveConfig
}

// OptimizerConfig holds the evolutionary optimizer parameters
type OptimizerConfig struct {
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	MutationProb   float64
	EliteCount     int
	Workers        int
	Seed           uint64 // 0 = random seed per run
}

// PredictorConfig holds the remote probability predictor settings
type PredictorConfig struct {
	URL     string // Empty disables the remote predictor
	Timeout time.Duration
	Window  int // Number of recent draws sent with each request
}

// ArchiveConfig holds the S3-compatible snapshot archive settings
type ArchiveConfig struct {
	Bucket          string // Empty disables archiving
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// Enabled reports whether snapshots should be archived
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("EUROGENIUS_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvAsInt("PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		Game: domain.GameConfig{
			PrimaryRange:   getEnvAsInt("PRIMARY_RANGE", 50),
			PrimaryCount:   getEnvAsInt("PRIMARY_COUNT", 5),
			SecondaryRange: getEnvAsInt("SECONDARY_RANGE", 12),
			SecondaryCount: getEnvAsInt("SECONDARY_COUNT", 2),
		},
		Optimizer: OptimizerConfig{
			PopulationSize: getEnvAsInt("POPULATION_SIZE", 100),
			Generations:    getEnvAsInt("GENERATIONS", 50),
			CrossoverProb:  getEnvAsFloat("CROSSOVER_PROB", 0.7),
			MutationProb:   getEnvAsFloat("MUTATION_PROB", 0.2),
			EliteCount:     getEnvAsInt("ELITE_COUNT", 0),
			Workers:        getEnvAsInt("EVAL_WORKERS", 1),
			Seed:           getEnvAsUint64("RANDOM_SEED", 0),
		},
		DefaultStrategy: domain.Strategy(getEnv("DEFAULT_STRATEGY", string(domain.StrategyBalanced))),
		Predictor: PredictorConfig{
			URL:     getEnv("PREDICTOR_URL", ""),
			Timeout: time.Duration(getEnvAsInt("PREDICTOR_TIMEOUT_SECONDS", 10)) * time.Second,
			Window:  getEnvAsInt("PREDICTOR_WINDOW", 10),
		},
		EnsembleWeightsFile: getEnv("ENSEMBLE_WEIGHTS_FILE", ""),
		RetrainSchedule:     getEnv("RETRAIN_SCHEDULE", "0 0 3 * * *"),
		StreamOrigins:       getEnvAsList("STREAM_ORIGINS"),
		Archive: ArchiveConfig{
			Bucket:          getEnv("SNAPSHOT_BUCKET", ""),
			Endpoint:        getEnv("SNAPSHOT_ENDPOINT", ""),
			AccessKeyID:     getEnv("SNAPSHOT_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("SNAPSHOT_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("SNAPSHOT_REGION", "auto"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges of every numeric setting and the default strategy
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}

	o := c.Optimizer
	if o.PopulationSize <= 0 {
		return fmt.Errorf("%w: POPULATION_SIZE must be positive, got %d", domain.ErrInvalidConfig, o.PopulationSize)
	}
	if o.Generations < 0 {
		return fmt.Errorf("%w: GENERATIONS must not be negative, got %d", domain.ErrInvalidConfig, o.Generations)
	}
	if o.CrossoverProb < 0 || o.CrossoverProb > 1 {
		return fmt.Errorf("%w: CROSSOVER_PROB must be in [0,1], got %v", domain.ErrInvalidConfig, o.CrossoverProb)
	}
	if o.MutationProb < 0 || o.MutationProb > 1 {
		return fmt.Errorf("%w: MUTATION_PROB must be in [0,1], got %v", domain.ErrInvalidConfig, o.MutationProb)
	}
	if o.EliteCount < 0 || o.EliteCount > o.PopulationSize {
		return fmt.Errorf("%w: ELITE_COUNT must be in [0,%d], got %d", domain.ErrInvalidConfig, o.PopulationSize, o.EliteCount)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("%w: EVAL_WORKERS must be positive, got %d", domain.ErrInvalidConfig, o.Workers)
	}

	if _, err := domain.ParseStrategy(string(c.DefaultStrategy)); err != nil {
		return fmt.Errorf("DEFAULT_STRATEGY: %w", err)
	}

	if c.Predictor.Window <= 0 {
		return fmt.Errorf("%w: PREDICTOR_WINDOW must be positive, got %d", domain.ErrInvalidConfig, c.Predictor.Window)
	}

	return nil
}

// DatabasePath returns the path of the draw database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "draws.db")
}

// SnapshotPath returns the path of the optimizer snapshot file
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "optimizer.msgpack")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping empty items
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
