package config

import (
	"os"
	"strconv"

	"clvplot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Charts   ChartsConfig
	Data     DataConfig
	Model    ModelConfig
}

// DatabaseConfig holds database connection settings. An empty URL disables
// the PostgreSQL data sources.
type DatabaseConfig struct {
	URL string
}

// ChartsConfig holds chart output settings
type ChartsConfig struct {
	OutputDir string
	Theme     string
}

// DataConfig holds file-based data source settings
type DataConfig struct {
	CalibrationFile string // .xlsx or .csv calibration/holdout split
	CustomerID      string // customer whose history feeds the alive-path trace
}

// ModelConfig holds the externally estimated BG/NBD parameters and the
// diagnostic defaults built from them.
type ModelConfig struct {
	R     float64
	Alpha float64
	A     float64
	B     float64

	Horizon       float64 // prediction window for the frequency/recency matrix
	MaxFrequency  int     // negative derives the bound from training data
	MaxRecency    int     // negative derives the bound from training data
	HistogramBins int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Charts: ChartsConfig{
			OutputDir: getEnv("CHART_OUTPUT_DIR", "charts"),
			Theme:     getEnv("CHART_THEME", "light"),
		},
		Data: DataConfig{
			CalibrationFile: os.Getenv("CALIBRATION_FILE"),
			CustomerID:      os.Getenv("HISTORY_CUSTOMER_ID"),
		},
	}

	model, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	cfg.Model = *model

	return cfg, nil
}

// loadModelConfig defaults to the customary CDNOW parameter estimates so the
// demo runs without any environment at all.
func loadModelConfig() (*ModelConfig, error) {
	cfg := &ModelConfig{}
	var err error

	if cfg.R, err = getEnvFloat("BGNBD_R", 0.243); err != nil {
		return nil, err
	}
	if cfg.Alpha, err = getEnvFloat("BGNBD_ALPHA", 4.414); err != nil {
		return nil, err
	}
	if cfg.A, err = getEnvFloat("BGNBD_A", 0.793); err != nil {
		return nil, err
	}
	if cfg.B, err = getEnvFloat("BGNBD_B", 2.426); err != nil {
		return nil, err
	}
	if cfg.Horizon, err = getEnvFloat("PREDICTION_HORIZON", 1); err != nil {
		return nil, err
	}
	if cfg.Horizon <= 0 {
		return nil, errors.ConfigInvalidf("PREDICTION_HORIZON must be positive, got %g", cfg.Horizon)
	}
	if cfg.MaxFrequency, err = getEnvInt("GRID_MAX_FREQUENCY", -1); err != nil {
		return nil, err
	}
	if cfg.MaxRecency, err = getEnvInt("GRID_MAX_RECENCY", -1); err != nil {
		return nil, err
	}
	// 9 bin edges make 8 bins, frequencies 0 through 7.
	if cfg.HistogramBins, err = getEnvInt("HISTOGRAM_BINS", 8); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigInvalidf("%s must be numeric, got %q", key, v)
	}
	return parsed, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalidf("%s must be an integer, got %q", key, v)
	}
	return parsed, nil
}
