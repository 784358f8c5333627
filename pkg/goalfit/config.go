package goalfit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// GoalfitConfig contains all configurable parameters that influence estimation
// This centralizes all magic numbers and constants for easy adjustment
type GoalfitConfig struct {
	// === ESTIMATION PARAMETERS ===

	MaxIterations int     `yaml:"maxIterations"` // Maximum coordinate-ascent iterations (default: 500)
	Tolerance     float64 `yaml:"tolerance"`     // Convergence tolerance on the log-likelihood (default: 1e-9)

	// Floor applied to every rate parameter after its closed-form update.
	// A team that never scores would otherwise get a zero attack rate and a
	// degenerate likelihood (default: 1e-6)
	RateFloor float64 `yaml:"rateFloor"`

	// === SCORELINE MATRIX ===

	GoalRange int `yaml:"goalRange"` // Maximum goals to consider 0-N in scoreline matrices (default: 9)

	// === PERSISTENCE ===

	DbPath string `yaml:"dbPath"` // Location of the goalfit sqlite database
}

// DefaultGoalfitConfig returns the default configuration with all standard values
func DefaultGoalfitConfig() *GoalfitConfig {
	return &GoalfitConfig{
		MaxIterations: 500,
		Tolerance:     1e-9,
		RateFloor:     1e-6,
		GoalRange:     9,
		DbPath:        "/tmp/goalfit.db",
	}
}

// Global configuration instance
var Config *GoalfitConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultGoalfitConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *GoalfitConfig) {
	Config = newConfig
}

// LoadConfig reads a configuration file in YAML format and returns the
// resulting configuration, with defaults for any omitted field
func LoadConfig(path string) (*GoalfitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultGoalfitConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *GoalfitConfig) error {
	if config.MaxIterations < 1 {
		return fmt.Errorf("MaxIterations must be at least 1, got: %d", config.MaxIterations)
	}

	if config.Tolerance <= 0.0 {
		return fmt.Errorf("Tolerance must be positive, got: %g", config.Tolerance)
	}

	if config.RateFloor <= 0.0 || config.RateFloor >= 1.0 {
		return fmt.Errorf("RateFloor should be between 0.0 and 1.0 exclusive, got: %g", config.RateFloor)
	}

	if config.GoalRange < 3 {
		return fmt.Errorf("GoalRange should be at least 3 to capture realistic scores, got: %d", config.GoalRange)
	}

	return nil
}
