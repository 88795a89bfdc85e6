// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and ELO_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

// Default configuration values.
const (
	DefaultInput         = "votes.csv"
	DefaultKFactor       = 32.0
	DefaultInitialRating = 1500.0
	DefaultFormat        = "text"
	DefaultLogLevel      = "info"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Input is the path of the pairwise comparison CSV.
	Input string `koanf:"input" validate:"required"`

	// KFactor is the maximum rating swing per match.
	KFactor float64 `koanf:"k_factor" validate:"finite,gt=0"`

	// InitialRating is assigned to every participant on first sight.
	InitialRating float64 `koanf:"initial_rating" validate:"finite"`

	// Top limits the printed standings; 0 prints everyone.
	Top int `koanf:"top" validate:"gte=0"`

	// Format selects the report encoding: text or json.
	Format string `koanf:"format" validate:"oneof=text json"`

	// MetricsFile, when set, receives a Prometheus text dump after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		Input:         DefaultInput,
		KFactor:       DefaultKFactor,
		InitialRating: DefaultInitialRating,
		Top:           0,
		Format:        DefaultFormat,
	}
}
