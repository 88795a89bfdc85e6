package config

import (
	"errors"
)

// Sentinel error kinds, matched with errors.Is.
var (
	// ErrInvalidConfig wraps a failed field constraint, naming its koanf key.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps YAML file, env, or decode failures while layering.
	ErrLoadConfig = errors.New("load config failed")
)
