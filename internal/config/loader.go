package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "ELO_"
	EnvConfig = EnvPrefix + "CONFIG"
)

var validate = newValidator()

// newValidator reports fields by their koanf key rather than the Go name.
// The "finite" tag rejects NaN and infinite floats.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(fmt.Sprintf("register finite validator: %v", err))
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
		return false
	}
	x := f.Float()
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ELO_CONFIG is set
//  3. env (prefix ELO_)
//
// Load does not validate: command-line flags are applied on top by the
// caller, which then calls Validate on the final layer.
func Load(ctx context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ELO_K_FACTOR -> k_factor. Underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	return &cfg, nil
}

// Validate checks field constraints and reports the first failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
