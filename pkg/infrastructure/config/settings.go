// Package config loads run settings from an optional YAML file, with
// environment variables taking precedence over the file and a .env file
// feeding the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds the tunable constants of a sourcing run. Each field can be
// set in the settings file and overridden by the CARTSOURCE_* environment
// variable named in its tag comment.
type Settings struct {
	// DeliveryCost is the flat per-seller fee in minor currency units.
	// Override: CARTSOURCE_DELIVERY_COST.
	DeliveryCost int64 `yaml:"delivery_cost"`

	// MaxSellers caps distinct sellers when positive, 0 disables.
	// Override: CARTSOURCE_MAX_SELLERS.
	MaxSellers int `yaml:"max_sellers"`

	// TimeLimit bounds each solve attempt, in time.ParseDuration syntax.
	// Override: CARTSOURCE_TIME_LIMIT.
	TimeLimit string `yaml:"time_limit"`

	// Tolerance is the integrality tolerance used when decoding.
	// Override: CARTSOURCE_TOLERANCE.
	Tolerance float64 `yaml:"tolerance"`

	// ReducedOffers is how many offers per item the fallback model keeps.
	// Override: CARTSOURCE_REDUCED_OFFERS.
	ReducedOffers int `yaml:"reduced_offers_per_item"`

	// OutputFormat is the default report format: text, json or csv.
	// Override: CARTSOURCE_OUTPUT_FORMAT.
	OutputFormat string `yaml:"output_format"`
}

// DefaultSettings returns the standard run settings.
func DefaultSettings() *Settings {
	return &Settings{
		DeliveryCost:  132,
		MaxSellers:    0,
		TimeLimit:     "30s",
		Tolerance:     1e-6,
		ReducedOffers: 3,
		OutputFormat:  "text",
	}
}

// LoadEnv loads a .env file into the environment when one exists. A missing
// file is fine; variables can be set by other means.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadSettings reads path, falls back to defaults if the file does not
// exist, and applies environment overrides on top. An empty path skips the
// file entirely.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment are enough to run.
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("unmarshal %s: %w", path, err)
			}
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if _, err := s.TimeLimitDuration(); err != nil {
		return nil, err
	}
	return s, nil
}

// TimeLimitDuration parses the configured time limit. An empty value means
// no limit.
func (s *Settings) TimeLimitDuration() (time.Duration, error) {
	if s.TimeLimit == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TimeLimit)
	if err != nil {
		return 0, fmt.Errorf("invalid time limit %q: %w", s.TimeLimit, err)
	}
	return d, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("CARTSOURCE_DELIVERY_COST"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CARTSOURCE_DELIVERY_COST %q: %w", v, err)
		}
		s.DeliveryCost = n
	}
	if v := os.Getenv("CARTSOURCE_MAX_SELLERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CARTSOURCE_MAX_SELLERS %q: %w", v, err)
		}
		s.MaxSellers = n
	}
	if v := os.Getenv("CARTSOURCE_TIME_LIMIT"); v != "" {
		s.TimeLimit = v
	}
	if v := os.Getenv("CARTSOURCE_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CARTSOURCE_TOLERANCE %q: %w", v, err)
		}
		s.Tolerance = f
	}
	if v := os.Getenv("CARTSOURCE_REDUCED_OFFERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CARTSOURCE_REDUCED_OFFERS %q: %w", v, err)
		}
		s.ReducedOffers = n
	}
	if v := os.Getenv("CARTSOURCE_OUTPUT_FORMAT"); v != "" {
		s.OutputFormat = v
	}
	return nil
}
