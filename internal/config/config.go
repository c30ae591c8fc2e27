// Package config loads run settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/2767mr/polycubes/internal/polycube"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config describes one enumeration run.
type Config struct {
	// Cubes is the polycube size to count. Zero means it must come from the command line.
	Cubes int `toml:"cubes"`

	Workers int `toml:"workers"`

	// Cutoff is the shape size at which work is handed to the workers.
	Cutoff int `toml:"cutoff"`

	LogLevel string `toml:"log_level"`
	Format   string `toml:"format"`
}

func Default() Config {
	return Config{
		Workers:  1,
		Cutoff:   polycube.DefaultCutoff,
		LogLevel: "NOOP",
		Format:   FormatText,
	}
}

// Load reads path over the defaults. Keys the file does not set keep their default
// value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings a run needs. Cubes is only checked for sign, since the
// command line may still supply it.
func (c Config) Validate() error {
	var problems []string
	if c.Cubes < 0 {
		problems = append(problems, fmt.Sprintf("cubes must not be negative, got %d", c.Cubes))
	}
	if c.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Cutoff < 2 {
		problems = append(problems, fmt.Sprintf("cutoff must be at least 2, got %d", c.Cutoff))
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		problems = append(problems, fmt.Sprintf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}
