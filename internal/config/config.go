// Package config holds the run configuration: kernel directory, output
// document, and the animation window. Values come from defaults, an optional
// YAML file, and CLI flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults: the day before through the day after closest approach
// (1989-08-25 03:56 UTC), one frame per hour.
const (
	DefaultDataDir = "kernels"
	DefaultOutput  = "voyager2_neptune.html"
	DefaultTitle   = "Voyager 2 approach to Neptune"
	DefaultStart   = "1989-08-24T00:00:00Z"
	DefaultEnd     = "1989-08-27T00:00:00Z"
	DefaultStep    = "1h"
)

type Config struct {
	DataDir string       `yaml:"data_dir"`
	Output  string       `yaml:"output"`
	Title   string       `yaml:"title"`
	Window  WindowConfig `yaml:"window"`
}

// WindowConfig is the animation window as written in YAML: RFC 3339 instants
// and a Go duration string.
type WindowConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Step  string `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Output:  DefaultOutput,
		Title:   DefaultTitle,
		Window: WindowConfig{
			Start: DefaultStart,
			End:   DefaultEnd,
			Step:  DefaultStep,
		},
	}
}

// Load reads a YAML config over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Timespan parses the window into concrete instants and a step.
func (c *Config) Timespan() (start, end time.Time, step time.Duration, err error) {
	start, err = time.Parse(time.RFC3339, c.Window.Start)
	if err != nil {
		return start, end, step, fmt.Errorf("window start: %w", err)
	}
	end, err = time.Parse(time.RFC3339, c.Window.End)
	if err != nil {
		return start, end, step, fmt.Errorf("window end: %w", err)
	}
	step, err = time.ParseDuration(c.Window.Step)
	if err != nil {
		return start, end, step, fmt.Errorf("window step: %w", err)
	}
	return start, end, step, nil
}
