// Package config handles the .latepack directory and project configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joshharrison/latepack/internal/task"
)

// LatepackDir is the directory created in each project that uses latepack.
const LatepackDir = ".latepack"

const configFile = "config.yaml"

const defaultConfigYAML = `# latepack project configuration
version: 1

# Priority weight: effective deadline = deadline - alpha * priority.
# 0 orders purely by deadline; larger values let priority pull tasks earlier.
alpha: 1.0

# Alphas compared by "latepack sweep".
sweep_alphas: [0, 1, 5]

# Default task file for plan/order/sweep when --tasks is not given.
tasks: tasks.json

# Statuses eligible for scheduling. Unset keeps the built-in set
# (todo, in_progress, paused).
# statuses: [todo, in_progress]
`

// Config models .latepack/config.yaml.
type Config struct {
	Version     int       `yaml:"version"`
	Alpha       float64   `yaml:"alpha"`
	SweepAlphas []float64 `yaml:"sweep_alphas"`
	Tasks       string    `yaml:"tasks"`
	Statuses    []string  `yaml:"statuses"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:     1,
		Alpha:       1.0,
		SweepAlphas: []float64{0, 1, 5},
		Tasks:       "tasks.json",
	}
}

// Load reads .latepack/config.yaml under projectDir. A missing file is not an
// error: the defaults apply until the user runs "latepack init".
func Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, LatepackDir, configFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Alpha < 0 {
		return nil, fmt.Errorf("config: alpha must be non-negative, got %v", cfg.Alpha)
	}
	for i, s := range cfg.Statuses {
		st, err := task.ParseStatus(s)
		if err != nil {
			return nil, fmt.Errorf("config: statuses: %w", err)
		}
		cfg.Statuses[i] = string(st)
	}
	return cfg, nil
}

// StatusSet returns the configured status override as canonical Status
// values, or nil when the config leaves the built-in set in place.
func (c *Config) StatusSet() []task.Status {
	if len(c.Statuses) == 0 {
		return nil
	}
	out := make([]task.Status, len(c.Statuses))
	for i, s := range c.Statuses {
		out[i] = task.Status(s)
	}
	return out
}

// EnsureDefault writes the commented default config if none exists yet and
// returns its path. An existing config is left untouched.
func EnsureDefault(projectDir string) (string, error) {
	dir := filepath.Join(projectDir, LatepackDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: ensure %s: %w", dir, err)
	}

	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return "", fmt.Errorf("config: write default config: %w", err)
	}
	return path, nil
}
