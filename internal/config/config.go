// Package config loads fridgectl's configuration file.
//
// Configuration is JSON-with-comments (JSONC): hujson.Standardize strips
// comments/trailing commas before a plain encoding/json.Unmarshal.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds fridgectl's configuration.
type Config struct {
	// Buckets is the bucket count a new Store is created with.
	Buckets int `json:"buckets,omitempty"`

	// DefaultCap is the read capacity fridgectl's "get" and "wait" REPL
	// commands pass to Get.
	DefaultCap int `json:"default_cap,omitempty"` //nolint:tagliatelle // snake_case for config file

	// StatsPath is where "stats dump" writes its snapshot.
	StatsPath string `json:"stats_path,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// FileName is the default config file name, resolved relative to the
// working directory.
const FileName = ".fridgectl.json"

// Default returns fridgectl's built-in defaults.
func Default() Config {
	return Config{
		Buckets:    17,
		DefaultCap: 4096,
		StatsPath:  "fridge-stats.yaml",
	}
}

// Load reads configuration with the following precedence (highest wins):
//  1. Default()
//  2. Global config ($XDG_CONFIG_HOME/fridgectl/config.json, or
//     ~/.config/fridgectl/config.json)
//  3. explicitPath, if non-empty (must exist); otherwise the project
//     config file at workDir/.fridgectl.json, if present. The project
//     file is not read when explicitPath is given.
func Load(workDir, explicitPath string, env []string) (Config, error) {
	cfg := Default()

	global, err := loadOptional(globalPath(env))
	if err != nil {
		return Config{}, err
	}

	cfg = merge(cfg, global)

	var projectPath string
	if explicitPath != "" {
		projectPath = explicitPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		if _, statErr := os.Stat(projectPath); statErr != nil {
			return Config{}, fmt.Errorf("config file not found: %s", explicitPath)
		}
	} else {
		projectPath = filepath.Join(workDir, FileName)
	}

	project, err := loadOptional(projectPath)
	if err != nil {
		return Config{}, err
	}

	cfg = merge(cfg, project)

	if cfg.Buckets <= 0 {
		return Config{}, fmt.Errorf("buckets must be positive, got %d", cfg.Buckets)
	}

	return cfg, nil
}

func globalPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "fridgectl", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fridgectl", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "fridgectl", "config.json")
}

// loadOptional returns the zero Config when path is empty or doesn't
// exist; any other read/parse error is returned.
func loadOptional(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally configurable
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Buckets != 0 {
		base.Buckets = overlay.Buckets
	}

	if overlay.DefaultCap != 0 {
		base.DefaultCap = overlay.DefaultCap
	}

	if overlay.StatsPath != "" {
		base.StatsPath = overlay.StatsPath
	}

	return base
}
