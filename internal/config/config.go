// Package config provides configuration types and defaults for gig.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/render"
)

// AssociationConfig is one user-supplied association table entry.
type AssociationConfig struct {
	Templates []string `mapstructure:"templates"`
	Terms     []string `mapstructure:"terms"`
}

// CacheConfig controls the template content cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // 0 disables caching
}

// Config holds all configuration options for gig.
type Config struct {
	AssetsDir    string              `mapstructure:"assets_dir"` // corpus directory; empty uses the built-in corpus
	Output       string              `mapstructure:"output"`     // target file or directory; empty resolves the repo root
	Mode         string              `mapstructure:"mode"`       // "overwrite" (default) or "append"
	Headers      bool                `mapstructure:"headers"`    // wrap sections in "### Name ###" lines
	Debug        bool                `mapstructure:"debug"`
	LogFile      string              `mapstructure:"log_file"` // "-" logs to stderr
	Cache        CacheConfig         `mapstructure:"cache"`
	Associations []AssociationConfig `mapstructure:"associations"`
}

// Config validation errors
var (
	ErrAssetsDirNotDir  = errors.New("assets_dir is not a directory")
	ErrEmptyAssociation = errors.New("association needs at least one template and one term")
	ErrNegativeCacheTTL = errors.New("cache.ttl cannot be negative")
)

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Mode:    string(render.ModeOverwrite),
		Headers: true,
		LogFile: "debug.log",
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func Validate(cfg Config) error {
	if _, err := render.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}

	if cfg.AssetsDir != "" {
		info, err := os.Stat(cfg.AssetsDir)
		if err != nil {
			return fmt.Errorf("assets_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrAssetsDirNotDir, cfg.AssetsDir)
		}
	}

	if cfg.Cache.TTL < 0 {
		return ErrNegativeCacheTTL
	}

	for i, a := range cfg.Associations {
		if len(a.Templates) == 0 || len(a.Terms) == 0 {
			return fmt.Errorf("associations[%d]: %w", i, ErrEmptyAssociation)
		}
	}

	return nil
}

// DefaultConfigPath returns ~/.config/gig/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gig", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# gig configuration

# Directory holding a gitignore/ corpus (gitignore/, gitignore/community/,
# gitignore/Global/). Leave unset to use the built-in templates.
# assets_dir: ~/.config/gig/corpus

# Where to write. A directory gets a .gitignore inside it. Leave unset to
# write to the root of the current git repository.
# output: .

# "overwrite" replaces the target file, "append" adds only the templates
# that are not already in it.
mode: overwrite

# Wrap every template in "### Name ###" marker lines. Append mode relies on
# these markers to skip templates that are already present.
headers: true

# Template bodies are cached for this long within one run. 0 disables.
cache:
  ttl: 10m

# Extra terms for templates, on top of the built-in associations.
# associations:
#   - templates: [Go]
#     terms: [golang, gomod]
#   - templates: [Node, Yeoman]
#     terms: [pnpm]
`
}

// WriteDefaultConfig writes the default config template to configPath.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
