// Package config handles loading and validation of the close handler configuration.
//
// Configuration comes from two places: an optional YAML file holding one
// [Handler] block per item type, and environment variables read by
// [ParseEntityConfig] that overlay the filters of a single entity kind.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errConfigNotFound = errors.New("config file not found")
	errNegativeMax    = errors.New("max must not be negative")
	errUnknownBlock   = errors.New("unknown configuration block")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errConfigNotFound
	// ErrNegativeMax is returned when a handler block sets a negative max.
	ErrNegativeMax = errNegativeMax
)

// Config is the complete configuration file, one block per item type.
type Config struct {
	CloseIssue       *Handler `yaml:"close_issue"`
	ClosePullRequest *Handler `yaml:"close_pull_request"`
	CloseDiscussion  *Handler `yaml:"close_discussion"`
}

// Handler configures one close handler.
type Handler struct {
	// Max is the maximum number of entities closed per run. Zero means unlimited.
	Max int `yaml:"max"`
	// Comment is posted on the entity before it is closed when not empty.
	Comment string `yaml:"comment"`
	// RequiredLabels restricts closing to entities carrying at least one of them.
	RequiredLabels []string `yaml:"required_labels"`
	// RequiredTitlePrefix restricts closing to titles starting with it.
	RequiredTitlePrefix string `yaml:"required_title_prefix"`
	// Target selects the entity number: "*", "triggering" or an explicit number.
	Target string `yaml:"target"`
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "auto-close", "config.yml"), nil
}

// Load reads and parses the configuration file at path.
// With an empty path the default location is used, and a missing default
// file yields an empty configuration rather than an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	// #nosec G304 - the config path is chosen by the user running the tool
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
	}

	return Parse(data)
}

// Parse decodes and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, h := range config.handlers() {
		if h != nil {
			h.normalize()
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks every handler block.
func (c *Config) Validate() error {
	for name, h := range c.handlers() {
		if h == nil {
			continue
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// For returns a copy of the handler block for itemType, or the zero
// Handler when the block is absent.
func (c *Config) For(itemType string) (Handler, error) {
	handlers := c.handlers()
	h, ok := handlers[itemType]
	if !ok {
		return Handler{}, fmt.Errorf("%w: %s", errUnknownBlock, itemType)
	}
	if h == nil {
		return Handler{}, nil
	}

	out := *h
	out.RequiredLabels = append([]string(nil), h.RequiredLabels...)
	return out, nil
}

// Validate checks the handler values.
func (h Handler) Validate() error {
	if h.Max < 0 {
		return fmt.Errorf("%w: %d", errNegativeMax, h.Max)
	}
	return nil
}

// ApplyEntityConfig overlays environment-derived filters onto h.
// Non-empty labels and prefix replace the file values. The target replaces
// the file value when the file sets none or the environment sets one
// explicitly, even if it equals the default.
func (h *Handler) ApplyEntityConfig(ec EntityConfig) {
	if len(ec.RequiredLabels) > 0 {
		h.RequiredLabels = append([]string(nil), ec.RequiredLabels...)
	}
	if ec.RequiredTitlePrefix != "" {
		h.RequiredTitlePrefix = ec.RequiredTitlePrefix
	}
	if h.Target == "" || ec.TargetSet {
		h.Target = ec.Target
	}
}

func (h *Handler) normalize() {
	cleaned := make([]string, 0, len(h.RequiredLabels))
	for _, label := range h.RequiredLabels {
		if label = strings.TrimSpace(label); label != "" {
			cleaned = append(cleaned, label)
		}
	}
	h.RequiredLabels = cleaned
	h.Target = strings.TrimSpace(h.Target)
}

func (c *Config) handlers() map[string]*Handler {
	return map[string]*Handler{
		"close_issue":        c.CloseIssue,
		"close_pull_request": c.ClosePullRequest,
		"close_discussion":   c.CloseDiscussion,
	}
}
