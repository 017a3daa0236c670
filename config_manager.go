package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Defaults shared by flags and the config file.
const (
	defaultCount   = 25
	defaultBarSize = 25
)

// UserConfig holds settings loaded from the optional config file at
// ~/.config/cmdtop/config.yaml. Every field is optional; command-line
// flags take precedence over file values.
type UserConfig struct {
	Ignore   []string `yaml:"ignore"`
	Count    *int     `yaml:"count"`
	BarSize  *int     `yaml:"bar_size"`
	MoreThan *int     `yaml:"more_than"`
	Color    string   `yaml:"color"`
}

// userConfigPath returns the default config file location.
func userConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cmdtop", "config.yaml"), nil
}

// LoadUserConfig loads the config file from the default location. A
// missing file is not an error; a malformed one is.
func LoadUserConfig() (*UserConfig, error) {
	path, err := userConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadUserConfigFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return cfg, err
}

// loadUserConfigFrom parses a YAML config file.
func loadUserConfigFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyUserConfig fills in options the user did not set on the command
// line from the config file.
func applyUserConfig(cmd *cobra.Command, opts *runOptions, cfg *UserConfig, logger *zap.Logger) {
	if cfg == nil {
		return
	}
	logger.Info("applying config file settings")

	flags := cmd.Flags()
	if len(cfg.Ignore) > 0 && !flags.Changed("ignore") {
		opts.ignore = strings.Join(cfg.Ignore, "|")
	}
	if cfg.Count != nil && !flags.Changed("count") {
		opts.count = *cfg.Count
	}
	if cfg.BarSize != nil && !flags.Changed("bar-size") {
		opts.barSize = *cfg.BarSize
	}
	if cfg.MoreThan != nil && !flags.Changed("more-than") {
		opts.moreThan = *cfg.MoreThan
	}
	if cfg.Color != "" && !flags.Changed("color") && opts.color == "" {
		opts.color = cfg.Color
	}
}

// splitIgnoreList splits the pipe-separated --ignore value into command
// names, dropping empties.
func splitIgnoreList(value string) []string {
	if value == "" {
		return nil
	}
	var commands []string
	for _, part := range strings.Split(value, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			commands = append(commands, trimmed)
		}
	}
	return commands
}
