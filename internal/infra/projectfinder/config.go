package projectfinder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/mkr1/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads mkr1/mkr1.yaml from the project root and applies defaults.
// A missing file is not an error.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, domain.ProjectFolder, domain.ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "projectfinder.loadconfig",
			Kind: domain.KindExecution,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "projectfinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
		}
	}

	// Apply parsed values on top of defaults.
	if y.Mkr1.Logging.Enabled != nil {
		cfg.Logging.Enabled = *y.Mkr1.Logging.Enabled
	}
	if y.Mkr1.History.Enabled != nil {
		cfg.History.Enabled = *y.Mkr1.History.Enabled
	}
	if dir := strings.TrimSpace(y.Mkr1.History.Dir); dir != "" {
		if filepath.IsAbs(dir) || strings.HasPrefix(filepath.Clean(dir), "..") {
			return cfg, &domain.OpError{
				Op:   "projectfinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("%w: history.dir must be relative to the mkr1 folder", domain.ErrInvalidConfig),
			}
		}
		cfg.History.Dir = dir
	}

	return cfg, nil
}

type yamlConfig struct {
	Mkr1 struct {
		Logging struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"logging"`

		History struct {
			Enabled *bool  `yaml:"enabled"`
			Dir     string `yaml:"dir"`
		} `yaml:"history"`
	} `yaml:"mkr1"`
}
