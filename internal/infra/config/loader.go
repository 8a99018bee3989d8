package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/drueck/reboot/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the workspace root.
const FileName = "reboot.yaml"

// LoadConfig loads reboot.yaml from root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile loads a configuration file at an explicit path and applies
// defaults.
func LoadFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// apply puts parsed values on top of defaults.
func apply(cfg *domain.Config, y yamlConfig) error {
	r := y.Reboot

	if r.Output.Format != "" {
		f, err := domain.ParseFormat(r.Output.Format)
		if err != nil {
			return err
		}
		cfg.Output.Format = f
	}
	if strings.TrimSpace(r.Region) != "" {
		region, err := domain.ParseRange(r.Region)
		if err != nil {
			return err
		}
		cfg.Replay.Region = &region
	}
	if r.Check != nil {
		cfg.Replay.Check = *r.Check
	}
	if r.RenderLimit != nil {
		cfg.Replay.RenderLimit = *r.RenderLimit
	}
	if r.Runs.Dir != "" {
		cfg.Runs.Dir = r.Runs.Dir
	}
	if r.Runs.Save != nil {
		cfg.Runs.Save = *r.Runs.Save
	}
	if r.Logs.Enabled != nil {
		cfg.Logs.Enabled = *r.Logs.Enabled
	}
	return nil
}
