package cli

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/layout"
)

// Config is the driver configuration. It is read from a YAML file; JSON
// documents are accepted as well.
type Config struct {
	Verbose      bool   `yaml:"verbose"`
	Debug        bool   `yaml:"debug"`
	OutputDir    string `yaml:"output_dir"`
	TargetTriple string `yaml:"target_triple"`
	DataLayout   string `yaml:"data_layout"`
	LLVMVersion  string `yaml:"llvm_version"`
	EntryName    string `yaml:"entry_name"`
	Jobs         int    `yaml:"jobs"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   ".",
		LLVMVersion: "14.0.0",
		EntryName:   "main",
		Jobs:        0,
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.EntryName == "" {
		return errors.InvalidConfig("entry_name", "must not be empty")
	}
	if c.Jobs < 0 {
		return errors.InvalidConfig("jobs", fmt.Sprintf("must not be negative, got %d", c.Jobs))
	}
	if _, err := layout.ForTriple(c.TargetTriple); err != nil {
		return errors.InvalidConfig("target_triple", err.Error())
	}
	if c.LLVMVersion != "" {
		if _, err := semver.NewVersion(c.LLVMVersion); err != nil {
			return errors.InvalidConfig("llvm_version", err.Error())
		}
	}
	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
