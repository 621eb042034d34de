package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

// Config represents the main configuration structure
type Config struct {
	// Scan holds scan behaviour configuration
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// ScanConfig holds configuration for the scan itself
type ScanConfig struct {
	// SkipAnalysers lists analyser ids to leave out
	SkipAnalysers []string `json:"skip_analysers" mapstructure:"skip_analysers" yaml:"skip_analysers"`

	// SkipAggregators lists aggregator ids to leave out
	SkipAggregators []string `json:"skip_aggregators" mapstructure:"skip_aggregators" yaml:"skip_aggregators"`

	// SkipTypes lists analyser categories to leave out
	SkipTypes []string `json:"skip_types" mapstructure:"skip_types" yaml:"skip_types"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// MinSeverity is the lowest message severity included in output
	MinSeverity string `json:"min_severity" mapstructure:"min_severity" yaml:"min_severity"`

	// Plain collapses metadata to representative values without provenance
	Plain bool `json:"plain" mapstructure:"plain" yaml:"plain"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			SkipAnalysers:   []string{},
			SkipAggregators: []string{},
			SkipTypes:       []string{},
		},
		Output: OutputConfig{
			Format:      constants.OutputFormatText,
			MinSeverity: "info",
			Plain:       false,
		},
	}
}

// LoadConfig loads configuration from file or returns the defaults.
// When configPath is empty a config file is discovered from the target
// directory upward.
func LoadConfig(configPath, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance avoids shared global state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		constants.OutputFormatText: true,
		constants.OutputFormatJSON: true,
		constants.OutputFormatYAML: true,
	}
	if !validFormats[c.Output.Format] {
		return domain.NewConfigError(
			fmt.Sprintf("invalid output.format %q, must be one of: text, json, yaml", c.Output.Format), nil)
	}

	if _, err := domain.ParseSeverity(c.Output.MinSeverity); err != nil {
		return domain.NewConfigError("invalid output.min_severity", err)
	}
	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("scan", config.Scan)
	v.Set("output", config.Output)

	return v.WriteConfig()
}

// searchConfigInDirectory looks for the config file in one directory
func searchConfigInDirectory(dir string) string {
	path := filepath.Join(dir, constants.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// findDefaultConfig looks for the config file from the target directory
// upward, then in the usual user locations.
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory("."); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName)); config != "" {
			return config
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", constants.ToolName)); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home); config != "" {
			return config
		}
	}
	return ""
}
