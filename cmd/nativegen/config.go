package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/nativegen/pkg/generator"
)

// ProjectConfig holds the contents of .nativegen/config.yaml.
type ProjectConfig struct {
	Version string   `yaml:"version"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Out     string   `yaml:"out"`
}

// loadProjectConfig reads .nativegen/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".nativegen/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveGenerateConfig merges the project config over the defaults.
func resolveGenerateConfig() generator.Config {
	cfg := generator.DefaultConfig()
	if project, err := loadProjectConfig(); err == nil && project != nil {
		if len(project.Include) > 0 {
			cfg.Include = project.Include
		}
		if len(project.Exclude) > 0 {
			cfg.Exclude = project.Exclude
		}
	}
	return cfg
}

// resolveOutPath returns the output path to use, applying the fallback
// chain: explicit --out flag, then the project config, then the default.
func resolveOutPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if project, err := loadProjectConfig(); err == nil && project != nil && project.Out != "" {
		return project.Out
	}
	return "schema.json"
}
