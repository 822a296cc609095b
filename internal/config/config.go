package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DeadExportConfig controls dead-export reporting policy.
type DeadExportConfig struct {
	// SuppressNamespaceTargets hides findings for namespace-imported
	// modules instead of reporting them at low confidence.
	SuppressNamespaceTargets bool `yaml:"suppressNamespaceTargets,omitempty"`
}

// OutputConfig holds report rendering defaults.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // markdown | json | mermaid
	Path   string `yaml:"path,omitempty"`   // "" means stdout
}

// ProjectConfig holds project-level settings loaded from depmap.yml.
type ProjectConfig struct {
	Extensions  []string         `yaml:"extensions,omitempty"`
	ExcludeDirs []string         `yaml:"excludeDirs,omitempty"`
	DeadExports DeadExportConfig `yaml:"deadExports,omitempty"`
	Output      OutputConfig     `yaml:"output,omitempty"`
	Verbose     bool             `yaml:"verbose,omitempty"`
}

// Load attempts to read depmap.yml or depmap.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"depmap.yml", "depmap.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
