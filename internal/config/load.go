package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultServerName is used when a source names no server and when
// several sources are merged.
const DefaultServerName = "climax"

// LoadSource reads and parses a single YAML source file.
func LoadSource(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var src SourceConfig
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if src.Name == "" {
		src.Name = DefaultServerName
	}
	return &src, nil
}

// LoadSources loads every path in order and picks the server name: a
// single source lends its own name, merged sources serve under the
// default.
func LoadSources(paths []string) ([]SourceConfig, string, error) {
	if len(paths) == 0 {
		return nil, "", fmt.Errorf("no config files given")
	}

	sources := make([]SourceConfig, 0, len(paths))
	for _, path := range paths {
		src, err := LoadSource(path)
		if err != nil {
			return nil, "", err
		}
		sources = append(sources, *src)
	}

	name := DefaultServerName
	if len(sources) == 1 {
		name = sources[0].Name
	}
	return sources, name, nil
}
