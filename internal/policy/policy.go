// Package policy loads the optional policy file that gates which
// actions a server exposes, overrides their descriptions, constrains
// their argument values, and selects the executor.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/get2knowio/climax/internal/config"
)

// Default decides what happens to actions the policy does not mention.
type Default string

const (
	DefaultEnabled  Default = "enabled"
	DefaultDisabled Default = "disabled"
)

// ExecutorType selects how commands run.
type ExecutorType string

const (
	ExecutorLocal  ExecutorType = "local"
	ExecutorDocker ExecutorType = "docker"
)

// ExecutorConfig describes where commands execute.
type ExecutorConfig struct {
	Type       ExecutorType `yaml:"type"`
	Image      string       `yaml:"image"`
	Volumes    []string     `yaml:"volumes"`
	Network    string       `yaml:"network"`
	WorkingDir string       `yaml:"working_dir"`
}

// ActionPolicy is the per-action section of a policy file.
type ActionPolicy struct {
	Description string                          `yaml:"description"`
	Args        map[string]config.ArgConstraint `yaml:"args"`
}

// Policy is a parsed policy file. Actions are listed under the "tools"
// key a client-facing policy file uses.
type Policy struct {
	Default  Default                 `yaml:"default"`
	Executor *ExecutorConfig         `yaml:"executor"`
	Tools    map[string]ActionPolicy `yaml:"tools"`
}

// Load reads and validates a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}

	var pol Policy
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	// A policy file gates access, so an unstated default stays closed.
	if pol.Default == "" {
		pol.Default = DefaultDisabled
	}
	if pol.Default != DefaultEnabled && pol.Default != DefaultDisabled {
		return nil, fmt.Errorf("invalid policy default: %s", pol.Default)
	}
	if pol.Executor != nil {
		if pol.Executor.Type == "" {
			pol.Executor.Type = ExecutorLocal
		}
		if pol.Executor.Type != ExecutorLocal && pol.Executor.Type != ExecutorDocker {
			return nil, fmt.Errorf("invalid executor type: %s", pol.Executor.Type)
		}
		if pol.Executor.Type == ExecutorDocker && pol.Executor.Image == "" {
			return nil, fmt.Errorf("docker executor requires an image")
		}
	}
	return &pol, nil
}
