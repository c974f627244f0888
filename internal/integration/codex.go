package integration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CodexIntegration handles configuring Codex.
type CodexIntegration struct {
	// ConfigPath overrides the discovered config file location.
	ConfigPath string
}

// Configure adds the server entry to Codex's config.toml.
func (c *CodexIntegration) Configure(entry ServerEntry) error {
	path := c.ConfigPath
	if path == "" {
		var err error
		path, err = c.findConfig()
		if err != nil {
			return err
		}
	}

	var config map[string]interface{}

	data, err := os.ReadFile(path)
	if err == nil {
		// Refuse to clobber a config we cannot parse.
		if err := toml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("existing config %s is not valid TOML: %w", path, err)
		}
	}
	if config == nil {
		config = make(map[string]interface{})
	}

	mcpServers, ok := config["mcp_servers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		config["mcp_servers"] = mcpServers
	}

	mcpServers[entry.Name] = map[string]interface{}{
		"command": entry.Command,
		"args":    entry.Args,
	}

	newData, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, newData, 0644)
}

func (c *CodexIntegration) findConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	codexDir := filepath.Join(home, ".codex")
	if err := os.MkdirAll(codexDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(codexDir, "config.toml"), nil
}
