// Package integration writes climax server entries into MCP client
// config files so the clients launch the server over stdio.
package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ServerEntry is the stdio launch spec written into client configs.
type ServerEntry struct {
	Name    string
	Command string
	Args    []string
}

// ClaudeIntegration handles configuring Claude Desktop and Claude Code.
type ClaudeIntegration struct {
	// ConfigPath overrides the discovered config file location.
	ConfigPath string
}

// Configure adds the server entry to Claude Desktop's config file.
func (c *ClaudeIntegration) Configure(entry ServerEntry) error {
	path := c.ConfigPath
	if path == "" {
		var err error
		path, err = c.findDesktopConfig()
		if err != nil {
			return err
		}
	}
	return writeJSONEntry(path, entry)
}

// ConfigureCode adds the server entry to Claude Code's settings file.
func (c *ClaudeIntegration) ConfigureCode(entry ServerEntry) error {
	path := c.ConfigPath
	if path == "" {
		var err error
		path, err = c.findCodeConfig()
		if err != nil {
			return err
		}
	}
	return writeJSONEntry(path, entry)
}

func writeJSONEntry(path string, entry ServerEntry) error {
	var config map[string]interface{}

	data, err := os.ReadFile(path)
	if err == nil {
		// Refuse to clobber a config we cannot parse.
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("existing config %s is not valid JSON: %w", path, err)
		}
	}
	if config == nil {
		config = make(map[string]interface{})
	}

	mcpServers, ok := config["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		config["mcpServers"] = mcpServers
	}

	mcpServers[entry.Name] = map[string]interface{}{
		"command": entry.Command,
		"args":    entry.Args,
	}

	newData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, newData, 0644)
}

func (c *ClaudeIntegration) findDesktopConfig() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		appData = filepath.Join(home, "AppData", "Roaming")
	}

	path := filepath.Join(appData, "Claude", "claude_desktop_config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}

func (c *ClaudeIntegration) findCodeConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(home, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}
