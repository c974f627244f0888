package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/get2knowio/climax/internal/integration"
)

var (
	installName       string
	installConfigPath string
)

var installCmd = &cobra.Command{
	Use:       "install CLIENT CONFIG [CONFIG...]",
	Short:     "Register this server in an MCP client's config file",
	Long:      "Writes a stdio server entry for the given configs into the client's config file. Supported clients: claude, claude-code, codex.",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"claude", "claude-code", "codex"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		client := args[0]
		configs := args[1:]

		// The client must be able to launch us; relative config paths
		// would break once launched from another working directory.
		binPath, err := os.Executable()
		if err != nil {
			return err
		}

		runArgs := []string{"run"}
		for _, cfg := range configs {
			abs, err := filepath.Abs(cfg)
			if err != nil {
				return err
			}
			runArgs = append(runArgs, abs)
		}
		if policyFile != "" {
			abs, err := filepath.Abs(policyFile)
			if err != nil {
				return err
			}
			runArgs = append(runArgs, "--policy", abs)
		}
		if directMode {
			runArgs = append(runArgs, "--direct")
		}

		entry := integration.ServerEntry{
			Name:    installName,
			Command: binPath,
			Args:    runArgs,
		}

		switch client {
		case "claude":
			err = (&integration.ClaudeIntegration{ConfigPath: installConfigPath}).Configure(entry)
		case "claude-code":
			err = (&integration.ClaudeIntegration{ConfigPath: installConfigPath}).ConfigureCode(entry)
		case "codex":
			err = (&integration.CodexIntegration{ConfigPath: installConfigPath}).Configure(entry)
		default:
			return fmt.Errorf("unknown client: %s (expected claude, claude-code, or codex)", client)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "installed '%s' for %s\n", installName, client)
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&installName, "name", "climax", "server name to register")
	installCmd.Flags().StringVar(&installConfigPath, "config", "", "client config file to write (default: the client's standard location)")
	installCmd.Flags().BoolVar(&directMode, "direct", false, "register the server in direct mode")
	rootCmd.AddCommand(installCmd)
}
