package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/get2knowio/climax/internal/gateway"
	"github.com/get2knowio/climax/internal/logger"
	"github.com/get2knowio/climax/internal/mcp"
	"github.com/get2knowio/climax/internal/policy"
	"github.com/get2knowio/climax/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run CONFIG [CONFIG...]",
	Short: "Serve the configured actions as an MCP server over stdio",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		idx, name, pol, err := buildIndex(args)
		if err != nil {
			return err
		}

		var executor *policy.ExecutorConfig
		if pol != nil {
			executor = pol.Executor
		}

		gw := gateway.New(idx, runner.New(executor))
		surface := gateway.NewSurface(gw, directMode)
		server := mcp.NewServer(name, surface)

		mode := "discovery"
		if directMode {
			mode = "direct"
		}
		logger.Infof("serving %d action(s) as '%s' in %s mode", idx.Len(), name, mode)

		return server.Serve(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	runCmd.Flags().BoolVar(&directMode, "direct", false, "register every action as its own MCP tool")
	rootCmd.AddCommand(runCmd)
}
