// Package commands wires the climax CLI: serve configs over MCP stdio,
// validate and list them, and install the server into MCP clients.
package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/index"
	"github.com/get2knowio/climax/internal/logger"
	"github.com/get2knowio/climax/internal/policy"
)

var (
	policyFile string
	logLevel   string
	jsonOutput bool
	directMode bool
)

var rootCmd = &cobra.Command{
	Use:   "climax",
	Short: "Expose command-line tools as MCP tools",
	Long: `climax turns declarative YAML descriptions of command-line tools into
an MCP server. By default it exposes a two-tool discovery surface
(climax_search, climax_call) so large catalogs stay out of the model's
context; --direct registers every action as its own tool instead.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logLevel)
	},
}

func Execute() error {
	// Backward compat: a bare config path means "run".
	if len(os.Args) > 1 {
		if inferred := inferCommand(os.Args[1]); inferred != "" {
			newArgs := make([]string, 0, len(os.Args)+1)
			newArgs = append(newArgs, os.Args[0], inferred)
			newArgs = append(newArgs, os.Args[1:]...)
			os.Args = newArgs
		}
	}
	return rootCmd.Execute()
}

func inferCommand(first string) string {
	if strings.HasPrefix(first, "-") {
		return ""
	}
	switch first {
	case "run", "validate", "list", "install", "help", "completion":
		return ""
	}
	return "run"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "policy file gating and decorating actions")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// buildIndex loads the configs, applies the policy if one was given,
// and builds the discovery index.
func buildIndex(paths []string) (*index.Index, string, *policy.Policy, error) {
	sources, name, err := config.LoadSources(paths)
	if err != nil {
		return nil, "", nil, err
	}

	var pol *policy.Policy
	if policyFile != "" {
		pol, err = policy.Load(policyFile)
		if err != nil {
			return nil, "", nil, err
		}
	}

	actions := policy.Apply(config.Resolve(sources), pol)
	return index.Build(actions), name, pol, nil
}
