package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/get2knowio/climax/internal/output"
	"github.com/get2knowio/climax/internal/policy"
)

var listCmd = &cobra.Command{
	Use:   "list CONFIG [CONFIG...]",
	Short: "List the actions a set of configs would expose",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		idx, _, pol, err := buildIndex(args)
		if err != nil {
			return err
		}

		format := output.FormatText
		if jsonOutput {
			format = output.FormatJSON
		}
		formatter := output.NewFormatter(format, cmd.OutOrStdout())
		formatter.FormatActions(idx)

		if pol != nil && pol.Executor != nil && pol.Executor.Type == policy.ExecutorDocker {
			fmt.Fprintf(cmd.OutOrStdout(), "executor: docker (%s)\n", pol.Executor.Image)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.AddCommand(listCmd)
}
