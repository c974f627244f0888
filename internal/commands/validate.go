package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/output"
	"github.com/get2knowio/climax/internal/policy"
)

var validateCmd = &cobra.Command{
	Use:   "validate CONFIG [CONFIG...]",
	Short: "Validate config files without starting a server",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		formatter := output.NewFormatter(output.FormatText, cmd.OutOrStdout())

		valid, invalid := 0, 0
		for _, path := range args {
			src, result := config.ValidateFile(path)
			formatter.FormatValidation(path, src, result)
			if result.Valid {
				valid++
			} else {
				invalid++
			}
		}

		if policyFile != "" {
			pol, err := policy.Load(policyFile)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s policy %s: %v\n", color.RedString("✗"), policyFile, err)
				invalid++
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s policy %s: default=%s, %d action override(s)\n",
					color.GreenString("✓"), policyFile, pol.Default, len(pol.Tools))
			}
		}

		if invalid == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("All %d config(s) valid", valid))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d valid, %d invalid\n", valid, invalid)
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
