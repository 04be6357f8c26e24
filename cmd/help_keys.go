package cmd

import (
	"fmt"

	"github.com/philipparndt/goruler/internal/input"
	"github.com/spf13/cobra"
)

var helpKeysCmd = &cobra.Command{
	Use:   "help-keys",
	Short: "Show the key bindings of the ruler window",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), input.HelpText)
	},
}

func init() {
	rootCmd.AddCommand(helpKeysCmd)
}
