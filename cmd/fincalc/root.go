package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fincalc",
		Short:         "Buy vs rent and compound interest projections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newBuyVsRentCommand(),
		newCompoundCommand(),
		newRunCommand(),
		newExampleCommand(),
		newServeCommand(),
		newTokenCommand(),
	)
	return root
}
