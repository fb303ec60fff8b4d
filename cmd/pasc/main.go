package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:   "pasc",
		Short: "pasc compiles a small Pascal dialect into stack machine assembly",
		Long: `pasc is a single-pass compiler for a small Pascal dialect.

Commands:
  build  Compile a .pas file (or the entry of a pasc.toml project) into .asm
  check  Report the first error of a program without writing anything
  init   Scaffold a pasc.toml manifest and a starter program
  tools  Build the pasc binaries into a bin directory
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	root.AddCommand(newBuildCmd(), newCheckCmd(), newInitCmd(), newToolsCmd())
	return root
}
