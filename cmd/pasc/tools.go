package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pasc/internal/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage the pasc toolchain",
	}

	var binDir string
	install := &cobra.Command{
		Use:   "install",
		Short: "Build pasc and pasc-lsp into a bin directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := tools.Install(tools.InstallOptions{BinDir: binDir})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed: %s\n", strings.Join(paths, ", "))
			return nil
		},
	}
	install.Flags().StringVar(&binDir, "bin", "bin", "output directory for tools")

	cmd.AddCommand(install)
	return cmd
}
