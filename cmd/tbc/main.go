// Command tbc runs, searches, assembles and disassembles programs for the
// three-bit computer.
//
// Programs are read from puzzle inputs, assembly sources (.tbc) or
// compiled archives (.a).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCommand creates the command tree.
func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           AppName,
		Short:         "Runs programs for the three-bit computer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddFlags(c.PersistentFlags())

	c.AddCommand(
		runCommand(),
		quineCommand(),
		solveCommand(),
		disasmCommand(),
		asmCommand(),
		versionCommand(),
	)
	return c
}
