package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "copilotctl",
		Short:         "Reading copilot operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSegmentCmd(),
		newAnnotateCmd(),
		newImportCmd(),
		newMigrateCmd(),
		newAnalyzeCmd(),
	)

	return root
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
