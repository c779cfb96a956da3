package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo/depviz/pkg/types"
	"github.com/ingo/depviz/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "depviz",
	Short:   "Map and analyze Python import dependencies",
	Long: "depviz parses a Python project's source tree, builds its import dependency\n" +
		"graph, and reports circular imports, dead code, oversized modules, and\n" +
		"structural split suggestions, without executing any of the analyzed code.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "accepted by every command; does not change any output")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
