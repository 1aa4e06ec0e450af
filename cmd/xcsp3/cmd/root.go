package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "xcsp3",
	Short: "XCSP3 instance parser and inspector",
	Long: `xcsp3 is a Go implementation of an XCSP3 instance parser.

XCSP3 is an XML-based format for representing combinatorial constraint
satisfaction and optimization problems:
  - Variables with integer domains (ranges or explicit value lists)
  - Core and global constraints (extension, intension, sum, allDifferent,
    count, element, regular, cumulative, and more)
  - Group and slide meta-constraints that unfold a shared template
  - Single and multi-objective optimization goals

This tool streams an instance document once, reporting every declaration
in document order to a pluggable sink instead of building an in-memory
model.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
