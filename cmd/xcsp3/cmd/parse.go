package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/xcsp3go/xcsp3"
	"github.com/xcsp3go/xcsp3/callback"
	"github.com/xcsp3go/xcsp3/internal/callback/printer"
)

var (
	parseDiscard []string
	parseConfig  string
	parseCompact bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an XCSP3 instance and print it in a readable form",
	Long: `Parse an XCSP3 instance document and render the declarations it
streams past (variables, constraints, objectives, annotations) one
line per event.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	flags := parseCmd.Flags()
	flags.StringArrayVarP(&parseDiscard, "discard", "d", nil, "class tag whose constraints are discarded (repeatable)")
	flags.StringVar(&parseConfig, "config", "", "YAML config file with discardedClasses: [...]")
	flags.BoolVar(&parseCompact, "compact", false, "use the compact printer style")
}

// parseFileConfig is the shape of the YAML file --config points at,
// parsed with the teacher's goccy/go-yaml dependency.
type parseFileConfig struct {
	DiscardedClasses []string `yaml:"discardedClasses"`
}

func runParse(cmd *cobra.Command, args []string) error {
	var r io.Reader
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer f.Close()
		r = f
	} else {
		r = os.Stdin
	}

	discard := append([]string(nil), parseDiscard...)
	if parseConfig != "" {
		data, err := os.ReadFile(parseConfig)
		if err != nil {
			return fmt.Errorf("error reading config: %w", err)
		}
		var cfg parseFileConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("error parsing config: %w", err)
		}
		discard = append(discard, cfg.DiscardedClasses...)
	}

	p := printer.New(os.Stdout)
	if parseCompact {
		p.Style = printer.StyleCompact
	}

	opts := []callback.Option{callback.WithDiscardedClasses(discard...)}
	if err := xcsp3.Parse(r, p, opts...); err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	return nil
}
