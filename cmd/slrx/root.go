package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	traceLevel *string
}{}

var rootCmd = &cobra.Command{
	Use:   "slrx",
	Short: "Analyze SLR(1) grammars and build automata from regular expressions",
	Long: `slrx provides two features:
- Analyzes a grammar: FIRST/FOLLOW sets, the LR(0) automaton, and the SLR(1) table.
  Token streams can be parsed with the table.
- Compiles a regular expression into an NFA, a DFA, and a minimal DFA.
  The minimal DFA can be emitted as a Go scanner.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		level := tracing.TraceLevelFromString(*rootFlags.traceLevel)
		for _, key := range []string{"slrx.grammar", "slrx.driver", "slrx.lexical"} {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

func init() {
	rootFlags.traceLevel = rootCmd.PersistentFlags().String("trace-level", "Error", "trace level [Debug|Info|Error]")
}

// initDisplay sets up the prefixes of pterm's printers.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " INFO ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
