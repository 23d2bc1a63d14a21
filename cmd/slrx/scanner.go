package main

import (
	"os"

	"github.com/nihei9/slrx/grammar/lexical/dfa"
	"github.com/nihei9/slrx/grammar/lexical/nfa"
	"github.com/spf13/cobra"
)

var scannerFlags = struct {
	pkgName *string
	output  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "scanner <pattern>",
		Short:   "Generate a Go scanner from the minimal DFA of a regular expression",
		Example: `  slrx scanner '[0-9]+' -p number -o number_scanner.go`,
		Args:    cobra.ExactArgs(1),
		RunE:    runScanner,
	}
	scannerFlags.pkgName = cmd.Flags().StringP("package", "p", "main", "package name of the generated code")
	scannerFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runScanner(cmd *cobra.Command, args []string) error {
	n, err := nfa.Compile(args[0])
	if err != nil {
		return err
	}
	src, err := dfa.GenScanner(dfa.Minimize(dfa.FromNFA(n)), dfa.PackageName(*scannerFlags.pkgName))
	if err != nil {
		return err
	}

	if *scannerFlags.output == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	return os.WriteFile(*scannerFlags.output, src, 0644)
}
