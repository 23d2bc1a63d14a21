package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/slrx/grammar/lexical/dfa"
	"github.com/nihei9/slrx/grammar/lexical/nfa"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var matchFlags = struct {
	interactive *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "match <pattern> [<input>...]",
		Short: "Match inputs against the minimal DFA of a regular expression",
		Example: `  slrx match '(a|b)*abb' abb aabb ab
  slrx match '[0-9]+' -i`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMatch,
	}
	matchFlags.interactive = cmd.Flags().BoolP("interactive", "i", false, "read inputs from a prompt")
	rootCmd.AddCommand(cmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	n, err := nfa.Compile(args[0])
	if err != nil {
		return err
	}
	d := dfa.Minimize(dfa.FromNFA(n))

	for _, input := range args[1:] {
		printMatch(d, input)
	}
	if !*matchFlags.interactive {
		return nil
	}

	rl, err := readline.New("match> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return err
		}
		printMatch(d, strings.TrimRight(line, "\r\n"))
	}
}

func printMatch(d *dfa.DFA, input string) {
	if d.Match(input) {
		pterm.Success.Println(fmt.Sprintf("%q matches", input))
		return
	}
	n, _ := d.LongestMatch(input)
	if n < 0 {
		pterm.Error.Println(fmt.Sprintf("%q does not match", input))
		return
	}
	pterm.Warning.Println(fmt.Sprintf("%q does not match; the longest matching prefix is %q", input, input[:n]))
}
