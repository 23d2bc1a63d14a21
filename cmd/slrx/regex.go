package main

import (
	"fmt"

	"github.com/nihei9/slrx/grammar/lexical/dfa"
	"github.com/nihei9/slrx/grammar/lexical/nfa"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var regexFlags = struct {
	nfa  *bool
	dfa  *bool
	mdfa *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "regex <pattern>",
		Short: "Show the NFA, the DFA, and the minimal DFA of a regular expression",
		Long: `regex compiles a pattern and prints transition tables. Without flags, every table is shown.
Patterns support grouping, '|', '*', '+', '?', bracket expressions like [a-z], and '\' escapes.
'.' is an explicit concatenation, and white spaces and '@' are ignored.`,
		Example: `  slrx regex '(a|b)*abb' --mdfa`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRegex,
	}
	regexFlags.nfa = cmd.Flags().Bool("nfa", false, "show the NFA")
	regexFlags.dfa = cmd.Flags().Bool("dfa", false, "show the DFA built by subset construction")
	regexFlags.mdfa = cmd.Flags().Bool("mdfa", false, "show the minimal DFA")
	rootCmd.AddCommand(cmd)
}

func runRegex(cmd *cobra.Command, args []string) error {
	n, err := nfa.Compile(args[0])
	if err != nil {
		return err
	}
	all := !*regexFlags.nfa && !*regexFlags.dfa && !*regexFlags.mdfa

	if all || *regexFlags.nfa {
		pterm.DefaultSection.Println(fmt.Sprintf("NFA: %v states", n.Len()))
		renderTransitionTable(n.TransitionTable())
	}
	d := dfa.FromNFA(n)
	if all || *regexFlags.dfa {
		pterm.DefaultSection.Println(fmt.Sprintf("DFA: %v states", d.Len()))
		renderTransitionTable(d.TransitionTable())
	}
	if all || *regexFlags.mdfa {
		m := dfa.Minimize(d)
		pterm.DefaultSection.Println(fmt.Sprintf("Minimal DFA: %v states", m.Len()))
		renderTransitionTable(m.TransitionTable())
	}
	return nil
}

// renderTransitionTable marks accepting states with '*'.
func renderTransitionTable(tab *nfa.TransitionTable) {
	header := append([]string{"State"}, tab.Columns...)
	rows := make([][]string, 0, len(tab.Rows))
	for s, row := range tab.Rows {
		name := fmt.Sprint(s)
		if tab.Accepting[s] {
			name += "*"
		}
		rows = append(rows, append([]string{name}, row...))
	}
	renderTable(header, rows)
}
