package main

import (
	"fmt"
	"strings"

	"github.com/nihei9/slrx/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var grammarCmdFlags *grammarFlags

func init() {
	cmd := &cobra.Command{
		Use:   "grammar <grammar file path>",
		Short: "Show FIRST/FOLLOW sets and the SLR(1) verdict of a grammar",
		Example: `  slrx grammar expr.grammar
  slrx grammar --ebnf --start Expr expr.ebnf`,
		Args: cobra.ExactArgs(1),
		RunE: runGrammar,
	}
	grammarCmdFlags = addGrammarFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0], grammarCmdFlags)
	if err != nil {
		return err
	}
	automaton, err := grammar.BuildAutomaton(gram)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Augmented grammar")
	for i, line := range gram.AugmentedListing() {
		fmt.Printf("%4v  %v\n", i, line)
	}

	pterm.DefaultSection.Println("FIRST / FOLLOW")
	var rows [][]string
	for _, sym := range gram.NonTerminals() {
		first, _ := gram.First(sym)
		follow, _ := gram.Follow(sym)
		rows = append(rows, []string{sym, strings.Join(first, " "), strings.Join(follow, " ")})
	}
	renderTable([]string{"Non-terminal", "FIRST", "FOLLOW"}, rows)

	pterm.DefaultSection.Println("SLR(1)")
	if automaton.IsSLR() {
		pterm.Success.Println(fmt.Sprintf("The grammar is SLR(1): %v states", len(automaton.States())))
		return nil
	}
	pterm.Warning.Println(fmt.Sprintf("The grammar is not SLR(1): %v conflict(s)", len(automaton.Conflicts())))
	for _, c := range automaton.Conflicts() {
		fmt.Println(c.Reason)
	}
	return nil
}
