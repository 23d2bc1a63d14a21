package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statesCmdFlags *grammarFlags

func init() {
	cmd := &cobra.Command{
		Use:     "states <grammar file path>",
		Short:   "Show the states of the LR(0) automaton",
		Example: `  slrx states expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runStates,
	}
	statesCmdFlags = addGrammarFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	automaton, err := buildAutomaton(args[0], statesCmdFlags)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, state := range automaton.States() {
		items := make([]string, 0, len(state.Items))
		for _, item := range state.Items {
			items = append(items, automaton.ItemString(item))
		}
		var trans []string
		for _, sym := range state.ShiftSymbols() {
			next, _ := state.Shift(sym)
			trans = append(trans, fmt.Sprintf("%v → %v", sym, next))
		}
		var reduces []string
		for _, sym := range state.ReduceSymbols() {
			item, _ := state.Reduce(sym)
			reduces = append(reduces, fmt.Sprintf("%v: %v", sym, automaton.ItemString(item)))
		}
		rows = append(rows, []string{
			fmt.Sprint(state.ID),
			strings.Join(items, "\n"),
			strings.Join(trans, "\n"),
			strings.Join(reduces, "\n"),
		})
	}
	renderTable([]string{"State", "Items", "Shift / GOTO", "Reduce"}, rows)
	return nil
}
