package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tableCmdFlags *grammarFlags

func init() {
	cmd := &cobra.Command{
		Use:     "table <grammar file path>",
		Short:   "Show the SLR(1) ACTION/GOTO table",
		Example: `  slrx table expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableCmdFlags = addGrammarFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	automaton, err := buildAutomaton(args[0], tableCmdFlags)
	if err != nil {
		return err
	}

	tab := automaton.ParsingTable()
	header := []string{"State"}
	header = append(header, tab.Terminals...)
	header = append(header, tab.NonTerminals...)
	rows := make([][]string, 0, len(tab.Rows))
	for i, row := range tab.Rows {
		rows = append(rows, append([]string{fmt.Sprint(i)}, row...))
	}
	renderTable(header, rows)
	if !automaton.IsSLR() {
		return fmt.Errorf("the grammar is not SLR(1):\n%v", automaton.Reason())
	}
	return nil
}
