package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/slrx/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	grammar *grammarFlags
	lexspec *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "test <grammar file path> <test file path>|<test directory path>",
		Short: "Test a grammar",
		Long: `test parses the source of each test case and compares the parse tree with the expected one.
A test case consists of a description, a source, and the expected tree, separated by lines of
three or more hyphens:

    Addition
    ---
    x + 1
    ---
    (E (E (T (F (id "x")))) (+ "+") (T (F (num "1"))))

Sources are LABEL:VALUE lines unless --lexspec is given.`,
		Example: `  slrx test expr.grammar test --lexspec expr.json`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.grammar = addGrammarFlags(cmd)
	testFlags.lexspec = cmd.Flags().String("lexspec", "", "lexical specification (JSON) to scan sources with")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	automaton, err := buildAutomaton(args[0], testFlags.grammar)
	if err != nil {
		return err
	}
	if !automaton.IsSLR() {
		return fmt.Errorf("the grammar is not SLR(1):\n%v", automaton.Reason())
	}

	t := &tester.Tester{
		Automaton: automaton,
	}
	if *testFlags.lexspec != "" {
		lspec, err := readLexSpec(*testFlags.lexspec)
		if err != nil {
			return err
		}
		t.LexSpec, err = compileLexSpec(lspec)
		if err != nil {
			return err
		}
	}

	{
		cs := tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
		t.Cases = cs
	}

	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
