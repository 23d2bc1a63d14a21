package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nihei9/slrx/driver"
	"github.com/nihei9/slrx/driver/lexer"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	grammar *grammarFlags
	source  *string
	lexspec *string
	engine  *string
	trace   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path>",
		Short: "Parse a token stream",
		Long: `parse reads one LABEL:VALUE token per line by default.
When --lexspec is given, the source is raw text scanned with the lexical specification.`,
		Example: `  cat tokens | slrx parse expr.grammar
  slrx parse expr.grammar --lexspec expr.json -s src.txt --trace`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	parseFlags.grammar = addGrammarFlags(cmd)
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.lexspec = cmd.Flags().String("lexspec", "", "lexical specification (JSON) to scan the source with")
	parseFlags.engine = cmd.Flags().String("engine", "slrx", "lexer engine for --lexspec [slrx|maleeni]")
	parseFlags.trace = cmd.Flags().Bool("trace", false, "print every parser step")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	automaton, err := buildAutomaton(args[0], parseFlags.grammar)
	if err != nil {
		return err
	}
	if !automaton.IsSLR() {
		return fmt.Errorf("the grammar is not SLR(1):\n%v", automaton.Reason())
	}

	src, closeSrc, err := openSource(*parseFlags.source)
	if err != nil {
		return err
	}
	defer closeSrc()

	toks, err := newTokenStream(src, *parseFlags.lexspec, *parseFlags.engine)
	if err != nil {
		return err
	}

	var opts []driver.ParserOption
	if *parseFlags.trace {
		opts = append(opts, driver.Trace())
	}
	p, err := driver.NewParser(automaton, opts...)
	if err != nil {
		return err
	}
	res, err := p.Parse(toks)
	if err != nil {
		return err
	}

	for _, step := range res.Steps {
		fmt.Println(step)
	}
	if res.Err != nil {
		return res.Err
	}
	renderTree(res.Tree)
	return nil
}

func newTokenStream(src io.Reader, lexspecPath string, engine string) (driver.TokenStream, error) {
	if lexspecPath == "" {
		return driver.NewLabelValueStream(src), nil
	}
	lspec, err := readLexSpec(lexspecPath)
	if err != nil {
		return nil, err
	}
	switch engine {
	case "slrx":
		clspec, err := compileLexSpec(lspec)
		if err != nil {
			return nil, err
		}
		return lexer.NewTokenStream(clspec, src)
	case "maleeni":
		return lexer.NewMaleeniTokenStream(lspec, src)
	}
	return nil, errors.New("an engine must be slrx or maleeni")
}
