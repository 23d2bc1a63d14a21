package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lexFlags = struct {
	source *string
	engine *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "lex <lexical specification file path>",
		Short: "Tokenize a text stream into LABEL:VALUE lines",
		Example: `  cat src | slrx lex expr.json
  slrx lex expr.json -s src.txt | slrx parse expr.grammar`,
		Args: cobra.ExactArgs(1),
		RunE: runLex,
	}
	lexFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	lexFlags.engine = cmd.Flags().String("engine", "slrx", "lexer engine [slrx|maleeni]")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	src, closeSrc, err := openSource(*lexFlags.source)
	if err != nil {
		return err
	}
	defer closeSrc()

	toks, err := newTokenStream(src, args[0], *lexFlags.engine)
	if err != nil {
		return err
	}
	for {
		tok, err := toks.Next()
		if err != nil {
			return err
		}
		if tok.EOF() {
			return nil
		}
		fmt.Printf("%v:%v\n", tok.Label, tok.Text)
	}
}
