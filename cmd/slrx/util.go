package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nihei9/slrx/driver"
	verr "github.com/nihei9/slrx/error"
	"github.com/nihei9/slrx/grammar"
	"github.com/nihei9/slrx/grammar/lexical"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type grammarFlags struct {
	ebnf  *bool
	start *string
}

func addGrammarFlags(cmd *cobra.Command) *grammarFlags {
	return &grammarFlags{
		ebnf:  cmd.Flags().Bool("ebnf", false, "read the grammar as EBNF (golang.org/x/exp/ebnf notation)"),
		start: cmd.Flags().String("start", "", "start production of an EBNF grammar"),
	}
}

func readGrammar(path string, flags *grammarFlags) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	if flags != nil && *flags.ebnf {
		if *flags.start == "" {
			return nil, fmt.Errorf("An EBNF grammar needs --start")
		}
		return grammar.FromEBNF(path, f, *flags.start)
	}
	gram, err := grammar.Parse(f)
	if err != nil {
		var specErrs verr.SpecErrors
		if errors.As(err, &specErrs) {
			for _, e := range specErrs {
				e.FilePath = path
				e.SourceName = path
			}
		}
		return nil, err
	}
	return gram, nil
}

func buildAutomaton(path string, flags *grammarFlags) (*grammar.Automaton, error) {
	gram, err := readGrammar(path, flags)
	if err != nil {
		return nil, err
	}
	return grammar.BuildAutomaton(gram)
}

// openSource opens path, or returns stdin when path is empty. The returned function closes the file.
func openSource(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open the source file %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func readLexSpec(path string) (*lexical.LexSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lspec := &lexical.LexSpec{}
	err = json.Unmarshal(data, lspec)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the lexical specification %s: %w", path, err)
	}
	return lspec, nil
}

func compileLexSpec(lspec *lexical.LexSpec) (*lexical.CompiledLexSpec, error) {
	clspec, err, cerrs := lexical.Compile(lspec)
	if err != nil {
		for _, cerr := range cerrs {
			pterm.Error.Println(cerr.Error())
		}
		return nil, err
	}
	return clspec, nil
}

func renderTable(header []string, rows [][]string) {
	data := pterm.TableData{header}
	data = append(data, rows...)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderTree(node *driver.Node) {
	root := pterm.NewTreeFromLeveledList(leveledNode(node, pterm.LeveledList{}, 0))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNode(node *driver.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node == nil {
		return append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  "-",
		})
	}
	text := node.KindName
	if node.Text != "" {
		text = fmt.Sprintf("%v %v", node.KindName, strconv.Quote(node.Text))
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, c := range node.Children {
		ll = leveledNode(c, ll, level+1)
	}
	return ll
}
