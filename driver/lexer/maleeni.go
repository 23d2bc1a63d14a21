package lexer

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/slrx/driver"
	"github.com/nihei9/slrx/grammar/lexical"
)

// maleeni requires a specification name.
const defaultMaleeniSpecName = "lexspec"

// CompileMaleeni compiles a lexical specification with maleeni. Patterns are read in maleeni's own
// syntax, where `.` matches any character and white spaces are literal.
func CompileMaleeni(lspec *lexical.LexSpec) (*mlspec.CompiledLexSpec, error) {
	err := lspec.Validate()
	if err != nil {
		return nil, err
	}
	entries := make([]*mlspec.LexEntry, 0, len(lspec.Entries))
	for _, e := range lspec.Entries {
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(e.Kind),
			Pattern: mlspec.LexPattern(e.Pattern),
		})
	}

	name := lspec.Name
	if name == "" {
		name = defaultMaleeniSpecName
	}
	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    name,
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}
	tracer().Debugf("maleeni compiled %d kind(s)", len(clspec.KindNames)-1)
	return clspec, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type maleeniTokenStream struct {
	lex   *mldriver.Lexer
	kinds []string
	skip  []bool
}

// NewMaleeniTokenStream scans src with a maleeni lexer. It behaves like NewTokenStream: kind names
// become labels and skip kinds are dropped.
func NewMaleeniTokenStream(lspec *lexical.LexSpec, src io.Reader) (driver.TokenStream, error) {
	clspec, err := CompileMaleeni(lspec)
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), src)
	if err != nil {
		return nil, err
	}

	skipKinds := map[string]struct{}{}
	for _, k := range lspec.SkipKinds() {
		skipKinds[k] = struct{}{}
	}
	kinds := make([]string, len(clspec.KindNames))
	skip := make([]bool, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}
		kinds[i] = k.String()
		_, skip[i] = skipKinds[k.String()]
	}

	return &maleeniTokenStream{
		lex:   lex,
		kinds: kinds,
		skip:  skip,
	}, nil
}

func (s *maleeniTokenStream) Next() (*driver.Token, error) {
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return nil, &LexError{
				Row:    tok.Row + 1,
				Col:    tok.Col + 1,
				Lexeme: string(tok.Lexeme),
			}
		}
		if tok.EOF {
			return eofToken(tok.Row + 1), nil
		}
		if s.skip[tok.KindID] {
			continue
		}
		return &driver.Token{
			Label: s.kinds[tok.KindID],
			Text:  string(tok.Lexeme),
			Row:   tok.Row + 1,
			Col:   tok.Col + 1,
		}, nil
	}
}
