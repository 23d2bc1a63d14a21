package lexer

import (
	"fmt"
	"io"

	"github.com/nihei9/slrx/driver"
	"github.com/nihei9/slrx/grammar"
	"github.com/nihei9/slrx/grammar/lexical"
)

// LexError reports a lexeme no kind accepts. Row and Col are 1-origin.
type LexError struct {
	Row    int
	Col    int
	Lexeme string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%v:%v: invalid token: %q", e.Row, e.Col, e.Lexeme)
}

type tokenStream struct {
	lex  *Lexer
	spec LexSpec
}

// NewTokenStream feeds the tokens a compiled lexical specification scans from src to the parser.
// Kind names become token labels, and kinds marked as skip are dropped.
func NewTokenStream(clspec *lexical.CompiledLexSpec, src io.Reader) (driver.TokenStream, error) {
	s := NewLexSpec(clspec)
	lex, err := NewLexer(s, src)
	if err != nil {
		return nil, err
	}
	return &tokenStream{
		lex:  lex,
		spec: s,
	}, nil
}

func (s *tokenStream) Next() (*driver.Token, error) {
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
		if s.spec.Skip(tok.KindID) {
			continue
		}
		return &driver.Token{
			Label: s.spec.KindName(tok.KindID),
			Text:  string(tok.Lexeme),
			Row:   tok.Row + 1,
			Col:   tok.Col + 1,
		}, nil
	}
}

func eofToken(row int) *driver.Token {
	return &driver.Token{
		Label: grammar.SymbolEOF,
		Row:   row,
	}
}
