package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/slrx/grammar"
)

// Token is a terminal fed to the parser. Label is matched against the terminals of a grammar, and
// Text is the literal value carried into the leaf node. Row and Col are 1-origin; 0 means unknown.
type Token struct {
	Label string
	Text  string
	Row   int
	Col   int
}

func (t *Token) EOF() bool {
	return t.Label == grammar.SymbolEOF
}

func (t *Token) String() string {
	if t.Text == "" {
		return t.Label
	}
	return fmt.Sprintf("%v:%v", t.Label, t.Text)
}

func newEOFToken(row int) *Token {
	return &Token{
		Label: grammar.SymbolEOF,
		Row:   row,
	}
}

// TokenStream supplies tokens to the parser. After the input is exhausted, Next keeps returning the
// end-of-input token.
type TokenStream interface {
	Next() (*Token, error)
}

type labelValueStream struct {
	s   *bufio.Scanner
	row int
	eof bool
}

// NewLabelValueStream reads one LABEL:VALUE pair per line. The label and the value are trimmed, and the
// value may contain ':'. A line without ':' is a token with an empty value. Blank lines are skipped.
func NewLabelValueStream(src io.Reader) TokenStream {
	return &labelValueStream{
		s: bufio.NewScanner(src),
	}
}

func (s *labelValueStream) Next() (*Token, error) {
	for !s.eof {
		if !s.s.Scan() {
			if err := s.s.Err(); err != nil {
				return nil, err
			}
			s.eof = true
			break
		}
		s.row++
		line := strings.TrimSpace(s.s.Text())
		if line == "" {
			continue
		}
		return ParseLabelValue(line, s.row)
	}
	return newEOFToken(s.row + 1), nil
}

// ParseLabelValue parses a LABEL:VALUE pair. The end-of-input label cannot be written explicitly.
func ParseLabelValue(line string, row int) (*Token, error) {
	label, value, _ := strings.Cut(line, ":")
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%v: a token needs a label: %q", row, line)
	}
	if label == grammar.SymbolEOF {
		return nil, fmt.Errorf("%v: %v is reserved for the end of input: %q", row, grammar.SymbolEOF, line)
	}
	return &Token{
		Label: label,
		Text:  strings.TrimSpace(value),
		Row:   row,
	}, nil
}

type sliceStream struct {
	toks []*Token
	pos  int
}

// NewSliceStream returns a stream over tokens already in memory. The end-of-input token is appended
// automatically.
func NewSliceStream(toks []*Token) TokenStream {
	return &sliceStream{
		toks: toks,
	}
}

func (s *sliceStream) Next() (*Token, error) {
	if s.pos >= len(s.toks) {
		return newEOFToken(0), nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}
