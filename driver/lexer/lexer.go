package lexer

import (
	"io"
	"unicode/utf8"
)

type StateID int

func (id StateID) Int() int {
	return int(id)
}

type KindID int

func (id KindID) Int() int {
	return int(id)
}

// KindIDNil is the kind of EOF and invalid tokens.
const KindIDNil = KindID(0)

type LexSpec interface {
	InitialState() StateID
	NextState(state StateID, c rune) (StateID, bool)
	Accept(state StateID) (KindID, bool)
	KindName(kind KindID) string
	Skip(kind KindID) bool
}

// Token representes a token.
type Token struct {
	KindID KindID

	// Row is a row number where a lexeme appears.
	Row int

	// Col is a column number where a lexeme appears.
	// Note that Col is counted in code points, not bytes.
	Col int

	// Lexeme is a byte sequence matched a pattern of a lexical specification.
	Lexeme []byte

	// When this field is true, it means the token is the EOF token.
	EOF bool

	// When this field is true, it means the token is an error token.
	Invalid bool
}

type lexerState struct {
	srcPtr int
	row    int
	col    int
}

// Lexer splits a source into the longest lexemes the lexical specification accepts. When two kinds
// accept the same lexeme, the one with the smaller kind ID wins.
type Lexer struct {
	spec              LexSpec
	src               []byte
	state             lexerState
	lastAcceptedState lexerState
	tokBuf            []*Token
}

// NewLexer returns a new lexer.
func NewLexer(spec LexSpec, src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		spec: spec,
		src:  b,
	}, nil
}

// Next returns a next token. Consecutive characters no kind accepts are merged into one invalid token.
func (l *Lexer) Next() (*Token, error) {
	if len(l.tokBuf) > 0 {
		tok := l.tokBuf[0]
		l.tokBuf = l.tokBuf[1:]
		return tok, nil
	}

	tok := l.next()
	if !tok.Invalid {
		return tok, nil
	}
	errTok := tok
	for {
		tok = l.next()
		if !tok.Invalid {
			break
		}
		errTok.Lexeme = append(errTok.Lexeme, tok.Lexeme...)
	}
	l.tokBuf = append(l.tokBuf, tok)

	return errTok, nil
}

func (l *Lexer) next() *Token {
	state := l.spec.InitialState()
	buf := []byte{}
	row := l.state.row
	col := l.state.col
	var tok *Token
	for {
		c, size, eof := l.read()
		if eof {
			if tok != nil {
				l.revert()
				return tok
			}
			// When `buf` has unaccepted data and reads the EOF, the lexer treats the buffered data as an invalid token.
			if len(buf) > 0 {
				return &Token{
					Lexeme:  buf,
					Row:     row,
					Col:     col,
					Invalid: true,
				}
			}
			return &Token{
				Row: row,
				Col: col,
				EOF: true,
			}
		}
		buf = append(buf, l.src[l.state.srcPtr-size:l.state.srcPtr]...)
		nextState, ok := l.spec.NextState(state, c)
		if !ok {
			if tok != nil {
				l.revert()
				return tok
			}
			return &Token{
				Lexeme:  buf,
				Row:     row,
				Col:     col,
				Invalid: true,
			}
		}
		state = nextState
		if kindID, ok := l.spec.Accept(state); ok {
			tok = &Token{
				KindID: kindID,
				Lexeme: buf,
				Row:    row,
				Col:    col,
			}
			l.accept()
		}
	}
}

// read decodes the next code point. A malformed byte is read alone as utf8.RuneError.
func (l *Lexer) read() (rune, int, bool) {
	if l.state.srcPtr >= len(l.src) {
		return 0, 0, true
	}

	c, size := utf8.DecodeRune(l.src[l.state.srcPtr:])
	l.state.srcPtr += size

	// The driver treats LF as the end of lines.
	if c == '\n' {
		l.state.row++
		l.state.col = 0
	} else {
		l.state.col++
	}

	return c, size, false
}

// accept saves the current state.
func (l *Lexer) accept() {
	l.lastAcceptedState = l.state
}

// revert reverts the lexer state to the last accepted state.
//
// We must not call this function consecutively.
func (l *Lexer) revert() {
	l.state = l.lastAcceptedState
}
