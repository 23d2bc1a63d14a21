package nfa

import (
	"unicode"
)

type tokenKind string

const (
	tokenKindChar       tokenKind = "char"
	tokenKindAlt        tokenKind = "|"
	tokenKindConcat     tokenKind = "."
	tokenKindRepeat     tokenKind = "*"
	tokenKindRepeatOne  tokenKind = "+"
	tokenKindOption     tokenKind = "?"
	tokenKindGroupOpen  tokenKind = "("
	tokenKindGroupClose tokenKind = ")"
)

const (
	bExpOpen    = '['
	bExpClose   = ']'
	escape      = '\\'
	charRange   = '-'
	epsilonMark = '@'
)

type token struct {
	kind tokenKind
	char rune
	col  int
}

func newToken(kind tokenKind, char rune, col int) *token {
	return &token{
		kind: kind,
		char: char,
		col:  col,
	}
}

func (t *token) isOperand() bool {
	return t.kind == tokenKindChar || t.kind == tokenKindGroupOpen
}

func (t *token) closesOperand() bool {
	switch t.kind {
	case tokenKindChar, tokenKindGroupClose, tokenKindRepeat, tokenKindRepeatOne, tokenKindOption:
		return true
	}
	return false
}

var operators = map[rune]tokenKind{
	'|': tokenKindAlt,
	'.': tokenKindConcat,
	'*': tokenKindRepeat,
	'+': tokenKindRepeatOne,
	'?': tokenKindOption,
	'(': tokenKindGroupOpen,
	')': tokenKindGroupClose,
}

func isFiller(c rune) bool {
	return c == epsilonMark || unicode.IsSpace(c)
}

// lexer turns a pattern into a token sequence. Bracket expressions are rewritten into a
// parenthesised union of their members, and concatenation operators are made explicit.
type lexer struct {
	pattern string
	src     []rune
	pos     int
}

func newLexer(pattern string) *lexer {
	return &lexer{
		pattern: pattern,
		src:     []rune(pattern),
	}
}

func (l *lexer) tokenize() ([]*token, error) {
	var toks []*token
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		col := l.pos + 1
		switch {
		case c == escape:
			lit, err := l.readEscaped()
			if err != nil {
				return nil, err
			}
			toks = append(toks, newToken(tokenKindChar, lit, col))
			continue
		case isFiller(c):
		case c == bExpOpen:
			l.pos++
			members, err := l.readBracketExpression(col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, members...)
			continue
		case c == bExpClose:
			return nil, l.errorf(col, synErrBExpNoInitiator)
		default:
			if kind, ok := operators[c]; ok {
				toks = append(toks, newToken(kind, c, col))
			} else {
				toks = append(toks, newToken(tokenKindChar, c, col))
			}
		}
		l.pos++
	}
	return insertConcat(toks), nil
}

// readEscaped consumes a backslash and the character it makes literal.
func (l *lexer) readEscaped() (rune, error) {
	col := l.pos + 1
	if l.pos+1 >= len(l.src) {
		return 0, l.errorf(col, synErrIncompletedEscSeq)
	}
	c := l.src[l.pos+1]
	l.pos += 2
	return c, nil
}

// readBracketExpression reads up to and including the closing bracket. Inside the brackets every
// character except '\', '-' and ']' is literal.
func (l *lexer) readBracketExpression(openCol int) ([]*token, error) {
	var members []rune
	for {
		if l.pos >= len(l.src) {
			return nil, l.errorf(openCol, synErrBExpUnclosed)
		}
		c := l.src[l.pos]
		if c == bExpClose {
			l.pos++
			break
		}
		if isFiller(c) {
			l.pos++
			continue
		}
		from, err := l.readBracketChar()
		if err != nil {
			return nil, err
		}
		if l.pos+1 < len(l.src) && l.src[l.pos] == charRange && l.src[l.pos+1] != bExpClose {
			rangeCol := l.pos + 1
			l.pos++
			to, err := l.readBracketChar()
			if err != nil {
				return nil, err
			}
			if to < from {
				return nil, l.errorf(rangeCol, synErrRangeInvalidOrder)
			}
			for r := from; r <= to; r++ {
				members = append(members, r)
			}
			continue
		}
		members = append(members, from)
	}
	if len(members) == 0 {
		return nil, l.errorf(openCol, synErrBExpNoElem)
	}

	toks := []*token{newToken(tokenKindGroupOpen, bExpOpen, openCol)}
	for i, m := range members {
		if i > 0 {
			toks = append(toks, newToken(tokenKindAlt, '|', openCol))
		}
		toks = append(toks, newToken(tokenKindChar, m, openCol))
	}
	return append(toks, newToken(tokenKindGroupClose, bExpClose, openCol)), nil
}

func (l *lexer) readBracketChar() (rune, error) {
	if l.src[l.pos] == escape {
		return l.readEscaped()
	}
	c := l.src[l.pos]
	l.pos++
	return c, nil
}

func (l *lexer) errorf(col int, cause error) error {
	return &SyntaxError{
		Pattern: l.pattern,
		Col:     col,
		Cause:   cause,
	}
}

// insertConcat adds a concatenation operator between every pair of adjacent tokens where the
// first closes an operand and the second opens one.
func insertConcat(toks []*token) []*token {
	if len(toks) == 0 {
		return toks
	}
	result := make([]*token, 0, len(toks)*2)
	result = append(result, toks[0])
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		if prev.closesOperand() && cur.isOperand() {
			result = append(result, newToken(tokenKindConcat, '.', cur.col))
		}
		result = append(result, cur)
	}
	return result
}
