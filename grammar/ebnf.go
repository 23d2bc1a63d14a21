package grammar

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	verr "github.com/nihei9/slrx/error"
	"golang.org/x/exp/ebnf"
)

// FromEBNF reads a grammar in the EBNF dialect of the Go specification and converts it to plain
// productions:
//
//	[x]  becomes  N -> x | EPSILON
//	{x}  becomes  N -> N x | EPSILON
//	(x)  becomes  N -> x
//
// Productions with lower-case names are lexical and become terminals, as do quoted tokens. Only
// productions reachable from start are converted; start is the start symbol of the result.
func FromEBNF(filename string, src io.Reader, start string) (*Grammar, error) {
	eg, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse an EBNF grammar: %w", err)
	}
	err = ebnf.Verify(eg, start)
	if err != nil {
		return nil, fmt.Errorf("invalid EBNF grammar: %w", err)
	}

	c := &ebnfConverter{
		src:     eg,
		visited: map[string]struct{}{},
		counts:  map[string]int{},
	}
	c.enqueue(start)
	for len(c.queue) > 0 {
		name := c.queue[0]
		c.queue = c.queue[1:]
		prod := eg[name]
		var alts [][]string
		if prod.Expr == nil {
			alts = [][]string{{SymbolEpsilon}}
		} else {
			alts, err = c.alternatives(name, prod.Expr)
			if err != nil {
				return nil, err
			}
		}
		c.emit(name, alts)
	}
	if len(c.errs) > 0 {
		return nil, c.errs
	}

	tracer().Debugf("EBNF: %d alternative(s) from %d production(s)", len(c.alts), len(c.visited))

	return newGrammar(start, c.alts)
}

type ebnfConverter struct {
	src     ebnf.Grammar
	queue   []string
	visited map[string]struct{}
	counts  map[string]int
	alts    []*rawAlternative
	errs    verr.SpecErrors
}

func isLexicalName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

func (c *ebnfConverter) enqueue(name string) {
	if _, ok := c.visited[name]; ok {
		return
	}
	c.visited[name] = struct{}{}
	c.queue = append(c.queue, name)
}

func (c *ebnfConverter) emit(lhs string, alts [][]string) {
	for _, rhs := range alts {
		c.alts = append(c.alts, &rawAlternative{
			lhs: lhs,
			rhs: rhs,
		})
	}
}

// freshName derives an unused non-terminal name such as Expr_rep1.
func (c *ebnfConverter) freshName(owner, suffix string) string {
	for {
		c.counts[owner+suffix]++
		name := fmt.Sprintf("%v_%v%v", owner, suffix, c.counts[owner+suffix])
		if _, ok := c.src[name]; !ok {
			return name
		}
	}
}

func (c *ebnfConverter) alternatives(owner string, expr ebnf.Expression) ([][]string, error) {
	if alt, ok := expr.(ebnf.Alternative); ok {
		var alts [][]string
		for _, e := range alt {
			seq, err := c.sequence(owner, e)
			if err != nil {
				return nil, err
			}
			alts = append(alts, seq)
		}
		return alts, nil
	}
	seq, err := c.sequence(owner, expr)
	if err != nil {
		return nil, err
	}
	return [][]string{seq}, nil
}

func (c *ebnfConverter) sequence(owner string, expr ebnf.Expression) ([]string, error) {
	seq, ok := expr.(ebnf.Sequence)
	if !ok {
		sym, err := c.symbol(owner, expr)
		if err != nil {
			return nil, err
		}
		return []string{sym}, nil
	}
	syms := make([]string, 0, len(seq))
	for _, e := range seq {
		sym, err := c.symbol(owner, e)
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}
	return syms, nil
}

func (c *ebnfConverter) symbol(owner string, expr ebnf.Expression) (string, error) {
	switch e := expr.(type) {
	case nil:
		return SymbolEpsilon, nil
	case *ebnf.Name:
		if !isLexicalName(e.String) {
			c.enqueue(e.String)
		}
		return e.String, nil
	case *ebnf.Token:
		if e.String == "" {
			return SymbolEpsilon, nil
		}
		if e.String == SymbolEOF || isEpsilon(e.String) {
			c.errs = append(c.errs, &verr.SpecError{
				Cause:  synErrReservedSymbol,
				Detail: e.String,
				Row:    e.Pos().Line,
				Col:    e.Pos().Column,
			})
		}
		return e.String, nil
	case *ebnf.Group:
		name := c.freshName(owner, "grp")
		alts, err := c.alternatives(owner, e.Body)
		if err != nil {
			return "", err
		}
		c.emit(name, alts)
		return name, nil
	case *ebnf.Option:
		name := c.freshName(owner, "opt")
		alts, err := c.alternatives(owner, e.Body)
		if err != nil {
			return "", err
		}
		c.emit(name, append(alts, []string{SymbolEpsilon}))
		return name, nil
	case *ebnf.Repetition:
		name := c.freshName(owner, "rep")
		alts, err := c.alternatives(owner, e.Body)
		if err != nil {
			return "", err
		}
		for i, alt := range alts {
			alts[i] = append([]string{name}, alt...)
		}
		c.emit(name, append(alts, []string{SymbolEpsilon}))
		return name, nil
	}

	return "", &verr.SpecError{
		Cause:  synErrEBNFUnsupported,
		Detail: fmt.Sprintf("%T", expr),
		Row:    expr.Pos().Line,
		Col:    expr.Pos().Column,
	}
}
