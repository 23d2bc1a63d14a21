package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/slrx/grammar"
)

type ErrorKind string

const (
	ErrKindSyntax           = ErrorKind("parse error")
	ErrKindTreeConstruction = ErrorKind("tree construction error")
)

// ParseError describes why parsing stopped. State is the state on top of the stack, and Token is the
// look-ahead at that time.
type ParseError struct {
	Kind    ErrorKind
	State   int
	Token   *Token
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Token != nil && e.Token.Row > 0 {
		fmt.Fprintf(&b, "%v: ", e.Token.Row)
	}
	fmt.Fprintf(&b, "%v: %v", e.Kind, e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Step is one entry of a parse trace.
type Step struct {
	Action grammar.ActionType

	// State is the state on top of the stack before the step, and Symbol is the look-ahead.
	State  int
	Symbol string

	// Production is the reduced production of reduce and accept steps.
	Production *grammar.Production

	// States and Symbols are the stacks after the step. Symbols has one fewer element than States
	// because the initial state has no symbol.
	States  []int
	Symbols []string
}

func (s *Step) String() string {
	var b strings.Builder
	switch s.Action {
	case grammar.ActionTypeShift:
		fmt.Fprintf(&b, "shift %v", s.Symbol)
	case grammar.ActionTypeReduce:
		fmt.Fprintf(&b, "reduce %v", s.Production)
	case grammar.ActionTypeAccept:
		fmt.Fprintf(&b, "accept")
	default:
		fmt.Fprintf(&b, "error on %v", s.Symbol)
	}
	fmt.Fprintf(&b, " | states:")
	for _, state := range s.States {
		fmt.Fprintf(&b, " %v", state)
	}
	fmt.Fprintf(&b, " | symbols:")
	for _, sym := range s.Symbols {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

// Result is the outcome of one parse. Exactly one of Tree and Err is set when the default semantic
// action set is used; with a custom set, Tree stays nil.
type Result struct {
	Accepted bool
	Tree     *Node
	Err      *ParseError
	Steps    []*Step
}

type ParserOption func(p *Parser) error

// Trace makes the parser record a Step for every action.
func Trace() ParserOption {
	return func(p *Parser) error {
		p.trace = true
		return nil
	}
}

// SemanticAction replaces the tree builder. The set is shared by every Parse call of the parser.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		if semAct == nil {
			return fmt.Errorf("a semantic action set must be non-nil")
		}
		p.semAct = semAct
		return nil
	}
}

// Parser drives an automaton over token streams. The automaton is never modified, so one automaton
// can back any number of parsers.
type Parser struct {
	automaton *grammar.Automaton
	trace     bool
	semAct    SemanticActionSet
}

func NewParser(automaton *grammar.Automaton, opts ...ParserOption) (*Parser, error) {
	if automaton == nil {
		return nil, fmt.Errorf("an automaton must be non-nil")
	}
	p := &Parser{
		automaton: automaton,
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

type parseContext struct {
	stateStack []int
	symStack   []string
	semAct     SemanticActionSet
	treeAct    *SyntaxTreeActionSet
	result     *Result
}

func (c *parseContext) push(state int, sym string) {
	c.stateStack = append(c.stateStack, state)
	if sym != "" {
		c.symStack = append(c.symStack, sym)
	}
}

func (c *parseContext) pop(n int) {
	c.stateStack = c.stateStack[:len(c.stateStack)-n]
	c.symStack = c.symStack[:len(c.symStack)-n]
}

func (c *parseContext) top() int {
	return c.stateStack[len(c.stateStack)-1]
}

// Parse returns an error only when the token stream fails. Parse failures are reported through
// Result.Err.
func (p *Parser) Parse(ts TokenStream) (*Result, error) {
	c := &parseContext{
		semAct: p.semAct,
		result: &Result{},
	}
	if c.semAct == nil {
		c.treeAct = NewSyntaxTreeActionSet()
		c.semAct = c.treeAct
	}

	c.push(p.automaton.InitialState(), "")
	tok, err := ts.Next()
	if err != nil {
		return nil, err
	}

	for {
		state := c.top()
		act := p.automaton.Action(state, tok.Label)
		switch act.Type {
		case grammar.ActionTypeShift:
			c.push(act.State, tok.Label)
			c.semAct.Shift(tok)
			p.record(c, act, state, tok, nil)
			tracer().Debugf("state %v: shift %v", state, tok)

			tok, err = ts.Next()
			if err != nil {
				return nil, err
			}
		case grammar.ActionTypeReduce:
			prod := act.Production
			n := prod.Len()
			if n >= len(c.stateStack) {
				return p.fail(c, ErrKindTreeConstruction, state, tok, errStackUnderflow,
					fmt.Sprintf("cannot pop %v entries for %v", n, prod)), nil
			}
			err := c.semAct.Reduce(prod)
			if err != nil {
				return p.fail(c, ErrKindTreeConstruction, state, tok, err, err.Error()), nil
			}
			c.pop(n)
			next, ok := p.automaton.GoTo(c.top(), prod.LHS)
			if !ok {
				return p.fail(c, ErrKindTreeConstruction, state, tok, nil,
					fmt.Sprintf("no GOTO entry for %v in state %v", prod.LHS, c.top())), nil
			}
			c.push(next, prod.LHS)
			p.record(c, act, state, tok, prod)
			tracer().Debugf("state %v: reduce %v, goto %v", state, prod, next)
		case grammar.ActionTypeAccept:
			err := c.semAct.Accept()
			if err != nil {
				return p.fail(c, ErrKindTreeConstruction, state, tok, err, err.Error()), nil
			}
			p.record(c, act, state, tok, act.Production)
			c.result.Accepted = true
			if c.treeAct != nil {
				c.result.Tree = c.treeAct.Tree()
			}
			tracer().Debugf("state %v: accept", state)
			return c.result, nil
		default:
			p.record(c, act, state, tok, nil)
			msg := fmt.Sprintf("no shift or reduce for %v in state %v", tok.Label, state)
			if !p.automaton.Grammar().IsTerminal(tok.Label) {
				msg = fmt.Sprintf("unknown token %v in state %v", tok.Label, state)
			}
			return p.fail(c, ErrKindSyntax, state, tok, nil, msg), nil
		}
	}
}

func (p *Parser) fail(c *parseContext, kind ErrorKind, state int, tok *Token, cause error, msg string) *Result {
	c.result.Err = &ParseError{
		Kind:    kind,
		State:   state,
		Token:   tok,
		Message: msg,
		Cause:   cause,
	}
	c.result.Tree = nil
	tracer().Infof("%v", c.result.Err)
	return c.result
}

func (p *Parser) record(c *parseContext, act grammar.Action, state int, tok *Token, prod *grammar.Production) {
	if !p.trace {
		return
	}
	c.result.Steps = append(c.result.Steps, &Step{
		Action:     act.Type,
		State:      state,
		Symbol:     tok.Label,
		Production: prod,
		States:     append([]int{}, c.stateStack...),
		Symbols:    append([]string{}, c.symStack...),
	})
}
