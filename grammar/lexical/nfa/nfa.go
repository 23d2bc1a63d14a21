package nfa

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

const StateStart = 0

// SymbolEpsilon names the column of ε-transitions in a transition table.
const SymbolEpsilon = "EPSILON"

// Edge is a transition to the state To, either on Symbol or, when Epsilon is set, on no input.
type Edge struct {
	Symbol  rune
	Epsilon bool
	To      int
}

type State struct {
	Edges     []Edge
	Accepting bool

	// Kind tells which pattern an accepting state belongs to (see Merge).
	Kind int
}

// NFA is a nondeterministic automaton. States are addressed by their index and the start state
// is always StateStart.
type NFA struct {
	states  []State
	symbols []rune
}

// Compile builds the Thompson NFA of a regular expression. Its only accepting state is the last
// one, and its kind is 0.
func Compile(pattern string) (*NFA, error) {
	toks, err := newLexer(pattern).tokenize()
	if err != nil {
		return nil, err
	}
	p := newParser(pattern, toks)
	frag, err := p.parse()
	if err != nil {
		tracer().Errorf("regex %q: %v", pattern, err)
		return nil, err
	}

	states := make([]State, frag.len())
	for i, es := range frag.edges {
		states[i].Edges = es
	}
	states[frag.end()].Accepting = true

	symbols := make([]rune, 0, len(p.symbols))
	for c := range p.symbols {
		symbols = append(symbols, c)
	}
	slices.Sort(symbols)

	tracer().Debugf("regex %q: NFA with %d state(s) over %d symbol(s)", pattern, len(states), len(symbols))
	return &NFA{
		states:  states,
		symbols: symbols,
	}, nil
}

// Merge combines automata into one whose new start state has an ε-transition to the start of
// each operand. The accepting states of the i-th operand report kind i.
func Merge(nfas ...*NFA) *NFA {
	states := []State{{}}
	var symbols []rune
	for kind, n := range nfas {
		offset := len(states)
		states[StateStart].Edges = append(states[StateStart].Edges, epsilonTo(offset))
		for _, s := range n.states {
			edges := make([]Edge, len(s.Edges))
			for i, e := range s.Edges {
				e.To += offset
				edges[i] = e
			}
			states = append(states, State{
				Edges:     edges,
				Accepting: s.Accepting,
				Kind:      kind,
			})
		}
		symbols = append(symbols, n.symbols...)
	}
	slices.Sort(symbols)
	return &NFA{
		states:  states,
		symbols: slices.Compact(symbols),
	}
}

func (n *NFA) Len() int {
	return len(n.states)
}

func (n *NFA) State(s int) State {
	return n.states[s]
}

// Symbols returns the sorted input alphabet.
func (n *NFA) Symbols() []rune {
	return slices.Clone(n.symbols)
}

// Step returns the states reachable from s by consuming c.
func (n *NFA) Step(s int, c rune) []int {
	var next []int
	for _, e := range n.states[s].Edges {
		if !e.Epsilon && e.Symbol == c {
			next = append(next, e.To)
		}
	}
	return next
}

// Epsilon returns the states reachable from s by a single ε-transition.
func (n *NFA) Epsilon(s int) []int {
	var next []int
	for _, e := range n.states[s].Edges {
		if e.Epsilon {
			next = append(next, e.To)
		}
	}
	return next
}

// TransitionTable is a printable view of an automaton. Columns holds the symbol names; each cell of
// Rows lists the target states of one transition separated by ", ".
type TransitionTable struct {
	Columns   []string
	Rows      [][]string
	Accepting []bool
}

// TransitionTable returns one row per state and one column per symbol followed by the ε column.
func (n *NFA) TransitionTable() *TransitionTable {
	tab := &TransitionTable{
		Rows:      make([][]string, len(n.states)),
		Accepting: make([]bool, len(n.states)),
	}
	for _, c := range n.symbols {
		tab.Columns = append(tab.Columns, SymbolString(c))
	}
	tab.Columns = append(tab.Columns, SymbolEpsilon)

	for s := range n.states {
		row := make([]string, 0, len(tab.Columns))
		for _, c := range n.symbols {
			row = append(row, joinStates(n.Step(s, c)))
		}
		row = append(row, joinStates(n.Epsilon(s)))
		tab.Rows[s] = row
		tab.Accepting[s] = n.states[s].Accepting
	}
	return tab
}

func joinStates(states []int) string {
	var b strings.Builder
	for i, s := range states {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(s))
	}
	return b.String()
}

// SymbolString renders an alphabet symbol for tables. Invisible characters are quoted.
func SymbolString(c rune) string {
	if unicode.IsGraphic(c) && !unicode.IsSpace(c) {
		return string(c)
	}
	return strconv.QuoteRune(c)
}
