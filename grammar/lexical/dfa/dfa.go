package dfa

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/nihei9/slrx/grammar/lexical/nfa"
	"golang.org/x/exp/slices"
)

const (
	StateStart = 0

	// StateNil stands for a missing transition.
	StateNil = -1
)

type state struct {
	next      []int
	accepting bool
	kind      int

	// members are the states this one was built from: NFA states after subset construction and
	// DFA states after minimization. They are sorted.
	members []int
}

// DFA is a deterministic automaton over a fixed alphabet. Transitions are stored per symbol index,
// StateNil marking a missing one.
type DFA struct {
	symbols []rune
	states  []*state
}

// FromNFA runs the subset construction. State 0 is the ε-closure of the NFA start state. States are
// numbered in the order they are discovered, visiting symbols in alphabet order.
func FromNFA(n *nfa.NFA) *DFA {
	d := &DFA{
		symbols: n.Symbols(),
	}
	known := map[string]int{}
	add := func(members []int) int {
		key := membersKey(members)
		if id, ok := known[key]; ok {
			return id
		}
		s := &state{
			next:    newTransitions(len(d.symbols)),
			members: members,
		}
		for _, m := range members {
			ns := n.State(m)
			if !ns.Accepting {
				continue
			}
			if !s.accepting || ns.Kind < s.kind {
				s.kind = ns.Kind
			}
			s.accepting = true
		}
		id := len(d.states)
		d.states = append(d.states, s)
		known[key] = id
		return id
	}

	symIdx := make(map[rune]int, len(d.symbols))
	for i, c := range d.symbols {
		symIdx[c] = i
	}
	closures := make([][]int, n.Len())
	closure := func(s int) []int {
		if closures[s] == nil {
			closures[s] = epsilonClosure(n, s)
		}
		return closures[s]
	}

	add(closure(nfa.StateStart))
	for cur := 0; cur < len(d.states); cur++ {
		s := d.states[cur]
		moves := map[int]*treeset.Set{}
		for _, m := range s.members {
			for _, e := range n.State(m).Edges {
				if e.Epsilon {
					continue
				}
				i := symIdx[e.Symbol]
				targets, ok := moves[i]
				if !ok {
					targets = treeset.NewWith(utils.IntComparator)
					moves[i] = targets
				}
				for _, t := range closure(e.To) {
					targets.Add(t)
				}
			}
		}
		for i := range d.symbols {
			targets, ok := moves[i]
			if !ok {
				continue
			}
			s.next[i] = add(setToInts(targets))
		}
	}
	tracer().Debugf("subset construction: %d NFA state(s) -> %d DFA state(s)", n.Len(), len(d.states))
	return d
}

// epsilonClosure returns the sorted set of states reachable from s through ε-transitions only,
// s included.
func epsilonClosure(n *nfa.NFA, s int) []int {
	closure := treeset.NewWith(utils.IntComparator, s)
	stack := []int{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.Epsilon(cur) {
			if closure.Contains(next) {
				continue
			}
			closure.Add(next)
			stack = append(stack, next)
		}
	}
	return setToInts(closure)
}

func setToInts(set *treeset.Set) []int {
	ints := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		ints = append(ints, v.(int))
	}
	return ints
}

func membersKey(members []int) string {
	var b strings.Builder
	for _, m := range members {
		b.WriteString(strconv.Itoa(m))
		b.WriteByte(',')
	}
	return b.String()
}

func newTransitions(n int) []int {
	next := make([]int, n)
	for i := range next {
		next[i] = StateNil
	}
	return next
}

func (d *DFA) Len() int {
	return len(d.states)
}

// Symbols returns the sorted input alphabet.
func (d *DFA) Symbols() []rune {
	return slices.Clone(d.symbols)
}

func (d *DFA) symbolIndex(c rune) (int, bool) {
	return slices.BinarySearch(d.symbols, c)
}

// Next returns the successor of s on c.
func (d *DFA) Next(s int, c rune) (int, bool) {
	i, ok := d.symbolIndex(c)
	if !ok {
		return StateNil, false
	}
	next := d.states[s].next[i]
	return next, next != StateNil
}

func (d *DFA) Accepting(s int) bool {
	return d.states[s].accepting
}

// Kind returns the smallest pattern kind among the accepting members of s.
func (d *DFA) Kind(s int) (int, bool) {
	st := d.states[s]
	return st.kind, st.accepting
}

// Members returns the sorted states of the previous automaton that s stands for.
func (d *DFA) Members(s int) []int {
	return slices.Clone(d.states[s].members)
}

// Match reports whether the automaton accepts the whole input.
func (d *DFA) Match(input string) bool {
	s := StateStart
	for _, c := range input {
		next, ok := d.Next(s, c)
		if !ok {
			return false
		}
		s = next
	}
	return d.Accepting(s)
}

// LongestMatch returns the length in bytes of the longest accepted prefix of input and the kind
// of that prefix. n is -1 when no prefix is accepted.
func (d *DFA) LongestMatch(input string) (n int, kind int) {
	n = -1
	s := StateStart
	if k, ok := d.Kind(s); ok {
		n, kind = 0, k
	}
	for i := 0; i < len(input); {
		c, size := utf8.DecodeRuneInString(input[i:])
		next, ok := d.Next(s, c)
		if !ok {
			break
		}
		s = next
		i += size
		if k, ok := d.Kind(s); ok {
			n, kind = i, k
		}
	}
	return n, kind
}

// TransitionTable returns one row per state and one column per symbol. A cell holds the target
// state or is empty.
func (d *DFA) TransitionTable() *nfa.TransitionTable {
	tab := &nfa.TransitionTable{
		Rows:      make([][]string, len(d.states)),
		Accepting: make([]bool, len(d.states)),
	}
	for _, c := range d.symbols {
		tab.Columns = append(tab.Columns, nfa.SymbolString(c))
	}
	for id, s := range d.states {
		row := make([]string, len(d.symbols))
		for i, next := range s.next {
			if next != StateNil {
				row[i] = strconv.Itoa(next)
			}
		}
		tab.Rows[id] = row
		tab.Accepting[id] = s.accepting
	}
	return tab
}
