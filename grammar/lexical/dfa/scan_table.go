package dfa

import (
	"golang.org/x/exp/slices"
)

// ScanTable is a DFA flattened for table-driven scanning. Transitions is a row-major
// state × symbol table; missing transitions and non-accepting kinds hold StateNil.
type ScanTable struct {
	Symbols     []rune
	StateCount  int
	Transitions []int
	Kinds       []int
}

func (d *DFA) ScanTable() *ScanTable {
	tab := &ScanTable{
		Symbols:     d.Symbols(),
		StateCount:  len(d.states),
		Transitions: make([]int, 0, len(d.states)*len(d.symbols)),
		Kinds:       make([]int, len(d.states)),
	}
	for id, s := range d.states {
		tab.Transitions = append(tab.Transitions, s.next...)
		tab.Kinds[id] = StateNil
		if s.accepting {
			tab.Kinds[id] = s.kind
		}
	}
	return tab
}

func (t *ScanTable) ColCount() int {
	return len(t.Symbols)
}

func (t *ScanTable) Next(s int, c rune) (int, bool) {
	col, ok := slices.BinarySearch(t.Symbols, c)
	if !ok {
		return StateNil, false
	}
	next := t.Transitions[s*len(t.Symbols)+col]
	return next, next != StateNil
}

// Kind returns the kind accepted in s.
func (t *ScanTable) Kind(s int) (int, bool) {
	return t.Kinds[s], t.Kinds[s] != StateNil
}
