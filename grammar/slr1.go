package grammar

import (
	"fmt"
	"strings"
)

type ConflictKind string

const (
	ConflictKindShiftReduce  = ConflictKind("shift/reduce")
	ConflictKindReduceReduce = ConflictKind("reduce/reduce")
)

// Conflict is an SLR(1) collision. For a shift/reduce conflict, Items holds the reduce item; for a
// reduce/reduce conflict, it holds the item keeping the entry followed by the rejected one.
type Conflict struct {
	Kind   ConflictKind
	State  int
	Symbol string
	Items  []Item

	// NextState is the shift target of a shift/reduce conflict.
	NextState int
	Reason    string
}

func (c *Conflict) Error() string {
	return c.Reason
}

// genSLR1Entries fills the reduce maps with FOLLOW of each reduce item's LHS. When two reduce items
// claim the same look-ahead, the item found first keeps the entry. Shift/reduce overlaps are checked
// once every reduce map is complete.
func (a *Automaton) genSLR1Entries() error {
	for _, state := range a.states {
		for idx, item := range state.Items {
			if item.Kind != ItemKindReduce {
				continue
			}
			flw, err := a.gram.follow.find(item.LHS)
			if err != nil {
				return err
			}
			lookAheads := flw.lookAheads()
			a.gram.symTab.sort(lookAheads)
			for _, sym := range lookAheads {
				if prev, ok := state.reduce[sym]; ok {
					kept := state.Items[prev]
					a.conflicts = append(a.conflicts, &Conflict{
						Kind:   ConflictKindReduceReduce,
						State:  state.ID,
						Symbol: sym,
						Items:  []Item{kept, item},
						Reason: fmt.Sprintf("state %v: reduce/reduce conflict on %v between [%v] and [%v]",
							state.ID, sym, a.ItemString(kept), a.ItemString(item)),
					})
					continue
				}
				state.reduce[sym] = idx
				state.reduceSyms = append(state.reduceSyms, sym)
			}
		}
	}

	for _, state := range a.states {
		for _, sym := range state.reduceSyms {
			next, ok := state.shift[sym]
			if !ok {
				continue
			}
			item := state.Items[state.reduce[sym]]
			a.conflicts = append(a.conflicts, &Conflict{
				Kind:      ConflictKindShiftReduce,
				State:     state.ID,
				Symbol:    sym,
				Items:     []Item{item},
				NextState: next,
				Reason: fmt.Sprintf("state %v: shift/reduce conflict on %v between shift to state %v and [%v]",
					state.ID, sym, next, a.ItemString(item)),
			})
		}
	}

	for _, c := range a.conflicts {
		tracer().Infof("%v", c.Reason)
	}

	return nil
}

// IsSLR reports whether the grammar is SLR(1), that is, no conflict was recorded.
func (a *Automaton) IsSLR() bool {
	return len(a.conflicts) == 0
}

func (a *Automaton) Conflicts() []*Conflict {
	return append([]*Conflict{}, a.conflicts...)
}

// Reason describes every conflict, one per line. It is empty for an SLR(1) grammar.
func (a *Automaton) Reason() string {
	var b strings.Builder
	for i, c := range a.conflicts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.Reason)
	}
	return b.String()
}
