package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"golang.org/x/exp/slices"
)

const stateNumInitial = 0

// State is a state of the LR(0) automaton. Its items are sorted, so two states are equal exactly when
// their item lists are equal.
type State struct {
	ID    int
	Items []Item

	key string

	// shift maps terminals and non-terminals to the next state. The non-terminal part is the GOTO
	// table.
	shift     map[string]int
	shiftSyms []string

	// reduce maps look-ahead symbols to an index into Items.
	reduce     map[string]int
	reduceSyms []string
}

func (s *State) Shift(sym string) (int, bool) {
	next, ok := s.shift[sym]
	return next, ok
}

func (s *State) Reduce(sym string) (Item, bool) {
	idx, ok := s.reduce[sym]
	if !ok {
		return Item{}, false
	}
	return s.Items[idx], true
}

// ShiftSymbols returns the symbols having a transition in the order the transitions were created.
func (s *State) ShiftSymbols() []string {
	return append([]string{}, s.shiftSyms...)
}

// ReduceSymbols returns the look-ahead symbols of the reduce map in the order they were inserted.
func (s *State) ReduceSymbols() []string {
	return append([]string{}, s.reduceSyms...)
}

type stateKey struct {
	Items []Item
}

func genStateKey(items []Item) (string, error) {
	return structhash.Hash(stateKey{Items: items}, 1)
}

// Automaton is the LR(0) automaton of an augmented grammar with SLR(1) reduce entries.
type Automaton struct {
	gram      *Grammar
	states    []*State
	conflicts []*Conflict
}

// BuildAutomaton builds the canonical LR(0) automaton and checks it for SLR(1) conflicts. Conflicts do
// not make the build fail; see IsSLR and Conflicts.
func BuildAutomaton(gram *Grammar) (*Automaton, error) {
	if gram == nil {
		return nil, fmt.Errorf("grammar must be non-nil")
	}
	a := &Automaton{
		gram: gram,
	}
	err := a.genLR0Automaton()
	if err != nil {
		return nil, err
	}
	err = a.genSLR1Entries()
	if err != nil {
		return nil, err
	}
	tracer().Infof("automaton: %d state(s), %d conflict(s)", len(a.states), len(a.conflicts))
	return a, nil
}

func (a *Automaton) genLR0Automaton() error {
	prods := a.gram.prods
	knownStates := map[string][]*State{}

	// Work on a FIFO queue so states are numbered in breadth-first order.
	unchecked := arraylist.New()

	register := func(items *treeset.Set) (*State, bool, error) {
		sorted := make([]Item, 0, items.Size())
		for _, v := range items.Values() {
			sorted = append(sorted, v.(Item))
		}
		key, err := genStateKey(sorted)
		if err != nil {
			return nil, false, err
		}
		for _, s := range knownStates[key] {
			if slices.Equal(s.Items, sorted) {
				return s, false, nil
			}
		}
		s := &State{
			ID:     len(a.states),
			Items:  sorted,
			key:    key,
			shift:  map[string]int{},
			reduce: map[string]int{},
		}
		a.states = append(a.states, s)
		knownStates[key] = append(knownStates[key], s)
		unchecked.Add(s)
		return s, true, nil
	}

	{
		augProd, _ := prods.findByNum(0)
		initial := treeset.NewWith(itemComparator, newItem(augProd, 0))
		genLR0Closure(initial, a.gram)
		if _, _, err := register(initial); err != nil {
			return err
		}
	}

	for !unchecked.Empty() {
		v, _ := unchecked.Get(0)
		unchecked.Remove(0)
		state := v.(*State)

		for _, n := range genNeighbourItemSets(state.Items, prods) {
			genLR0Closure(n.items, a.gram)
			next, added, err := register(n.items)
			if err != nil {
				return err
			}
			state.shift[n.symbol] = next.ID
			state.shiftSyms = append(state.shiftSyms, n.symbol)
			if added {
				tracer().Debugf("state %d --%v--> state %d (new)", state.ID, n.symbol, next.ID)
			}
		}
	}

	return nil
}

// genLR0Closure adds an item with the dot at the first non-ε symbol for each alternative of every
// non-terminal appearing right after a dot.
func genLR0Closure(items *treeset.Set, gram *Grammar) {
	prods := gram.prods
	unchecked := arraylist.New()
	unchecked.Add(items.Values()...)
	for !unchecked.Empty() {
		v, _ := unchecked.Get(0)
		unchecked.Remove(0)
		item := v.(Item)

		sym := item.dottedSymbol(prods)
		if sym == "" || !gram.IsNonTerminal(sym) {
			continue
		}
		ps, _ := prods.findByLHS(sym)
		for _, prod := range ps {
			closureItem := newItem(prod, 0)
			if items.Contains(closureItem) {
				continue
			}
			items.Add(closureItem)
			unchecked.Add(closureItem)
		}
	}
}

type neighbourItemSet struct {
	symbol string
	items  *treeset.Set
}

// genNeighbourItemSets advances the dot over each symbol appearing after a dot. The symbols are
// visited in the order of their first appearance in the sorted item list.
func genNeighbourItemSets(items []Item, prods *productionSet) []*neighbourItemSet {
	var neighbours []*neighbourItemSet
	sym2Neighbour := map[string]*neighbourItemSet{}
	for _, item := range items {
		sym := item.dottedSymbol(prods)
		if sym == "" {
			continue
		}
		n, ok := sym2Neighbour[sym]
		if !ok {
			n = &neighbourItemSet{
				symbol: sym,
				items:  treeset.NewWith(itemComparator),
			}
			sym2Neighbour[sym] = n
			neighbours = append(neighbours, n)
		}
		n.items.Add(item.advance(prods))
	}
	return neighbours
}

func (a *Automaton) Grammar() *Grammar {
	return a.gram
}

func (a *Automaton) States() []*State {
	return append([]*State{}, a.states...)
}

func (a *Automaton) State(id int) (*State, bool) {
	if id < 0 || id >= len(a.states) {
		return nil, false
	}
	return a.states[id], true
}

func (a *Automaton) InitialState() int {
	return stateNumInitial
}

// Shift returns the next state of a state on a symbol. For a non-terminal it is the GOTO entry.
func (a *Automaton) Shift(state int, sym string) (int, bool) {
	s, ok := a.State(state)
	if !ok {
		return 0, false
	}
	return s.Shift(sym)
}

// Reduce returns the production to reduce by in a state when the look-ahead is sym.
func (a *Automaton) Reduce(state int, sym string) (*Production, bool) {
	s, ok := a.State(state)
	if !ok {
		return nil, false
	}
	item, ok := s.Reduce(sym)
	if !ok {
		return nil, false
	}
	return a.gram.prods.findByNum(item.Prod)
}

// ItemString renders an item like "E -> E · + T".
func (a *Automaton) ItemString(item Item) string {
	prod, ok := a.gram.prods.findByNum(item.Prod)
	if !ok {
		return "?"
	}
	return itemString(prod, item.Dot)
}
