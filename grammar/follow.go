package grammar

import (
	"fmt"
)

type followEntry struct {
	symbols map[string]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[string]struct{}{},
		eof:     false,
	}
}

func (e *followEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

// lookAheads returns the symbols of the entry. The end-of-input marker is represented by SymbolEOF.
func (e *followEntry) lookAheads() []string {
	syms := make([]string, 0, len(e.symbols)+1)
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	if e.eof {
		syms = append(syms, SymbolEOF)
	}
	return syms
}

type followSet struct {
	set map[string]*followEntry
}

func newFollow(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[string]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.LHS]; ok {
			continue
		}
		flw.set[prod.LHS] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym string) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// genFollowSet seeds both the augmented start symbol and the start symbol with the end-of-input
// marker.
func genFollowSet(prods *productionSet, first *firstSet, starts ...string) (*followSet, error) {
	var ntsyms []string
	{
		known := map[string]struct{}{}
		for _, prod := range prods.getAllProductions() {
			if _, ok := known[prod.LHS]; ok {
				continue
			}
			known[prod.LHS] = struct{}{}
			ntsyms = append(ntsyms, prod.LHS)
		}
	}

	follow := newFollow(prods)
	for _, start := range starts {
		e, err := follow.find(start)
		if err != nil {
			return nil, err
		}
		e.addEOF()
	}

	passes := 0
	for {
		passes++
		more := false
		for _, ntsym := range ntsyms {
			e, err := follow.find(ntsym)
			if err != nil {
				return nil, err
			}
			changed, err := genFollowEntry(prods, first, follow, e, ntsym)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	tracer().Debugf("FOLLOW converged after %d pass(es)", passes)

	return follow, nil
}

func genFollowEntry(prods *productionSet, first *firstSet, follow *followSet, acc *followEntry, ntsym string) (bool, error) {
	changed := false
	for _, prod := range prods.getAllProductions() {
		for i, sym := range prod.RHS {
			if sym != ntsym {
				continue
			}
			fst, err := first.find(prod, i+1)
			if err != nil {
				return false, err
			}
			if acc.merge(fst, nil) {
				changed = true
			}
			if fst.empty {
				flw, err := follow.find(prod.LHS)
				if err != nil {
					return false, err
				}
				if acc.merge(nil, flw) {
					changed = true
				}
			}
		}
	}

	return changed, nil
}

// Follow returns FOLLOW of a non-terminal in a stable order. The end-of-input marker is represented by
// SymbolEOF. The second result is false when the symbol is not a non-terminal.
func (g *Grammar) Follow(sym string) ([]string, bool) {
	e, err := g.follow.find(sym)
	if err != nil {
		return nil, false
	}
	syms := e.lookAheads()
	g.symTab.sort(syms)
	return syms, true
}
