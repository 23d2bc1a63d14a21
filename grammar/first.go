package grammar

import (
	"fmt"
)

type firstEntry struct {
	symbols map[string]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[string]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

type firstSet struct {
	symTab *symbolTable
	set    map[string]*firstEntry
}

func newFirstSet(prods *productionSet, symTab *symbolTable) *firstSet {
	fst := &firstSet{
		symTab: symTab,
		set:    map[string]*firstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.LHS]; ok {
			continue
		}
		fst.set[prod.LHS] = newFirstEntry()
	}

	return fst
}

// findBySequence computes FIRST of a symbol sequence. The sequence may contain ε placeholders, which
// derive only the empty string.
func (fst *firstSet) findBySequence(syms []string) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range syms {
		if isEpsilon(sym) {
			continue
		}
		if fst.symTab.isTerminal(sym) {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *firstSet) find(prod *Production, head int) (*firstEntry, error) {
	if head >= len(prod.RHS) {
		entry := newFirstEntry()
		entry.addEmpty()
		return entry, nil
	}
	return fst.findBySequence(prod.RHS[head:])
}

func (fst *firstSet) findBySymbol(sym string) *firstEntry {
	return fst.set[sym]
}

func genFirstSet(prods *productionSet, symTab *symbolTable) (*firstSet, error) {
	first := newFirstSet(prods, symTab)
	passes := 0
	for {
		passes++
		more := false
		for _, prod := range prods.getAllProductions() {
			e := first.findBySymbol(prod.LHS)
			changed, err := genProdFirstEntry(first, e, prod)
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
	tracer().Debugf("FIRST converged after %d pass(es)", passes)
	return first, nil
}

func genProdFirstEntry(first *firstSet, acc *firstEntry, prod *Production) (bool, error) {
	if prod.isEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.RHS {
		if isEpsilon(sym) {
			continue
		}
		if first.symTab.isTerminal(sym) {
			return acc.add(sym) || changed, nil
		}

		e := first.findBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	return acc.addEmpty() || changed, nil
}

// First returns FIRST of a symbol in a stable order. SymbolEpsilon is included when the symbol derives
// the empty string. The second result is false when the symbol is unknown.
func (g *Grammar) First(sym string) ([]string, bool) {
	kind, ok := g.symTab.kind(sym)
	switch {
	case sym == g.augmentedStart:
	case !ok:
		return nil, false
	case kind == symbolKindTerminal || kind == symbolKindEOF:
		return []string{sym}, true
	case kind == symbolKindEpsilon:
		return []string{SymbolEpsilon}, true
	}
	return g.firstEntryToSlice(g.first.findBySymbol(sym)), true
}

// FirstOfSequence returns FIRST of a symbol sequence. An empty sequence derives only the empty string.
func (g *Grammar) FirstOfSequence(syms []string) ([]string, error) {
	for _, sym := range syms {
		if isEpsilon(sym) || sym == g.augmentedStart {
			continue
		}
		if _, ok := g.symTab.kind(sym); !ok {
			return nil, fmt.Errorf("unknown symbol: %v", sym)
		}
	}
	e, err := g.first.findBySequence(syms)
	if err != nil {
		return nil, err
	}
	return g.firstEntryToSlice(e), nil
}

func (g *Grammar) firstEntryToSlice(e *firstEntry) []string {
	syms := make([]string, 0, len(e.symbols)+1)
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	if e.empty {
		syms = append(syms, SymbolEpsilon)
	}
	g.symTab.sort(syms)
	return syms
}
