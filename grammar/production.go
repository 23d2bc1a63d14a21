package grammar

import (
	"fmt"
	"strings"
)

// Production is one alternative of a non-terminal.
type Production struct {
	// Num is the position of the production in declaration order. The augmented start production is 0.
	Num int
	LHS string

	// Alt is the index of the alternative within the productions of LHS.
	Alt int
	RHS []string

	// Actions maps a position in the popped window (the non-ε symbols of RHS) to a child slot.
	// The slot -1 promotes the node at the position to the root of the subtree. Actions is nil when
	// the alternative has no action line; such reductions keep all popped nodes as children in order.
	Actions map[int]int
}

// Len returns the number of non-ε symbols, which is the number of stack entries a reduction pops.
func (p *Production) Len() int {
	n := 0
	for _, sym := range p.RHS {
		if isEpsilon(sym) {
			continue
		}
		n++
	}
	return n
}

func (p *Production) isEmpty() bool {
	return p.Len() == 0
}

func (p *Production) String() string {
	return fmt.Sprintf("%v -> %v", p.LHS, strings.Join(p.RHS, " "))
}

// compactString is the format used in the reduce entries of a parsing table, e.g. r(E->E+T).
func (p *Production) compactString() string {
	return fmt.Sprintf("%v->%v", p.LHS, strings.Join(p.RHS, ""))
}

type productionSet struct {
	lhs2Prods map[string][]*Production
	num2Prod  []*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[string][]*Production{},
	}
}

func (ps *productionSet) append(lhs string, rhs []string) *Production {
	prod := &Production{
		Num: len(ps.num2Prod),
		LHS: lhs,
		Alt: len(ps.lhs2Prods[lhs]),
		RHS: rhs,
	}
	ps.lhs2Prods[lhs] = append(ps.lhs2Prods[lhs], prod)
	ps.num2Prod = append(ps.num2Prod, prod)
	return prod
}

func (ps *productionSet) findByNum(num int) (*Production, bool) {
	if num < 0 || num >= len(ps.num2Prod) {
		return nil, false
	}
	return ps.num2Prod[num], true
}

func (ps *productionSet) findByLHS(lhs string) ([]*Production, bool) {
	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.num2Prod
}
