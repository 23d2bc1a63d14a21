package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/utils"
)

type ItemKind int

const (
	ItemKindShift ItemKind = iota
	ItemKindReduce
)

func (k ItemKind) String() string {
	if k == ItemKindReduce {
		return "reduce"
	}
	return "shift"
}

// Item is an LR(0) item. Items are compared by value.
//
// E → E + T
//
// Dot | Dotted Symbol | Item
// ----+---------------+------------
// 0   | E             | E → ・E + T
// 1   | +             | E → E ・+ T
// 2   | T             | E → E + ・T
// 3   | -             | E → E + T ・
type Item struct {
	// Prod is the production number. It orders items the same way as (LHS, Alt) in declaration order.
	Prod int
	LHS  string
	Alt  int
	Dot  int
	Kind ItemKind
}

// newItem skips ε placeholders at and after the dot, so an item never points at ε.
func newItem(prod *Production, dot int) Item {
	for dot < len(prod.RHS) && isEpsilon(prod.RHS[dot]) {
		dot++
	}
	kind := ItemKindShift
	if dot >= len(prod.RHS) {
		dot = len(prod.RHS)
		kind = ItemKindReduce
	}
	return Item{
		Prod: prod.Num,
		LHS:  prod.LHS,
		Alt:  prod.Alt,
		Dot:  dot,
		Kind: kind,
	}
}

func (i Item) dottedSymbol(prods *productionSet) string {
	if i.Kind == ItemKindReduce {
		return ""
	}
	prod, _ := prods.findByNum(i.Prod)
	return prod.RHS[i.Dot]
}

func (i Item) advance(prods *productionSet) Item {
	prod, _ := prods.findByNum(i.Prod)
	return newItem(prod, i.Dot+1)
}

func itemComparator(a, b interface{}) int {
	x := a.(Item)
	y := b.(Item)
	if x.Prod != y.Prod {
		return utils.IntComparator(x.Prod, y.Prod)
	}
	return utils.IntComparator(x.Dot, y.Dot)
}

func itemString(prod *Production, dot int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", prod.LHS)
	for i, sym := range prod.RHS {
		if i == dot {
			fmt.Fprint(&b, " ·")
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if dot >= len(prod.RHS) {
		fmt.Fprint(&b, " ·")
	}
	return b.String()
}
