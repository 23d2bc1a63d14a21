package grammar

import (
	"fmt"
	"strconv"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// Action is an entry of the ACTION table. State is set for shift actions and Production for reduce
// and accept actions.
type Action struct {
	Type       ActionType
	State      int
	Production *Production
}

// Action looks up the ACTION table. A shift is preferred when a shift/reduce conflict exists, and
// reducing by the augmented start production is reported as an accept.
func (a *Automaton) Action(state int, sym string) Action {
	if next, ok := a.Shift(state, sym); ok && a.gram.symTab.isTerminal(sym) {
		return Action{
			Type:  ActionTypeShift,
			State: next,
		}
	}
	if prod, ok := a.Reduce(state, sym); ok {
		if prod.Num == 0 {
			return Action{
				Type:       ActionTypeAccept,
				Production: prod,
			}
		}
		return Action{
			Type:       ActionTypeReduce,
			Production: prod,
		}
	}
	return Action{
		Type: ActionTypeError,
	}
}

// GoTo looks up the GOTO table.
func (a *Automaton) GoTo(state int, nonTerm string) (int, bool) {
	if !a.gram.IsNonTerminal(nonTerm) {
		return 0, false
	}
	return a.Shift(state, nonTerm)
}

// ParsingTable is the combined SLR(1) ACTION/GOTO table in a printable form. Each row holds the ACTION
// cells for Terminals followed by the GOTO cells for NonTerminals. Shift cells look like s3, reduce
// cells like r(E->E+T), and GOTO cells hold a state number. Empty cells are errors. A cell of a
// conflicting entry holds all candidates separated by '/'.
type ParsingTable struct {
	Terminals    []string
	NonTerminals []string
	Rows         [][]string
}

func (a *Automaton) ParsingTable() *ParsingTable {
	terms := append(a.gram.Terminals(), SymbolEOF)
	nonTerms := a.gram.NonTerminals()

	// reduce/reduce losers, keyed by state and symbol, so that they show up in the table.
	rejected := map[int]map[string][]Item{}
	for _, c := range a.conflicts {
		if c.Kind != ConflictKindReduceReduce {
			continue
		}
		if rejected[c.State] == nil {
			rejected[c.State] = map[string][]Item{}
		}
		rejected[c.State][c.Symbol] = append(rejected[c.State][c.Symbol], c.Items[1])
	}

	rows := make([][]string, 0, len(a.states))
	for _, state := range a.states {
		row := make([]string, 0, len(terms)+len(nonTerms))
		for _, sym := range terms {
			var cell string
			if next, ok := state.shift[sym]; ok {
				cell = "s" + strconv.Itoa(next)
			}
			if item, ok := state.Reduce(sym); ok {
				cell = joinCell(cell, a.reduceCell(item))
			}
			for _, item := range rejected[state.ID][sym] {
				cell = joinCell(cell, a.reduceCell(item))
			}
			row = append(row, cell)
		}
		for _, sym := range nonTerms {
			var cell string
			if next, ok := state.shift[sym]; ok {
				cell = strconv.Itoa(next)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return &ParsingTable{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Rows:         rows,
	}
}

func (a *Automaton) reduceCell(item Item) string {
	if item.Prod == 0 {
		return "ACCEPT"
	}
	prod, _ := a.gram.prods.findByNum(item.Prod)
	return fmt.Sprintf("r(%v)", prod.compactString())
}

func joinCell(cell, entry string) string {
	if cell == "" {
		return entry
	}
	return cell + "/" + entry
}
