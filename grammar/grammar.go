package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	verr "github.com/nihei9/slrx/error"
)

// Grammar is a context-free grammar augmented with the production S' -> S. It is immutable once Parse
// returns it.
type Grammar struct {
	prods          *productionSet
	symTab         *symbolTable
	start          string
	augmentedStart string
	first          *firstSet
	follow         *followSet
}

type rawAlternative struct {
	lhs     string
	rhs     []string
	actions map[int]int
}

type grammarParser struct {
	alts []*rawAlternative
	errs verr.SpecErrors
}

// Parse reads the line-oriented grammar format:
//
//	E -> E + T | T
//	{0:-1, 2:0}
//
// A production line declares one or more alternatives separated by '|'. An action line attaches a
// semantic-action table to the most recently declared alternative. The first declared non-terminal is
// the start symbol. When the text contains errors, Parse returns a nil grammar and verr.SpecErrors.
func Parse(src io.Reader) (*Grammar, error) {
	p := &grammarParser{}
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			p.parseActionLine(line, row)
			continue
		}
		p.parseProductionLine(line, row)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(p.alts) == 0 && len(p.errs) == 0 {
		p.errs = append(p.errs, &verr.SpecError{
			Cause: synErrNoProduction,
		})
	}
	if len(p.errs) > 0 {
		tracer().Errorf("grammar contains %d error(s)", len(p.errs))
		return nil, p.errs
	}

	return newGrammar(p.alts[0].lhs, p.alts)
}

func (p *grammarParser) parseProductionLine(line string, row int) {
	lhsText, rhsText, ok := strings.Cut(line, "->")
	if !ok {
		cause := synErrNoArrow
		if strings.Contains(line, "|") {
			cause = synErrLHSAlternative
		}
		p.errs = append(p.errs, &verr.SpecError{
			Cause:  cause,
			Detail: line,
			Row:    row,
		})
		return
	}
	if strings.Contains(lhsText, "|") {
		p.errs = append(p.errs, &verr.SpecError{
			Cause:  synErrLHSAlternative,
			Detail: line,
			Row:    row,
		})
		return
	}
	lhs := strings.Fields(lhsText)
	if len(lhs) != 1 || isEpsilon(lhs[0]) || lhs[0] == SymbolEOF {
		p.errs = append(p.errs, &verr.SpecError{
			Cause:  synErrInvalidLHS,
			Detail: strings.TrimSpace(lhsText),
			Row:    row,
		})
		return
	}

	for _, altText := range strings.Split(rhsText, "|") {
		syms := strings.Fields(altText)
		if len(syms) == 0 {
			p.errs = append(p.errs, &verr.SpecError{
				Cause: synErrEmptyAlternative,
				Row:   row,
			})
			continue
		}
		for i, sym := range syms {
			if isEpsilon(sym) {
				syms[i] = SymbolEpsilon
			}
			if sym == SymbolEOF {
				p.errs = append(p.errs, &verr.SpecError{
					Cause: synErrReservedSymbol,
					Row:   row,
				})
			}
		}
		p.alts = append(p.alts, &rawAlternative{
			lhs: lhs[0],
			rhs: syms,
		})
	}
}

func (p *grammarParser) parseActionLine(line string, row int) {
	if !strings.HasSuffix(line, "}") {
		p.errs = append(p.errs, &verr.SpecError{
			Cause:  semErrActionFormat,
			Detail: line,
			Row:    row,
		})
		return
	}
	if len(p.alts) == 0 {
		p.errs = append(p.errs, &verr.SpecError{
			Cause: semErrActionNoAlt,
			Row:   row,
		})
		return
	}
	alt := p.alts[len(p.alts)-1]
	if alt.actions != nil {
		p.errs = append(p.errs, &verr.SpecError{
			Cause: semErrActionDuplicated,
			Row:   row,
		})
		return
	}
	width := 0
	for _, sym := range alt.rhs {
		if !isEpsilon(sym) {
			width++
		}
	}

	actions := map[int]int{}
	body := strings.TrimSpace(line[1 : len(line)-1])
	if body != "" {
		for _, entry := range strings.Split(body, ",") {
			posText, slotText, ok := strings.Cut(entry, ":")
			if !ok {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionFormat,
					Detail: strings.TrimSpace(entry),
					Row:    row,
				})
				return
			}
			pos, err := strconv.Atoi(strings.TrimSpace(posText))
			if err != nil {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionFormat,
					Detail: strings.TrimSpace(entry),
					Row:    row,
				})
				return
			}
			slot, err := strconv.Atoi(strings.TrimSpace(slotText))
			if err != nil {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionFormat,
					Detail: strings.TrimSpace(entry),
					Row:    row,
				})
				return
			}
			if pos < 0 || pos >= width {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionPosition,
					Detail: fmt.Sprintf("position %v; the alternative has %v symbol(s)", pos, width),
					Row:    row,
				})
				return
			}
			if slot < -1 {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionSlot,
					Detail: strconv.Itoa(slot),
					Row:    row,
				})
				return
			}
			if _, dup := actions[pos]; dup {
				p.errs = append(p.errs, &verr.SpecError{
					Cause:  semErrActionDupPosition,
					Detail: strconv.Itoa(pos),
					Row:    row,
				})
				return
			}
			actions[pos] = slot
		}
	}
	alt.actions = actions
}

func newGrammar(start string, alts []*rawAlternative) (*Grammar, error) {
	symTab := newSymbolTable()
	symTab.registerNonTerminal(start)
	for _, alt := range alts {
		symTab.registerNonTerminal(alt.lhs)
	}
	for _, alt := range alts {
		for _, sym := range alt.rhs {
			if isEpsilon(sym) {
				continue
			}
			symTab.registerTerminal(sym)
		}
	}

	augStart := start + "'"
	for {
		if _, known := symTab.kind(augStart); !known {
			break
		}
		augStart += "'"
	}

	prods := newProductionSet()
	prods.append(augStart, []string{start})
	for _, alt := range alts {
		prod := prods.append(alt.lhs, alt.rhs)
		prod.Actions = alt.actions
	}

	first, err := genFirstSet(prods, symTab)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(prods, first, augStart, start)
	if err != nil {
		return nil, err
	}

	tracer().Debugf("grammar: %d production(s), %d non-terminal(s), %d terminal(s)",
		len(prods.getAllProductions())-1, len(symTab.nonTerms), len(symTab.terms))

	return &Grammar{
		prods:          prods,
		symTab:         symTab,
		start:          start,
		augmentedStart: augStart,
		first:          first,
		follow:         follow,
	}, nil
}

func (g *Grammar) Start() string {
	return g.start
}

// AugmentedStart returns the name of S' in the augmented production S' -> S.
func (g *Grammar) AugmentedStart() string {
	return g.augmentedStart
}

// Terminals returns the terminal symbols in the order of their first appearance.
func (g *Grammar) Terminals() []string {
	return append([]string{}, g.symTab.terms...)
}

// NonTerminals returns the non-terminal symbols in declaration order. The augmented start symbol is
// not included.
func (g *Grammar) NonTerminals() []string {
	return append([]string{}, g.symTab.nonTerms...)
}

func (g *Grammar) IsTerminal(sym string) bool {
	return g.symTab.isTerminal(sym)
}

func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.symTab.isNonTerminal(sym) || sym == g.augmentedStart
}

// Productions returns all productions in declaration order, the augmented start production first.
func (g *Grammar) Productions() []*Production {
	return append([]*Production{}, g.prods.getAllProductions()...)
}

func (g *Grammar) Production(num int) (*Production, bool) {
	return g.prods.findByNum(num)
}

// ProductionsOf returns the alternatives of a non-terminal in declaration order.
func (g *Grammar) ProductionsOf(lhs string) []*Production {
	prods, _ := g.prods.findByLHS(lhs)
	return prods
}

// AugmentedListing returns one line per production, e.g. "E -> E + T", the augmented start
// production first.
func (g *Grammar) AugmentedListing() []string {
	var lines []string
	for _, prod := range g.prods.getAllProductions() {
		lines = append(lines, prod.String())
	}
	return lines
}
