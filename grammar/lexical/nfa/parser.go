package nfa

// Operator priorities. An incoming operator first applies the stacked operators whose priority is
// strictly higher than its own.
func priority(kind tokenKind) int {
	switch kind {
	case tokenKindRepeat, tokenKindRepeatOne, tokenKindOption:
		return 3
	case tokenKindConcat:
		return 2
	case tokenKindAlt:
		return 1
	}
	return 0
}

// parser is a shunting-yard parser producing Thompson fragments directly. The operand checks
// run while reading, so applying an operator always finds its operands on the stack.
type parser struct {
	pattern string
	toks    []*token
	ops     []*token
	frags   []*fragment
	symbols map[rune]struct{}

	// expectOperand is true at the beginning and after '(', '|' and '.'.
	expectOperand bool
	prev          *token
	depth         int
}

func newParser(pattern string, toks []*token) *parser {
	return &parser{
		pattern:       pattern,
		toks:          toks,
		symbols:       map[rune]struct{}{},
		expectOperand: true,
	}
}

func (p *parser) parse() (root *fragment, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(*SyntaxError)
			if !ok {
				panic(err)
			}
		}
	}()

	if len(p.toks) == 0 {
		p.raiseSyntaxError(0, synErrNullPattern)
	}

	for _, tok := range p.toks {
		p.read(tok)
		p.prev = tok
	}
	if p.depth > 0 {
		p.raiseSyntaxError(0, synErrGroupUnclosed)
	}
	if p.expectOperand {
		p.raiseSyntaxError(p.prev.col, synErrAltLackOfOperand)
	}
	for len(p.ops) > 0 {
		p.apply(p.popOp())
	}
	return p.frags[0], nil
}

func (p *parser) read(tok *token) {
	switch tok.kind {
	case tokenKindChar:
		p.frags = append(p.frags, newSymbolFragment(tok.char))
		p.symbols[tok.char] = struct{}{}
		p.expectOperand = false
	case tokenKindGroupOpen:
		p.ops = append(p.ops, tok)
		p.depth++
		p.expectOperand = true
	case tokenKindGroupClose:
		if p.depth == 0 {
			p.raiseSyntaxError(tok.col, synErrGroupNoInitiator)
		}
		if p.expectOperand {
			if p.prev.kind == tokenKindGroupOpen {
				p.raiseSyntaxError(tok.col, synErrGroupNoElem)
			}
			p.raiseSyntaxError(tok.col, synErrAltLackOfOperand)
		}
		for {
			op := p.popOp()
			if op.kind == tokenKindGroupOpen {
				break
			}
			p.apply(op)
		}
		p.depth--
	case tokenKindRepeat, tokenKindRepeatOne, tokenKindOption:
		if p.expectOperand {
			p.raiseSyntaxError(tok.col, synErrRepNoTarget)
		}
		p.pushOp(tok)
	case tokenKindAlt, tokenKindConcat:
		if p.expectOperand {
			p.raiseSyntaxError(tok.col, synErrAltLackOfOperand)
		}
		p.pushOp(tok)
		p.expectOperand = true
	}
}

func (p *parser) pushOp(tok *token) {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.kind == tokenKindGroupOpen || priority(top.kind) <= priority(tok.kind) {
			break
		}
		p.apply(p.popOp())
	}
	p.ops = append(p.ops, tok)
}

func (p *parser) popOp() *token {
	op := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]
	return op
}

func (p *parser) popFrag() *fragment {
	f := p.frags[len(p.frags)-1]
	p.frags = p.frags[:len(p.frags)-1]
	return f
}

func (p *parser) apply(op *token) {
	var result *fragment
	switch op.kind {
	case tokenKindRepeat:
		result = closure(p.popFrag(), closureStar)
	case tokenKindRepeatOne:
		result = closure(p.popFrag(), closurePlus)
	case tokenKindOption:
		result = closure(p.popFrag(), closureOption)
	case tokenKindConcat:
		r := p.popFrag()
		result = concat(p.popFrag(), r)
	case tokenKindAlt:
		r := p.popFrag()
		result = union(p.popFrag(), r)
	}
	p.frags = append(p.frags, result)
}

func (p *parser) raiseSyntaxError(col int, cause error) {
	panic(&SyntaxError{
		Pattern: p.pattern,
		Col:     col,
		Cause:   cause,
	})
}
