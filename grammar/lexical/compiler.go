package lexical

import (
	"fmt"

	"github.com/nihei9/slrx/compressor"
	"github.com/nihei9/slrx/grammar/lexical/dfa"
	"github.com/nihei9/slrx/grammar/lexical/nfa"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// tracer traces with key 'slrx.lexical'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.lexical")
}

type CompileError struct {
	Kind   string
	Cause  error
	Detail string
}

func (e *CompileError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %v: %v", e.Kind, e.Cause, e.Detail)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

var errNullablePattern = fmt.Errorf("a pattern must not match the empty string")

// KindIDNil is the kind ID of no kind. The entries of a LexSpec get the IDs 1, 2, ... in order.
const KindIDNil = 0

// CompiledLexSpec is a lexical specification compiled into a single minimal DFA.
type CompiledLexSpec struct {
	Name string

	// KindNames maps kind IDs to kind names. KindNames[KindIDNil] is empty.
	KindNames []string
	Skip      []bool

	// Symbols is the sorted alphabet. A symbol's index is its column in the transition table.
	Symbols      []rune
	StateCount   int
	InitialState int

	// AcceptingStates maps states to the kind ID they accept, or KindIDNil.
	AcceptingStates []int

	CompressionLevel compressor.Level
	Transition       compressor.Compressor
}

// NextState returns the successor of state on c.
func (s *CompiledLexSpec) NextState(state int, c rune) (int, bool) {
	col, ok := slices.BinarySearch(s.Symbols, c)
	if !ok {
		return dfa.StateNil, false
	}
	next, err := s.Transition.Lookup(state, col)
	if err != nil || next == dfa.StateNil {
		return dfa.StateNil, false
	}
	return next, true
}

// Accept returns the kind ID accepted in state.
func (s *CompiledLexSpec) Accept(state int) (int, bool) {
	kind := s.AcceptingStates[state]
	return kind, kind != KindIDNil
}

type compileConfig struct {
	compLv compressor.Level
}

type CompileOption func(c *compileConfig)

// CompressionLevel selects how the transition table is stored. The default is
// compressor.LevelRowDisplacement.
func CompressionLevel(lv compressor.Level) CompileOption {
	return func(c *compileConfig) {
		c.compLv = lv
	}
}

// Compile merges the patterns of all entries into one automaton, determinizes and minimizes it,
// and compresses its transition table. Pattern errors are reported per entry as CompileErrors.
func Compile(lexspec *LexSpec, opts ...CompileOption) (*CompiledLexSpec, error, []*CompileError) {
	config := &compileConfig{
		compLv: compressor.LevelRowDisplacement,
	}
	for _, opt := range opts {
		opt(config)
	}

	err := lexspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid lexical specification:\n%w", err), nil
	}

	kindNames := []string{""}
	skip := []bool{false}
	var nfas []*nfa.NFA
	var cerrs []*CompileError
	for _, e := range lexspec.Entries {
		kindNames = append(kindNames, e.Kind)
		skip = append(skip, e.Skip)
		n, err := nfa.Compile(e.Pattern)
		if err != nil {
			cerrs = append(cerrs, &CompileError{
				Kind:   e.Kind,
				Cause:  err,
				Detail: e.Pattern,
			})
			continue
		}
		if dfa.FromNFA(n).Accepting(dfa.StateStart) {
			cerrs = append(cerrs, &CompileError{
				Kind:   e.Kind,
				Cause:  errNullablePattern,
				Detail: e.Pattern,
			})
			continue
		}
		nfas = append(nfas, n)
	}
	if len(cerrs) > 0 {
		return nil, fmt.Errorf("compile error"), cerrs
	}

	d := dfa.Minimize(dfa.FromNFA(nfa.Merge(nfas...)))
	tab := d.ScanTable()
	accepting := make([]int, tab.StateCount)
	for s := range accepting {
		if kind, ok := tab.Kind(s); ok {
			accepting[s] = kind + 1
		}
	}

	orig, err := compressor.NewOriginalTable(tab.Transitions, tab.ColCount())
	if err != nil {
		return nil, err, nil
	}
	tran, err := compressor.Compress(orig, config.compLv, dfa.StateNil)
	if err != nil {
		return nil, err, nil
	}
	tracer().Infof("lexical specification %q: %d kind(s), %d state(s), compression: %v",
		lexspec.Name, len(lexspec.Entries), tab.StateCount, config.compLv)

	return &CompiledLexSpec{
		Name:             lexspec.Name,
		KindNames:        kindNames,
		Skip:             skip,
		Symbols:          tab.Symbols,
		StateCount:       tab.StateCount,
		InitialState:     dfa.StateStart,
		AcceptingStates:  accepting,
		CompressionLevel: config.compLv,
		Transition:       tran,
	}, nil, nil
}
