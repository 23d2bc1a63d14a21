package lexer

import "github.com/nihei9/slrx/grammar/lexical"

type lexSpec struct {
	spec *lexical.CompiledLexSpec
}

func NewLexSpec(spec *lexical.CompiledLexSpec) *lexSpec {
	return &lexSpec{
		spec: spec,
	}
}

func (s *lexSpec) InitialState() StateID {
	return StateID(s.spec.InitialState)
}

func (s *lexSpec) NextState(state StateID, c rune) (StateID, bool) {
	next, ok := s.spec.NextState(state.Int(), c)
	return StateID(next), ok
}

func (s *lexSpec) Accept(state StateID) (KindID, bool) {
	kind, ok := s.spec.Accept(state.Int())
	return KindID(kind), ok
}

func (s *lexSpec) KindName(kind KindID) string {
	return s.spec.KindNames[kind]
}

func (s *lexSpec) Skip(kind KindID) bool {
	return s.spec.Skip[kind]
}
