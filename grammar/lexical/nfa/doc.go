/*
Package nfa compiles regular expressions into Thompson NFAs.

The supported syntax is small: concatenation (implicit or '.'), union '|', the closures '*', '+'
and '?', grouping with parentheses and bracket lists such as [a-z_]. A backslash makes the next
character literal. White space and the ε marker '@' are ignored.

	n, err := nfa.Compile("a(b|c)*")

Every automaton is an arena of states addressed by index. State 0 is the start state.
*/
package nfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrx.lexical'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.lexical")
}
