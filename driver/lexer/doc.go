// Package lexer scans sources with compiled lexical specifications and turns the lexemes into tokens
// for the parser driver.
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrx.driver'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.driver")
}
