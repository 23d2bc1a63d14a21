// Package driver runs SLR(1) automata built by package grammar over token streams and assembles parse
// trees.
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrx.driver'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.driver")
}
