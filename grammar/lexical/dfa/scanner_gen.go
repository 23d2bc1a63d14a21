package dfa

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/nihei9/slrx/compressor"
)

type genConfig struct {
	pkgName string
}

type GenOption func(*genConfig)

// PackageName sets the package clause of generated code. The default is "main".
func PackageName(name string) GenOption {
	return func(c *genConfig) {
		c.pkgName = name
	}
}

// GenScanner emits Go source of a scanner driven by d. The transition table is row-displacement
// compressed; the generated Match and LongestMatch behave like the methods of DFA.
func GenScanner(d *DFA, opts ...GenOption) ([]byte, error) {
	c := &genConfig{
		pkgName: "main",
	}
	for _, opt := range opts {
		opt(c)
	}

	tab := d.ScanTable()
	orig, err := compressor.NewOriginalTable(tab.Transitions, tab.ColCount())
	if err != nil {
		return nil, fmt.Errorf("failed to read the transition table: %w", err)
	}
	comp := compressor.NewRowDisplacementTable(StateNil)
	if err := comp.Compress(orig); err != nil {
		return nil, fmt.Errorf("failed to compress the transition table: %w", err)
	}
	tracer().Debugf("scanner: %d transition cell(s) compressed into %d", len(tab.Transitions), len(comp.Entries))

	tmpl, err := template.New("scanner").Parse(scannerTemplate)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	err = tmpl.Execute(&b, struct {
		Package         string
		Symbols         []rune
		Kinds           []int
		RowDisplacement []int
		Bounds          []int
		Entries         []int
	}{
		Package:         c.pkgName,
		Symbols:         tab.Symbols,
		Kinds:           tab.Kinds,
		RowDisplacement: comp.RowDisplacement,
		Bounds:          comp.Bounds,
		Entries:         comp.Entries,
	})
	if err != nil {
		return nil, err
	}
	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code is malformed: %w", err)
	}
	return src, nil
}

const scannerTemplate = `// Code generated by slrx. DO NOT EDIT.

package {{ .Package }}

import (
	"sort"
	"unicode/utf8"
)

var scanSymbols = []rune{ {{- range $i, $c := .Symbols }}{{ if $i }}, {{ end }}{{ printf "%q" $c }}{{ end -}} }

// scanKinds holds the accepted kind of each state, or -1.
var scanKinds = []int{ {{- range $i, $v := .Kinds }}{{ if $i }}, {{ end }}{{ $v }}{{ end -}} }

var scanRowDisplacement = []int{ {{- range $i, $v := .RowDisplacement }}{{ if $i }}, {{ end }}{{ $v }}{{ end -}} }

var scanBounds = []int{ {{- range $i, $v := .Bounds }}{{ if $i }}, {{ end }}{{ $v }}{{ end -}} }

var scanEntries = []int{ {{- range $i, $v := .Entries }}{{ if $i }}, {{ end }}{{ $v }}{{ end -}} }

func scanNext(state int, c rune) int {
	col := sort.Search(len(scanSymbols), func(i int) bool {
		return scanSymbols[i] >= c
	})
	if col >= len(scanSymbols) || scanSymbols[col] != c {
		return -1
	}
	d := scanRowDisplacement[state]
	if scanBounds[d+col] != state {
		return -1
	}
	return scanEntries[d+col]
}

// Match reports whether the whole input is accepted.
func Match(input string) bool {
	state := 0
	for _, c := range input {
		state = scanNext(state, c)
		if state < 0 {
			return false
		}
	}
	return scanKinds[state] >= 0
}

// LongestMatch returns the length in bytes of the longest accepted prefix of input and its kind.
// The length is -1 when no prefix is accepted.
func LongestMatch(input string) (int, int) {
	n, kind := -1, -1
	state := 0
	if scanKinds[state] >= 0 {
		n, kind = 0, scanKinds[state]
	}
	for i := 0; i < len(input); {
		c, size := utf8.DecodeRuneInString(input[i:])
		state = scanNext(state, c)
		if state < 0 {
			break
		}
		i += size
		if scanKinds[state] >= 0 {
			n, kind = i, scanKinds[state]
		}
	}
	return n, kind
}
`
