package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/slrx/grammar"
	"github.com/nihei9/slrx/grammar/lexical"
	tspec "github.com/nihei9/slrx/spec/test"
)

func buildAutomaton(t *testing.T, src string) *grammar.Automaton {
	t.Helper()
	gram, err := grammar.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	automaton, err := grammar.BuildAutomaton(gram)
	if err != nil {
		t.Fatal(err)
	}
	if !automaton.IsSLR() {
		t.Fatal(automaton.Reason())
	}
	return automaton
}

func compileLexSpec(t *testing.T, kinds ...string) *lexical.CompiledLexSpec {
	t.Helper()
	lspec := &lexical.LexSpec{
		Entries: []*lexical.LexEntry{
			{
				Kind:    "ws",
				Pattern: "[\\ \\\t]+",
				Skip:    true,
			},
		},
	}
	for _, k := range kinds {
		lspec.Entries = append(lspec.Entries, &lexical.LexEntry{
			Kind:    k,
			Pattern: k,
		})
	}
	clspec, err, cerrs := lexical.Compile(lspec)
	if err != nil {
		t.Fatalf("%v: %v", err, cerrs)
	}
	return clspec
}

func TestTester_Run(t *testing.T) {
	grammarSrc1 := `
s -> foo bar baz
`

	grammarSrc2 := `
s -> foos
foos -> foos foo | foo
`

	tests := []struct {
		caption    string
		grammarSrc string
		kinds      []string
		labelValue bool
		testSrc    string
		error      bool
	}{
		{
			caption:    "a tree matches",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo bar baz
---
(s
    (foo "foo") (bar "bar") (baz "baz"))
`,
		},
		{
			caption:    "a wildcard matches any kind",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo bar baz
---
(_
    (foo "foo") (_ "bar") (baz "baz"))
`,
		},
		{
			caption:    "the tree lacks child nodes",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo bar baz
---
(s)
`,
			error: true,
		},
		{
			caption:    "lexemes differ",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo bar baz
---
(s
    (foo) (bar) (baz))
`,
			error: true,
		},
		{
			caption:    "kinds differ",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo bar baz
---
(s
    (foo "foo") (bar "bar") (xxx "baz"))
`,
			error: true,
		},
		{
			caption:    "the source has a syntax error",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo baz
---
(s
    (foo "foo") (baz "baz"))
`,
			error: true,
		},
		{
			caption:    "the source has an invalid token",
			grammarSrc: grammarSrc1,
			kinds:      []string{"foo", "bar", "baz"},
			testSrc: `
Test
---
foo ? baz
---
(s
    (foo "foo") (baz "baz"))
`,
			error: true,
		},
		{
			caption:    "left recursion nests to the left",
			grammarSrc: grammarSrc2,
			kinds:      []string{"foo"},
			testSrc: `
Test
---
foo foo foo
---
(s
    (foos
        (foos
            (foos
                (foo "foo"))
            (foo "foo"))
        (foo "foo")))
`,
		},
		{
			caption:    "a source without a lexical specification is a list of LABEL:VALUE",
			grammarSrc: grammarSrc1,
			labelValue: true,
			testSrc: `
Test
---
foo
bar:bar
baz:
---
(s
    (foo) (bar "bar") (baz))
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Automaton: buildAutomaton(t, tt.grammarSrc),
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			if !tt.labelValue {
				tester.LexSpec = compileLexSpec(t, tt.kinds...)
			}
			rs := tester.Run()
			if tt.error {
				errOccurred := false
				for _, r := range rs {
					if r.Error != nil {
						errOccurred = true
					}
				}
				if !errOccurred {
					t.Fatal("this test must fail, but it passed")
				}
			} else {
				for _, r := range rs {
					if r.Error != nil {
						t.Fatalf("unexpected error occurred: %v", r)
					}
				}
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"pass.txt":        "Test\n---\nfoo\n---\n(s (foo))\n",
		"sub/fail.txt":    "Test\n---\nfoo\n---\n(s (bar))\n",
		"sub/invalid.txt": "Test\n---\nfoo\n",
	}
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cases := ListTestCases(dir)
	if len(cases) != 3 {
		t.Fatalf("unexpected test cases: %v", cases)
	}
	tester := &Tester{
		Automaton: buildAutomaton(t, "s -> foo\n"),
		Cases:     cases,
	}
	expected := map[string]bool{
		"pass.txt":        true,
		"sub/fail.txt":    false,
		"sub/invalid.txt": false,
	}
	for _, r := range tester.Run() {
		rel, err := filepath.Rel(dir, r.TestCasePath)
		if err != nil {
			t.Fatal(err)
		}
		pass, ok := expected[filepath.ToSlash(rel)]
		if !ok {
			t.Fatalf("unexpected test case: %v", r.TestCasePath)
		}
		if pass != (r.Error == nil) {
			t.Errorf("unexpected result: %v", r)
		}
		if !pass && !strings.HasPrefix(r.String(), fmt.Sprintf("Failed %v", r.TestCasePath)) {
			t.Errorf("unexpected report: %v", r)
		}
	}

	missing := ListTestCases(filepath.Join(dir, "missing"))
	if len(missing) != 1 || missing[0].Error == nil {
		t.Fatalf("a missing path must be reported as an error: %v", missing)
	}
}
