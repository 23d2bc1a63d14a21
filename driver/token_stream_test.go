package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/slrx/grammar"
)

func TestLabelValueStream(t *testing.T) {
	src := `id:x
+:+

 id : y:z
)
`
	ts := NewLabelValueStream(strings.NewReader(src))
	expected := []*Token{
		{Label: "id", Text: "x", Row: 1},
		{Label: "+", Text: "+", Row: 2},
		{Label: "id", Text: "y:z", Row: 4},
		{Label: ")", Text: "", Row: 5},
		{Label: grammar.SymbolEOF, Row: 6},
		{Label: grammar.SymbolEOF, Row: 6},
	}
	for i, eTok := range expected {
		tok, err := ts.Next()
		if err != nil {
			t.Fatal(err)
		}
		if *tok != *eTok {
			t.Fatalf("#%v: unexpected token; want: %+v, got: %+v", i, eTok, tok)
		}
	}
}

func TestLabelValueStream_Error(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "a token without a label",
			src:     "id:x\n:y\n",
		},
		{
			caption: "an explicit end-of-input token",
			src:     "id:x\n$:junk\nid:y\n",
		},
		{
			caption: "an explicit end-of-input token without a value",
			src:     "id:x\n $ \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ts := NewLabelValueStream(strings.NewReader(tt.src))
			_, err := ts.Next()
			if err != nil {
				t.Fatal(err)
			}
			_, err = ts.Next()
			if err == nil {
				t.Fatalf("the second line must be rejected")
			}
		})
	}
}

func TestParser_ParseLabelValueStream_ExplicitEOF(t *testing.T) {
	p := newTestParser(t, exprGrammar)
	_, err := p.Parse(NewLabelValueStream(strings.NewReader("id:x\n$:junk\n+:+\nid:y\n")))
	if err == nil {
		t.Fatalf("an explicit end-of-input token must not end the input silently")
	}
}

func TestParser_ParseLabelValueStream(t *testing.T) {
	p := newTestParser(t, exprGrammar)
	res, err := p.Parse(NewLabelValueStream(strings.NewReader("id:x\n+:+\nid:y\n")))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatalf("the input must be accepted; error: %v", res.Err)
	}
}
