package test

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"sync"

	"github.com/nihei9/slrx/driver"
	"github.com/nihei9/slrx/driver/lexer"
	"github.com/nihei9/slrx/grammar"
	"github.com/nihei9/slrx/grammar/lexical"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected parse tree. A nil element of Children stands for an empty slot.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Lexeme   string
	Children []*Tree
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, lexeme string) *Tree {
	return &Tree{
		Kind:   kind,
		Lexeme: lexeme,
	}
}

// NewTree converts a parse tree the driver built.
func NewTree(node *driver.Node) *Tree {
	if node == nil {
		return nil
	}
	var children []*Tree
	if len(node.Children) > 0 {
		children = make([]*Tree, len(node.Children))
		for i, c := range node.Children {
			children[i] = NewTree(c)
		}
	}
	return &Tree{
		Kind:     node.KindName,
		Lexeme:   node.Text,
		Children: children,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		if c == nil {
			continue
		}
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t == nil {
		return "-"
	}
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	if t == nil {
		buf.WriteString("-")
		return
	}
	buf.WriteString("(")
	buf.WriteString(formatLabel(t.Kind))
	if t.Lexeme != "" {
		buf.WriteString(" ")
		buf.WriteString(strconv.QuoteToASCII(t.Lexeme))
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

var reLabel = regexp.MustCompile(`^[a-zA-Z0-9_+\-*/<>=!&|'.,;:#$%^~?@\[\]{}]+$`)

// formatLabel quotes labels the tree syntax cannot spell bare.
func formatLabel(label string) string {
	if label == "-" || !reLabel.MatchString(label) {
		return strconv.QuoteToASCII(label)
	}
	return label
}

// DiffTree compares two trees. An expected kind `_` matches any kind.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil || actual == nil {
		return []*TreeDiff{
			newTreeDiff(expected, actual, fmt.Sprintf("unexpected node: expected %v but got %v", expected.path(), actual.path())),
		}
	}
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

// TestCase consists of three parts separated by lines of hyphens: a description, a source, and the
// expected tree.
type TestCase struct {
	Description string
	Source      []byte
	Output      *Tree

	// SourceLine is the line of the file where the source begins.
	SourceLine int
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	tree, err := tp.parseTree(bytes.NewReader(parts[2].buf))
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      tree,
		SourceLine:  parts[0].lineCount + 2,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteString("\n")
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

//go:embed tree_lexspec.json
var treeLexSpec []byte

//go:embed tree.grammar
var treeGrammar []byte

var treeNotation struct {
	once   sync.Once
	clspec *lexical.CompiledLexSpec
	parser *driver.Parser
	err    error
}

// loadTreeParser builds the tree notation parser on the first call and returns the same one afterwards.
func loadTreeParser() (*lexical.CompiledLexSpec, *driver.Parser, error) {
	treeNotation.once.Do(func() {
		treeNotation.clspec, treeNotation.parser, treeNotation.err = newTreeParser()
	})
	return treeNotation.clspec, treeNotation.parser, treeNotation.err
}

// newTreeParser builds the tree notation parser from the lexical specification and the grammar
// embedded in this package.
func newTreeParser() (*lexical.CompiledLexSpec, *driver.Parser, error) {
	lspec := &lexical.LexSpec{}
	err := json.Unmarshal(treeLexSpec, lspec)
	if err != nil {
		return nil, nil, err
	}
	clspec, err, cerrs := lexical.Compile(lspec)
	if err != nil {
		if len(cerrs) > 0 {
			return nil, nil, cerrs[0]
		}
		return nil, nil, err
	}
	gram, err := grammar.Parse(bytes.NewReader(treeGrammar))
	if err != nil {
		return nil, nil, err
	}
	automaton, err := grammar.BuildAutomaton(gram)
	if err != nil {
		return nil, nil, err
	}
	if !automaton.IsSLR() {
		return nil, nil, errors.New(automaton.Reason())
	}
	p, err := driver.NewParser(automaton)
	if err != nil {
		return nil, nil, err
	}
	return clspec, p, nil
}

type treeParser struct {
	lineOffset int
}

func (tp *treeParser) parseTree(src io.Reader) (*Tree, error) {
	clspec, p, err := loadTreeParser()
	if err != nil {
		return nil, err
	}
	toks, err := lexer.NewTokenStream(clspec, src)
	if err != nil {
		return nil, err
	}
	res, err := p.Parse(toks)
	if err != nil {
		var lexErr *lexer.LexError
		if errors.As(err, &lexErr) {
			return nil, fmt.Errorf("%v:%v: invalid token: %q", tp.lineOffset+lexErr.Row, lexErr.Col, lexErr.Lexeme)
		}
		return nil, err
	}
	if res.Err != nil {
		tok := res.Err.Token
		if tok.EOF() {
			return nil, fmt.Errorf("%v: unexpected end of tree", tp.lineOffset+tok.Row)
		}
		return nil, fmt.Errorf("%v:%v: unexpected token: %q", tp.lineOffset+tok.Row, tok.Col, tok.Text)
	}
	t, err := tp.genTree(res.Tree)
	if err != nil {
		return nil, err
	}
	return t.Fill(), nil
}

// genTree walks a tree node. Its children are the name and the item list.
func (tp *treeParser) genTree(node *driver.Node) (*Tree, error) {
	name := node.Children[0].Children[0]
	kind := name.Text
	if name.KindName == "string" {
		var err error
		kind, err = tp.unquote(name)
		if err != nil {
			return nil, err
		}
	}

	var items []*driver.Node
	for list := node.Children[1]; len(list.Children) > 0; list = list.Children[0] {
		items = append(items, list.Children[1].Children[0])
	}

	t := &Tree{
		Kind: kind,
	}
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		switch item.KindName {
		case "string":
			if i != len(items)-1 {
				return nil, fmt.Errorf("%v:%v: a lexeme must precede child nodes", tp.lineOffset+item.Row, item.Col)
			}
			lexeme, err := tp.unquote(item)
			if err != nil {
				return nil, err
			}
			t.Lexeme = lexeme
		case "nil_node":
			t.Children = append(t.Children, nil)
		default:
			child, err := tp.genTree(item)
			if err != nil {
				return nil, err
			}
			t.Children = append(t.Children, child)
		}
	}
	return t, nil
}

func (tp *treeParser) unquote(str *driver.Node) (string, error) {
	s, err := strconv.Unquote(str.Text)
	if err != nil {
		return "", fmt.Errorf("%v:%v: invalid string %v: %w", tp.lineOffset+str.Row, str.Col, str.Text, err)
	}
	return s, nil
}
