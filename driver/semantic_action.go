package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/nihei9/slrx/grammar"
	"golang.org/x/exp/slices"
)

type SemanticActionSet interface {
	// Shift runs when the parser shifts a token onto the state stack.
	Shift(tok *Token)

	// Reduce runs when the parser reduces the non-ε symbols on top of the stack to the LHS of `prod`.
	// A non-nil error aborts parsing with a tree construction error.
	Reduce(prod *grammar.Production) error

	// Accept runs when the parser accepts an input. A non-nil error aborts parsing with a tree
	// construction error.
	Accept() error
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

// Node is a node of a parse tree. Only leaves carry Text. An element of Children is nil when no action
// filled the slot.
type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	switch {
	case node == nil:
		fmt.Fprintf(w, "%v-\n", ruledLine)
		return
	case node.Text != "":
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

var (
	errStackUnderflow    = errors.New("a reduction pops more entries than the stack holds")
	errPromotionConflict = errors.New("both the promoted node and the reduction node already have children")
	errWorkspaceSize     = errors.New("the workspace must hold exactly one node on acceptance")
)

// SyntaxTreeActionSet assembles a parse tree. Alternatives having an action table are re-rooted and
// re-slotted by it; the other alternatives keep every popped node as a child in order.
type SyntaxTreeActionSet struct {
	tree     *Node
	semStack *semanticStack
}

func NewSyntaxTreeActionSet() *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{
		semStack: newSemanticStack(),
	}
}

func (a *SyntaxTreeActionSet) Shift(tok *Token) {
	a.semStack.push(&Node{
		KindName: tok.Label,
		Text:     tok.Text,
		Row:      tok.Row,
		Col:      tok.Col,
	})
}

func (a *SyntaxTreeActionSet) Reduce(prod *grammar.Production) error {
	// When an alternative consists of ε only, `n` will be 0, and `handle` will be empty slice.
	n := prod.Len()
	handle, ok := a.semStack.pop(n)
	if !ok {
		return fmt.Errorf("%w; production: %v, stack size: %v", errStackUnderflow, prod, a.semStack.len())
	}

	node, err := applyActions(prod, handle)
	if err != nil {
		return fmt.Errorf("%w; production: %v", err, prod)
	}
	a.semStack.push(node)

	return nil
}

// applyActions visits positions in descending order. A slot -1 replaces the current root with the node
// at the position, which inherits the children of the replaced root. A slot already holding a child is
// overwritten. Positions without an action are dropped.
func applyActions(prod *grammar.Production, handle []*Node) (*Node, error) {
	if prod.Actions == nil {
		children := make([]*Node, len(handle))
		copy(children, handle)
		return &Node{
			KindName: prod.LHS,
			Children: children,
		}, nil
	}

	positions := make([]int, 0, len(prod.Actions))
	for pos := range prod.Actions {
		positions = append(positions, pos)
	}
	slices.Sort(positions)

	root := &Node{
		KindName: prod.LHS,
	}
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		if pos >= len(handle) {
			return nil, errStackUnderflow
		}
		child := handle[pos]
		slot := prod.Actions[pos]
		if slot < 0 {
			if len(root.Children) > 0 {
				if len(child.Children) > 0 {
					return nil, errPromotionConflict
				}
				child.Children = root.Children
			}
			root = child
			continue
		}

		if slot >= len(root.Children) {
			children := make([]*Node, slot+1)
			copy(children, root.Children)
			root.Children = children
		}
		root.Children[slot] = child
	}

	return root, nil
}

func (a *SyntaxTreeActionSet) Accept() error {
	if a.semStack.len() != 1 {
		return fmt.Errorf("%w; size: %v", errWorkspaceSize, a.semStack.len())
	}
	top, _ := a.semStack.pop(1)
	a.tree = top[0]
	return nil
}

func (a *SyntaxTreeActionSet) Tree() *Node {
	return a.tree
}

type semanticStack struct {
	frames []*Node
}

func newSemanticStack() *semanticStack {
	return &semanticStack{}
}

func (s *semanticStack) push(f *Node) {
	s.frames = append(s.frames, f)
}

func (s *semanticStack) pop(n int) ([]*Node, bool) {
	if n > len(s.frames) {
		return nil, false
	}
	fs := s.frames[len(s.frames)-n:]
	s.frames = s.frames[:len(s.frames)-n]

	return fs, true
}

func (s *semanticStack) len() int {
	return len(s.frames)
}
