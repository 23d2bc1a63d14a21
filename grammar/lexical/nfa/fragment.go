package nfa

// fragment is a self-contained piece of a Thompson NFA. Its start state is 0 and its end state
// is the last one. Combining fragments copies the operands into a new arena and shifts their
// state numbers by an offset.
type fragment struct {
	edges [][]Edge
}

func newSymbolFragment(c rune) *fragment {
	return &fragment{
		edges: [][]Edge{
			{{Symbol: c, To: 1}},
			nil,
		},
	}
}

func (f *fragment) len() int {
	return len(f.edges)
}

func (f *fragment) end() int {
	return len(f.edges) - 1
}

// shifted returns a copy of the edges with every target moved by offset.
func (f *fragment) shifted(offset int) [][]Edge {
	edges := make([][]Edge, len(f.edges))
	for s, es := range f.edges {
		if len(es) == 0 {
			continue
		}
		edges[s] = make([]Edge, len(es))
		for i, e := range es {
			e.To += offset
			edges[s][i] = e
		}
	}
	return edges
}

func epsilonTo(to int) Edge {
	return Edge{Epsilon: true, To: to}
}

// concat links the end of l to the start of r.
func concat(l, r *fragment) *fragment {
	offset := l.len()
	edges := append(l.shifted(0), r.shifted(offset)...)
	edges[l.end()] = append(edges[l.end()], epsilonTo(offset))
	return &fragment{edges: edges}
}

// union adds a new start branching into both operands and a new end joining them.
func union(l, r *fragment) *fragment {
	lOffset := 1
	rOffset := 1 + l.len()
	end := rOffset + r.len()

	edges := [][]Edge{{epsilonTo(lOffset), epsilonTo(rOffset)}}
	edges = append(edges, l.shifted(lOffset)...)
	edges = append(edges, r.shifted(rOffset)...)
	edges = append(edges, nil)
	edges[lOffset+l.end()] = append(edges[lOffset+l.end()], epsilonTo(end))
	edges[rOffset+r.end()] = append(edges[rOffset+r.end()], epsilonTo(end))
	return &fragment{edges: edges}
}

type closureKind int

const (
	closureStar closureKind = iota
	closurePlus
	closureOption
)

// closure wraps f between a new start and a new end. The start may skip f (star and option) and
// the end of f may loop back to its start (star and plus).
func closure(f *fragment, kind closureKind) *fragment {
	end := 1 + f.len()
	start := []Edge{epsilonTo(1)}
	if kind != closurePlus {
		start = append(start, epsilonTo(end))
	}

	edges := [][]Edge{start}
	edges = append(edges, f.shifted(1)...)
	edges = append(edges, nil)
	last := 1 + f.end()
	if kind != closureOption {
		edges[last] = append(edges[last], epsilonTo(1))
	}
	edges[last] = append(edges[last], epsilonTo(end))
	return &fragment{edges: edges}
}
