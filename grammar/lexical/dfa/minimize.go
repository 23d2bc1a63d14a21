package dfa

// Minimize merges equivalent states by partition refinement.
//
// The initial partition separates non-accepting states from accepting ones, and accepting states of
// different kinds from each other. Every pass refines the partition once per symbol; a block is split
// when its members move to different blocks on that symbol, a missing transition counting as a block
// of its own. Passes repeat until one of them splits nothing. Minimal states are numbered by a
// breadth-first walk from the block holding the start state, and each takes its flags and
// transitions from its lowest member.
func Minimize(d *DFA) *DFA {
	block, count := refine(len(d.states), func(s int) [2]int {
		st := d.states[s]
		if !st.accepting {
			return [2]int{-1, 0}
		}
		return [2]int{st.kind, 0}
	})

	passes := 0
	for {
		passes++
		split := false
		for i := range d.symbols {
			next, nextCount := refine(len(d.states), func(s int) [2]int {
				t := d.states[s].next[i]
				if t == StateNil {
					return [2]int{block[s], -1}
				}
				return [2]int{block[s], block[t]}
			})
			if nextCount > count {
				split = true
			}
			block, count = next, nextCount
		}
		if !split {
			break
		}
	}

	members := make([][]int, count)
	for s, b := range block {
		members[b] = append(members[b], s)
	}

	minimal := &DFA{
		symbols: d.symbols,
	}
	ids := map[int]int{
		block[StateStart]: StateStart,
	}
	queue := []int{block[StateStart]}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		rep := d.states[members[b][0]]
		s := &state{
			next:      newTransitions(len(d.symbols)),
			accepting: rep.accepting,
			kind:      rep.kind,
			members:   members[b],
		}
		for i, t := range rep.next {
			if t == StateNil {
				continue
			}
			id, ok := ids[block[t]]
			if !ok {
				id = len(ids)
				ids[block[t]] = id
				queue = append(queue, block[t])
			}
			s.next[i] = id
		}
		minimal.states = append(minimal.states, s)
	}
	tracer().Debugf("minimization: %d state(s) -> %d state(s) in %d pass(es)", len(d.states), len(minimal.states), passes)
	return minimal
}

// refine numbers states by their signature. Blocks are numbered in order of first appearance, so a
// partition that does not change keeps its numbering.
func refine(n int, signature func(s int) [2]int) ([]int, int) {
	block := make([]int, n)
	ids := map[[2]int]int{}
	for s := 0; s < n; s++ {
		sig := signature(s)
		id, ok := ids[sig]
		if !ok {
			id = len(ids)
			ids[sig] = id
		}
		block[s] = id
	}
	return block, len(ids)
}
