// File: automaton/dfa.go
package automaton

import (
	"strconv"
	"strings"
)

// DFA is a deterministic finite automaton produced by subset
// construction. Each (state, symbol) pair maps to at most one
// successor; a missing entry means the implicit dead state, from which
// nothing is accepted.
type DFA struct {
	start  int
	trans  []map[rune]int
	accept []*Accept
	sets   [][]int // the NFA states each DFA state stands for
}

// Start returns the start state index.
func (d *DFA) Start() int { return d.start }

// NumStates returns the number of materialized states. Only subsets
// reachable from the start state are ever created.
func (d *DFA) NumStates() int { return len(d.trans) }

// Step returns the successor of state s on symbol r. The second result
// is false when the transition leads to the dead state.
func (d *DFA) Step(s int, r rune) (int, bool) {
	if s < 0 || s >= len(d.trans) {
		return 0, false
	}
	t, ok := d.trans[s][r]
	return t, ok
}

// Accepting returns the accept tag of state s, if any. The tag is
// already tie-broken: it is the winner among all accepting NFA states
// the DFA state contains.
func (d *DFA) Accepting(s int) (Accept, bool) {
	if s < 0 || s >= len(d.accept) || d.accept[s] == nil {
		return Accept{}, false
	}
	return *d.accept[s], true
}

// StateSet returns the underlying NFA state set of DFA state s.
func (d *DFA) StateSet(s int) []int {
	out := make([]int, len(d.sets[s]))
	copy(out, d.sets[s])
	return out
}

// Determinize converts the NFA into an equivalent DFA. Starting from
// the epsilon-closure of the NFA start state, it repeatedly expands
// every unprocessed state set over every symbol leaving it, reusing
// previously seen sets. Termination follows from the finite number of
// distinct subsets; symbols are visited in sorted order so repeated
// runs produce identical automata.
func Determinize(n *NFA) *DFA {
	d := &DFA{}
	ids := make(map[string]int)

	add := func(set []int) int {
		d.trans = append(d.trans, nil)
		d.sets = append(d.sets, set)
		id := len(d.trans) - 1
		if a, ok := n.bestAccept(set); ok {
			tag := a
			d.accept = append(d.accept, &tag)
		} else {
			d.accept = append(d.accept, nil)
		}
		ids[setKey(set)] = id
		return id
	}

	startSet := n.Closure([]int{n.start})
	d.start = add(startSet)

	queue := []int{d.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curSet := d.sets[cur]

		for _, r := range n.symbols(curSet) {
			next := n.Closure(n.Move(curSet, r))
			if len(next) == 0 {
				continue
			}
			id, seen := ids[setKey(next)]
			if !seen {
				id = add(next)
				queue = append(queue, id)
			}
			if d.trans[cur] == nil {
				d.trans[cur] = make(map[rune]int)
			}
			d.trans[cur][r] = id
		}
	}

	return d
}

// setKey canonicalizes a sorted state set into a map key.
func setKey(set []int) string {
	var b strings.Builder
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}
	return b.String()
}
