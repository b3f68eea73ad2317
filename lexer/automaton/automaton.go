// File: automaton/automaton.go

// Package automaton builds the finite automata behind the handcrafted
// lexer: an NFA compiled from a rule set by Thompson construction, and
// an equivalent DFA obtained by subset construction.
//
// Both automata are plain transition tables over state indices. States
// are allocated from a flat arena and referenced by index, never by
// pointer, so sets of states canonicalize and hash cheaply during
// subset construction.
package automaton

import (
	"sort"

	"github.com/dangerclosesec/oatlex/lexer/token"
)

// Accept tags an accepting state with the rule that produced it.
type Accept struct {
	Kind     token.Kind
	Priority int
	Rule     int // declaration index within the rule set
}

// outranks reports whether a wins over b when both accept the same
// lexeme: higher priority first, then the earlier-declared rule.
func (a Accept) outranks(b Accept) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Rule < b.Rule
}

// NFA is a nondeterministic finite automaton. A (state, symbol) pair may
// lead to any number of successors, and states may be linked by epsilon
// edges that consume no input.
type NFA struct {
	start  int
	trans  []map[rune][]int // symbol transitions per state
	eps    [][]int          // epsilon successors per state
	accept []*Accept        // nil for non-accepting states
}

// Start returns the start state index.
func (n *NFA) Start() int { return n.start }

// NumStates returns the number of allocated states.
func (n *NFA) NumStates() int { return len(n.trans) }

// Accepting returns the accept tag of state s, if any.
func (n *NFA) Accepting(s int) (Accept, bool) {
	if s < 0 || s >= len(n.accept) || n.accept[s] == nil {
		return Accept{}, false
	}
	return *n.accept[s], true
}

func (n *NFA) newState() int {
	n.trans = append(n.trans, nil)
	n.eps = append(n.eps, nil)
	n.accept = append(n.accept, nil)
	return len(n.trans) - 1
}

func (n *NFA) addEdge(from int, r rune, to int) {
	if n.trans[from] == nil {
		n.trans[from] = make(map[rune][]int)
	}
	n.trans[from][r] = append(n.trans[from][r], to)
}

func (n *NFA) addEps(from, to int) {
	n.eps[from] = append(n.eps[from], to)
}

// Closure returns the epsilon-closure of the given states as a sorted,
// deduplicated slice. Closure is idempotent: Closure(Closure(s)) equals
// Closure(s).
func (n *NFA) Closure(states []int) []int {
	seen := make(map[int]bool, len(states))
	stack := make([]int, 0, len(states))
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.eps[s] {
			if !seen[t] {
				seen[t] = true
				stack = append(stack, t)
			}
		}
	}

	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Move returns the states reachable from the given set by consuming r,
// before taking any epsilon edges.
func (n *NFA) Move(states []int, r rune) []int {
	seen := make(map[int]bool)
	for _, s := range states {
		for _, t := range n.trans[s][r] {
			seen[t] = true
		}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Match simulates the NFA directly over the whole input and reports the
// winning accept tag, if the input is accepted. It exists for checking
// the DFA against the NFA; scanning always goes through the DFA.
func (n *NFA) Match(input string) (Accept, bool) {
	cur := n.Closure([]int{n.start})
	for _, r := range input {
		cur = n.Closure(n.Move(cur, r))
		if len(cur) == 0 {
			return Accept{}, false
		}
	}
	return n.bestAccept(cur)
}

// bestAccept picks the winning accept tag among the given states.
func (n *NFA) bestAccept(states []int) (Accept, bool) {
	var best Accept
	found := false
	for _, s := range states {
		a, ok := n.Accepting(s)
		if !ok {
			continue
		}
		if !found || a.outranks(best) {
			best = a
			found = true
		}
	}
	return best, found
}

// symbols returns the sorted set of non-epsilon symbols on edges leaving
// the given states.
func (n *NFA) symbols(states []int) []rune {
	seen := make(map[rune]bool)
	for _, s := range states {
		for r := range n.trans[s] {
			seen[r] = true
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
