// File: automaton/dot.go
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders the NFA in Graphviz dot format. Edges sharing endpoints
// collapse into one arrow with a merged label; epsilon edges are
// labelled with a lambda.
func (n *NFA) DOT() string {
	var b strings.Builder
	b.WriteString("digraph NFA {\n")
	b.WriteString("    rankdir=LR;\n")
	fmt.Fprintf(&b, "    %d [shape=circle, label=\"start\"];\n", n.start)
	for s := range n.trans {
		labels := make(map[int][]rune)
		for r, tos := range n.trans[s] {
			for _, t := range tos {
				labels[t] = append(labels[t], r)
			}
		}
		for _, t := range sortedKeys(labels) {
			fmt.Fprintf(&b, "    %d -> %d [label=\"%s\"];\n", s, t, edgeLabel(labels[t]))
		}
		for _, t := range n.eps[s] {
			fmt.Fprintf(&b, "    %d -> %d [label=\"λ\"];\n", s, t)
		}
		if a, ok := n.Accepting(s); ok {
			fmt.Fprintf(&b, "    %d [shape=doublecircle, label=\"%s\"];\n", s, a.Kind)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// DOT renders the DFA in Graphviz dot format.
func (d *DFA) DOT() string {
	var b strings.Builder
	b.WriteString("digraph DFA {\n")
	b.WriteString("    rankdir=LR;\n")
	fmt.Fprintf(&b, "    %d [shape=circle, label=\"start\"];\n", d.start)
	for s := range d.trans {
		labels := make(map[int][]rune)
		for r, t := range d.trans[s] {
			labels[t] = append(labels[t], r)
		}
		for _, t := range sortedKeys(labels) {
			fmt.Fprintf(&b, "    %d -> %d [label=\"%s\"];\n", s, t, edgeLabel(labels[t]))
		}
		if a, ok := d.Accepting(s); ok {
			fmt.Fprintf(&b, "    %d [shape=doublecircle, label=\"%s\"];\n", s, a.Kind)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func sortedKeys(m map[int][]rune) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// edgeLabel joins the runes of a merged edge, collapsing runs of three
// or more consecutive characters into ranges so wide classes stay
// readable.
func edgeLabel(chars []rune) string {
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	var parts []string
	for i := 0; i < len(chars); {
		j := i
		for j+1 < len(chars) && chars[j+1] == chars[j]+1 {
			j++
		}
		if j-i >= 2 {
			parts = append(parts, escapeRune(chars[i])+"-"+escapeRune(chars[j]))
		} else {
			for k := i; k <= j; k++ {
				parts = append(parts, escapeRune(chars[k]))
			}
		}
		i = j + 1
	}
	return strings.Join(parts, "")
}

func escapeRune(r rune) string {
	switch r {
	case '"':
		return `\"`
	case '\\':
		return `\\\\`
	case '\t':
		return `\\t`
	case '\n':
		return `\\n`
	case '\r':
		return `\\r`
	default:
		return string(r)
	}
}
