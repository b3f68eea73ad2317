package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/oatlex/lexer/rules"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

// dfaMatch runs the DFA over the whole input and reports the accept
// tag, mirroring NFA.Match.
func dfaMatch(d *DFA, input string) (Accept, bool) {
	s := d.Start()
	for _, r := range input {
		next, ok := d.Step(s, r)
		if !ok {
			return Accept{}, false
		}
		s = next
	}
	return d.Accepting(s)
}

func testRules() []rules.Rule {
	return []rules.Rule{
		{Kind: token.If, Pattern: `if`, Priority: 2},
		{Kind: token.Ident, Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Priority: 1},
		{Kind: token.Number, Pattern: `[0-9]+`, Priority: 1},
		{Kind: token.Whitespace, Pattern: `\s+`, Priority: 0},
	}
}

func TestDFAEquivalentToNFA(t *testing.T) {
	n := compile(t, testRules()...)
	d := Determinize(n)

	samples := []string{
		"", "i", "if", "iff", "x1", "_", "_a9", "0", "42", "007",
		" ", " \t\n", "4x", "x 4", "@", "if2", "Ifx",
	}
	for _, s := range samples {
		na, nok := n.Match(s)
		da, dok := dfaMatch(d, s)
		require.Equal(t, nok, dok, "acceptance must agree on %q", s)
		if nok {
			assert.Equal(t, na.Kind, da.Kind, "winning kind must agree on %q", s)
		}
	}
}

func TestDFAPriorityTieBreak(t *testing.T) {
	n := compile(t, testRules()...)
	d := Determinize(n)

	a, ok := dfaMatch(d, "if")
	require.True(t, ok)
	assert.Equal(t, token.If, a.Kind, "higher priority wins inside a merged accept state")

	a, ok = dfaMatch(d, "iffy")
	require.True(t, ok)
	assert.Equal(t, token.Ident, a.Kind)
}

func TestDFADeclarationOrderBreaksEqualPriority(t *testing.T) {
	n := compile(t,
		rules.Rule{Kind: "FIRST", Pattern: `ab`, Priority: 1},
		rules.Rule{Kind: "SECOND", Pattern: `ab`, Priority: 1},
	)
	d := Determinize(n)

	a, ok := dfaMatch(d, "ab")
	require.True(t, ok)
	assert.Equal(t, token.Kind("FIRST"), a.Kind, "earlier declaration wins on equal priority")
}

func TestDFADeadStateIsImplicit(t *testing.T) {
	n := compile(t, testRules()...)
	d := Determinize(n)

	_, ok := d.Step(d.Start(), '@')
	assert.False(t, ok, "unmapped symbol leads to the dead state")
}

func TestDFAStateSetsAreClosed(t *testing.T) {
	n := compile(t, testRules()...)
	d := Determinize(n)

	for s := 0; s < d.NumStates(); s++ {
		set := d.StateSet(s)
		assert.Equal(t, set, n.Closure(set), "DFA state %d must hold an epsilon-closed set", s)
	}
}

func TestDeterminizeIsReproducible(t *testing.T) {
	set, err := rules.New(testRules())
	require.NoError(t, err)

	n1, err := Compile(set)
	require.NoError(t, err)
	n2, err := Compile(set)
	require.NoError(t, err)

	d1 := Determinize(n1)
	d2 := Determinize(n2)

	assert.Equal(t, d1.NumStates(), d2.NumStates())
	for _, s := range []string{"if", "iffy", "42", " ", "x9_", "@"} {
		a1, ok1 := dfaMatch(d1, s)
		a2, ok2 := dfaMatch(d2, s)
		assert.Equal(t, ok1, ok2, "acceptance must agree on %q", s)
		assert.Equal(t, a1.Kind, a2.Kind, "kind must agree on %q", s)
	}
}

func TestDFAStateCountStaysSmall(t *testing.T) {
	// Only reachable subsets are materialized; the Oat rule set must not
	// come anywhere near the exponential worst case.
	n, err := Compile(rules.Oat())
	require.NoError(t, err)
	d := Determinize(n)
	assert.Less(t, d.NumStates(), n.NumStates(), "reachable subsets should undercut the NFA state count")
}

func TestDOTExports(t *testing.T) {
	n := compile(t, testRules()...)
	d := Determinize(n)

	ndot := n.DOT()
	assert.Contains(t, ndot, "digraph NFA")
	assert.Contains(t, ndot, "doublecircle")

	ddot := d.DOT()
	assert.Contains(t, ddot, "digraph DFA")
	assert.Contains(t, ddot, "doublecircle")
}
