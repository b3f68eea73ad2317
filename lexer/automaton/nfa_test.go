package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/oatlex/lexer/rules"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

func compile(t *testing.T, rs ...rules.Rule) *NFA {
	t.Helper()
	set, err := rules.New(rs)
	require.NoError(t, err)
	n, err := Compile(set)
	require.NoError(t, err)
	return n
}

func accepts(n *NFA, input string) bool {
	_, ok := n.Match(input)
	return ok
}

func TestCompileRejectsEmptySet(t *testing.T) {
	_, err := Compile(&rules.Set{})
	assert.ErrorIs(t, err, rules.ErrEmptyRuleSet)
}

func TestLiteralConcatenation(t *testing.T) {
	n := compile(t, rules.Rule{Kind: "ABC", Pattern: `abc`})
	assert.True(t, accepts(n, "abc"))
	assert.False(t, accepts(n, "ab"))
	assert.False(t, accepts(n, "abcd"))
	assert.False(t, accepts(n, ""))
}

func TestAlternation(t *testing.T) {
	n := compile(t, rules.Rule{Kind: "K", Pattern: `ab|cd|ef`})
	for _, ok := range []string{"ab", "cd", "ef"} {
		assert.True(t, accepts(n, ok), "should accept %q", ok)
	}
	for _, bad := range []string{"abcd", "a", "ce", ""} {
		assert.False(t, accepts(n, bad), "should reject %q", bad)
	}
}

func TestRepetition(t *testing.T) {
	n := compile(t, rules.Rule{Kind: "K", Pattern: `a(bc)*d`})
	assert.True(t, accepts(n, "ad"))
	assert.True(t, accepts(n, "abcd"))
	assert.True(t, accepts(n, "abcbcbcd"))
	assert.False(t, accepts(n, "abd"))

	n = compile(t, rules.Rule{Kind: "K", Pattern: `[0-9]+`})
	assert.True(t, accepts(n, "7"))
	assert.True(t, accepts(n, "0042"))
	assert.False(t, accepts(n, ""))
	assert.False(t, accepts(n, "4x"))

	n = compile(t, rules.Rule{Kind: "K", Pattern: `ab?c`})
	assert.True(t, accepts(n, "ac"))
	assert.True(t, accepts(n, "abc"))
	assert.False(t, accepts(n, "abbc"))
}

func TestCharacterClasses(t *testing.T) {
	n := compile(t, rules.Rule{Kind: "K", Pattern: `[a-cx_]`})
	for _, ok := range []string{"a", "b", "c", "x", "_"} {
		assert.True(t, accepts(n, ok), "should accept %q", ok)
	}
	assert.False(t, accepts(n, "d"))

	n = compile(t, rules.Rule{Kind: "K", Pattern: `[^abc]`})
	assert.True(t, accepts(n, "d"))
	assert.True(t, accepts(n, "!"))
	assert.False(t, accepts(n, "a"))
	// Negation ranges over printable ASCII only.
	assert.False(t, accepts(n, "\n"))

	// '-' first in a class is a literal.
	n = compile(t, rules.Rule{Kind: "K", Pattern: `[-+]`})
	assert.True(t, accepts(n, "-"))
	assert.True(t, accepts(n, "+"))
}

func TestEscapes(t *testing.T) {
	n := compile(t, rules.Rule{Kind: "WS", Pattern: `\s+`})
	assert.True(t, accepts(n, " \t\n\r "))
	assert.False(t, accepts(n, " x"))

	n = compile(t, rules.Rule{Kind: "K", Pattern: `\(\)`})
	assert.True(t, accepts(n, "()"))

	n = compile(t, rules.Rule{Kind: "K", Pattern: `a\|b`})
	assert.True(t, accepts(n, "a|b"))
	assert.False(t, accepts(n, "a"))
}

func TestMalformedPatterns(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
	}{
		{"unclosed group", `(ab`},
		{"stray close paren", `ab)`},
		{"unclosed class", `[ab`},
		{"unmatched close bracket", `ab]`},
		{"empty class", `[]`},
		{"invalid range", `[z-a]`},
		{"nothing to repeat", `*a`},
		{"unknown escape", `\q`},
		{"trailing backslash", `ab\`},
		{"nullable pattern", `a*`},
		{"empty alternative", `a|`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := rules.New([]rules.Rule{{Kind: "BAD", Pattern: tc.pattern}})
			require.NoError(t, err)
			_, err = Compile(set)
			var perr *rules.PatternError
			require.ErrorAs(t, err, &perr, "pattern %q should fail compilation", tc.pattern)
			assert.Equal(t, token.Kind("BAD"), perr.Kind, "error should name the offending rule")
		})
	}
}

func TestClosureIsIdempotentAndClosed(t *testing.T) {
	n := compile(t,
		rules.Rule{Kind: "A", Pattern: `(ab|cd)+`},
		rules.Rule{Kind: "B", Pattern: `a?b*c`},
	)

	start := n.Closure([]int{n.Start()})
	assert.Equal(t, start, n.Closure(start), "closure of a closure should be itself")

	cur := start
	for _, r := range "ab" {
		cur = n.Closure(n.Move(cur, r))
		require.NotEmpty(t, cur)
		assert.Equal(t, cur, n.Closure(cur))
	}
}

func TestMatchPicksWinningRule(t *testing.T) {
	n := compile(t,
		rules.Rule{Kind: token.Ident, Pattern: `[a-z]+`, Priority: 1},
		rules.Rule{Kind: token.If, Pattern: `if`, Priority: 2},
	)

	a, ok := n.Match("if")
	require.True(t, ok)
	assert.Equal(t, token.If, a.Kind, "keyword priority should beat the identifier rule")

	a, ok = n.Match("iffy")
	require.True(t, ok)
	assert.Equal(t, token.Ident, a.Kind)
}
