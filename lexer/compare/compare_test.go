package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/oatlex/lexer/automaton"
	"github.com/dangerclosesec/oatlex/lexer/liblex"
	"github.com/dangerclosesec/oatlex/lexer/rules"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

const program = `int x = 41;
string msg = "hello world";
if (x >= 40) {
	x = x + 1;
} else {
	x = x << 2;
}
while (!stop) {
	arr[0] = x * 2;
}
return x != null;
`

func build(t *testing.T) (*automaton.DFA, *liblex.Lexer) {
	t.Helper()
	set := rules.Oat()
	n, err := automaton.Compile(set)
	require.NoError(t, err)
	ll, err := liblex.New(set)
	require.NoError(t, err)
	return automaton.Determinize(n), ll
}

func TestBothLexersAgree(t *testing.T) {
	dfa, ll := build(t)

	res, err := Run(dfa, ll, "test.oat", program)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hand)

	m := Streams(res.Hand, res.Lib)
	assert.Nil(t, m, "token streams should match: %s", m)
}

func TestRunSurfacesLexErrors(t *testing.T) {
	dfa, ll := build(t)

	_, err := Run(dfa, ll, "test.oat", "x ` y")
	assert.Error(t, err, "a character no rule accepts must fail both paths")
}

func TestStreamsReportsFirstDivergence(t *testing.T) {
	hand := []token.Token{
		{Kind: token.Ident, Lexeme: "x"},
		{Kind: token.Number, Lexeme: "1"},
	}
	lib := []token.Token{
		{Kind: token.Ident, Lexeme: "x"},
		{Kind: token.Number, Lexeme: "2"},
	}

	m := Streams(hand, lib)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, "1", m.Hand.Lexeme)
	assert.Equal(t, "2", m.Lib.Lexeme)
}

func TestStreamsLengthMismatch(t *testing.T) {
	hand := []token.Token{{Kind: token.Ident, Lexeme: "x"}}

	m := Streams(hand, nil)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Index)
	assert.Nil(t, m.Lib)

	m = Streams(nil, hand)
	require.NotNil(t, m)
	assert.Nil(t, m.Hand)
}

func TestStreamsPositionPolicy(t *testing.T) {
	hand := []token.Token{{Kind: token.Ident, Lexeme: "x", Pos: token.Position{Line: 1, Column: 1}}}
	lib := []token.Token{{Kind: token.Ident, Lexeme: "x", Pos: token.Position{Line: 1, Column: 2}}}

	assert.Nil(t, Streams(hand, lib), "positions are ignored by default")
	assert.NotNil(t, Streams(hand, lib, WithPositions()), "positions must match under WithPositions")
}
