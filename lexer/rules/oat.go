// File: rules/oat.go
package rules

import "github.com/dangerclosesec/oatlex/lexer/token"

// Priorities used by the built-in Oat rule set. Keywords outrank the
// identifier rule so that "if" lexes as IF, never IDENT; layout sits
// below everything else.
const (
	priLayout  = 0
	priDefault = 1
	priKeyword = 2
)

// Oat returns the rule set for the Oat language. Compound operators are
// declared before their prefixes so both lexer backends agree on them.
func Oat() *Set {
	set, err := New([]Rule{
		// Keywords
		{Kind: token.Int, Pattern: `int`, Priority: priKeyword},
		{Kind: token.Bool, Pattern: `bool`, Priority: priKeyword},
		{Kind: token.Str, Pattern: `string`, Priority: priKeyword},
		{Kind: token.Void, Pattern: `void`, Priority: priKeyword},
		{Kind: token.Var, Pattern: `var`, Priority: priKeyword},
		{Kind: token.Global, Pattern: `global`, Priority: priKeyword},
		{Kind: token.If, Pattern: `if`, Priority: priKeyword},
		{Kind: token.Else, Pattern: `else`, Priority: priKeyword},
		{Kind: token.While, Pattern: `while`, Priority: priKeyword},
		{Kind: token.For, Pattern: `for`, Priority: priKeyword},
		{Kind: token.Return, Pattern: `return`, Priority: priKeyword},
		{Kind: token.New, Pattern: `new`, Priority: priKeyword},
		{Kind: token.True, Pattern: `true`, Priority: priKeyword},
		{Kind: token.False, Pattern: `false`, Priority: priKeyword},
		{Kind: token.Null, Pattern: `null`, Priority: priKeyword},

		// Literals and identifiers
		{Kind: token.Ident, Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Priority: priDefault},
		{Kind: token.Number, Pattern: `[0-9]+`, Priority: priDefault},
		{Kind: token.String, Pattern: `"[^"]*"`, Priority: priDefault},

		// Operators, longest first
		{Kind: token.Sar, Pattern: `>>>`, Priority: priDefault},
		{Kind: token.Shr, Pattern: `>>`, Priority: priDefault},
		{Kind: token.Shl, Pattern: `<<`, Priority: priDefault},
		{Kind: token.Lte, Pattern: `<=`, Priority: priDefault},
		{Kind: token.Gte, Pattern: `>=`, Priority: priDefault},
		{Kind: token.Eq, Pattern: `==`, Priority: priDefault},
		{Kind: token.Neq, Pattern: `!=`, Priority: priDefault},
		{Kind: token.Lt, Pattern: `<`, Priority: priDefault},
		{Kind: token.Gt, Pattern: `>`, Priority: priDefault},
		{Kind: token.Assign, Pattern: `=`, Priority: priDefault},
		{Kind: token.Plus, Pattern: `\+`, Priority: priDefault},
		{Kind: token.Minus, Pattern: `-`, Priority: priDefault},
		{Kind: token.Star, Pattern: `\*`, Priority: priDefault},
		{Kind: token.Amp, Pattern: `&`, Priority: priDefault},
		{Kind: token.Pipe, Pattern: `\|`, Priority: priDefault},
		{Kind: token.Bang, Pattern: `!`, Priority: priDefault},
		{Kind: token.Tilde, Pattern: `~`, Priority: priDefault},

		// Delimiters
		{Kind: token.Semicolon, Pattern: `;`, Priority: priDefault},
		{Kind: token.Comma, Pattern: `,`, Priority: priDefault},
		{Kind: token.Dot, Pattern: `\.`, Priority: priDefault},
		{Kind: token.LBrace, Pattern: `\{`, Priority: priDefault},
		{Kind: token.RBrace, Pattern: `\}`, Priority: priDefault},
		{Kind: token.LParen, Pattern: `\(`, Priority: priDefault},
		{Kind: token.RParen, Pattern: `\)`, Priority: priDefault},
		{Kind: token.LBracket, Pattern: `\[`, Priority: priDefault},
		{Kind: token.RBracket, Pattern: `\]`, Priority: priDefault},

		// Layout
		{Kind: token.Whitespace, Pattern: `\s+`, Priority: priLayout},
	})
	if err != nil {
		// The built-in set is fixed at compile time; failing to build it
		// is a programming error.
		panic(err)
	}
	return set
}
