// File: token/token.go
package token

import "fmt"

// Kind names the lexical category a rule assigns to matched text.
// The built-in Oat rule set uses the constants below; rule files may
// introduce additional kinds.
type Kind string

// Kinds produced by the built-in Oat rule set.
const (
	Ident  Kind = "IDENT"
	Number Kind = "NUMBER"
	String Kind = "STRING"

	// Keywords
	Int    Kind = "INT"
	Bool   Kind = "BOOL"
	Str    Kind = "TSTRING"
	Void   Kind = "VOID"
	Var    Kind = "VAR"
	Global Kind = "GLOBAL"
	If     Kind = "IF"
	Else   Kind = "ELSE"
	While  Kind = "WHILE"
	For    Kind = "FOR"
	Return Kind = "RETURN"
	New    Kind = "NEW"
	True   Kind = "TRUE"
	False  Kind = "FALSE"
	Null   Kind = "NULL"

	// Operators and delimiters
	Plus      Kind = "PLUS"     // +
	Minus     Kind = "MINUS"    // -
	Star      Kind = "STAR"     // *
	Shl       Kind = "SHL"      // <<
	Shr       Kind = "SHR"      // >>
	Sar       Kind = "SAR"      // >>>
	Lt        Kind = "LT"       // <
	Lte       Kind = "LTE"      // <=
	Gt        Kind = "GT"       // >
	Gte       Kind = "GTE"      // >=
	Eq        Kind = "EQ"       // ==
	Neq       Kind = "NEQ"      // !=
	Assign    Kind = "ASSIGN"   // =
	Amp       Kind = "AMP"      // &
	Pipe      Kind = "PIPE"     // |
	Bang      Kind = "BANG"     // !
	Tilde     Kind = "TILDE"    // ~
	Semicolon Kind = "SEMI"     // ;
	Comma     Kind = "COMMA"    // ,
	Dot       Kind = "DOT"      // .
	LBrace    Kind = "LBRACE"   // {
	RBrace    Kind = "RBRACE"   // }
	LParen    Kind = "LPAREN"   // (
	RParen    Kind = "RPAREN"   // )
	LBracket  Kind = "LBRACKET" // [
	RBracket  Kind = "RBRACKET" // ]

	// Layout kinds, emitted like any other and filtered by callers.
	Whitespace Kind = "WHITESPACE"
	Comment    Kind = "COMMENT"
)

// Position locates a token within its source text. Line and Column
// are 1-based, Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Lexeme, t.Pos)
}

// Layout reports whether the token carries no content of its own,
// i.e. whitespace or a comment.
func (t Token) Layout() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}
