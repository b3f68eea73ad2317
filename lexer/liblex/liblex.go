// File: liblex/liblex.go

// Package liblex tokenizes with participle's stateful lexer instead of
// the handcrafted automata. It exists as an independent implementation
// of the same token-stream contract, for cross-checking the DFA path.
package liblex

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dangerclosesec/oatlex/lexer/rules"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

// Lexer wraps a participle lexer definition generated from a rule set.
type Lexer struct {
	def   *lexer.StatefulDefinition
	kinds map[lexer.TokenType]token.Kind
}

// New compiles the rule set into a participle definition. Participle
// picks the first rule that matches rather than the longest match, so
// rules are handed over in priority order and bare-word patterns
// (keywords) get a trailing word boundary; that makes the two lexers
// agree on inputs like "iffy", which is one IDENT, not IF + "fy".
func New(set *rules.Set) (*Lexer, error) {
	rs := set.Rules()
	order := make([]int, len(rs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if rs[order[a]].Priority != rs[order[b]].Priority {
			return rs[order[a]].Priority > rs[order[b]].Priority
		}
		return order[a] < order[b]
	})

	simple := make([]lexer.SimpleRule, 0, len(rs))
	for _, i := range order {
		r := rs[i]
		pattern := r.Pattern
		if isWord(pattern) {
			pattern += `\b`
		}
		simple = append(simple, lexer.SimpleRule{Name: string(r.Kind), Pattern: pattern})
	}

	def, err := lexer.NewSimple(simple)
	if err != nil {
		return nil, fmt.Errorf("liblex: building lexer: %w", err)
	}

	kinds := make(map[lexer.TokenType]token.Kind, len(rs))
	for name, typ := range def.Symbols() {
		kinds[typ] = token.Kind(name)
	}

	return &Lexer{def: def, kinds: kinds}, nil
}

// Lex tokenizes the whole input, mapping participle tokens onto the
// shared Token type.
func (l *Lexer) Lex(filename, input string) ([]token.Token, error) {
	lx, err := l.def.LexString(filename, input)
	if err != nil {
		return nil, fmt.Errorf("liblex: %w", err)
	}

	raw, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, fmt.Errorf("liblex: %w", err)
	}

	out := make([]token.Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			continue
		}
		kind, ok := l.kinds[t.Type]
		if !ok {
			return out, fmt.Errorf("liblex: unknown token type %d for %q", t.Type, t.Value)
		}
		out = append(out, token.Token{
			Kind:   kind,
			Lexeme: t.Value,
			Pos: token.Position{
				Line:   t.Pos.Line,
				Column: t.Pos.Column,
				Offset: t.Pos.Offset,
			},
		})
	}
	return out, nil
}

// isWord reports whether the pattern is a bare alphabetic literal.
func isWord(pattern string) bool {
	if pattern == "" {
		return false
	}
	for _, r := range pattern {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return true
}
