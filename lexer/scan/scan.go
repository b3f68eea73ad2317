// File: scan/scan.go

// Package scan drives a DFA over source text, producing tokens one at
// a time under maximal-munch semantics: every call consumes the longest
// prefix the DFA accepts at the current position.
package scan

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dangerclosesec/oatlex/lexer/automaton"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

// LexError reports a character no rule accepts.
type LexError struct {
	Ch  rune
	Pos token.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("scan: unexpected character %q at %s", e.Ch, e.Pos)
}

// Option configures a Scanner.
type Option func(*Scanner)

// SkipIllegal makes the Scanner advance past characters no rule
// accepts instead of returning a LexError. By default scanning halts
// at the first such character.
func SkipIllegal() Option {
	return func(s *Scanner) { s.skipIllegal = true }
}

// Scanner tokenizes one input string against a DFA. It holds no policy
// beyond error recovery: whitespace and comment tokens come out like
// any others, for the caller to filter. A Scanner is single-use and
// not safe for concurrent calls, but any number of Scanners may share
// one DFA.
type Scanner struct {
	dfa   *automaton.DFA
	input string

	offset int
	line   int
	column int

	skipIllegal bool
}

// New returns a Scanner positioned at the start of input.
func New(dfa *automaton.DFA, input string, opts ...Option) *Scanner {
	s := &Scanner{
		dfa:    dfa,
		input:  input,
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next token. It returns io.EOF once the input is
// exhausted, and a *LexError when no rule accepts even one character
// at the current position. Tokens already returned stay valid after
// an error.
func (s *Scanner) Next() (token.Token, error) {
	for {
		if s.offset >= len(s.input) {
			return token.Token{}, io.EOF
		}

		state := s.dfa.Start()
		end := -1
		var tag automaton.Accept

		pos := s.offset
		for pos < len(s.input) {
			r, w := utf8.DecodeRuneInString(s.input[pos:])
			next, ok := s.dfa.Step(state, r)
			if !ok {
				break
			}
			state = next
			pos += w
			if a, ok := s.dfa.Accepting(state); ok {
				end = pos
				tag = a
			}
		}

		if end < 0 {
			r, w := utf8.DecodeRuneInString(s.input[s.offset:])
			if !s.skipIllegal {
				return token.Token{}, &LexError{Ch: r, Pos: s.position()}
			}
			s.advance(s.input[s.offset : s.offset+w])
			continue
		}

		tok := token.Token{
			Kind:   tag.Kind,
			Lexeme: s.input[s.offset:end],
			Pos:    s.position(),
		}
		s.advance(tok.Lexeme)
		return tok, nil
	}
}

// All drains the Scanner. On error the tokens produced so far are
// returned alongside it.
func (s *Scanner) All() ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
}

func (s *Scanner) position() token.Position {
	return token.Position{Line: s.line, Column: s.column, Offset: s.offset}
}

// advance moves the cursor past the consumed text, keeping line and
// column in step.
func (s *Scanner) advance(text string) {
	s.offset += len(text)
	for _, r := range text {
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
	}
}
