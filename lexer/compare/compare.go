// File: compare/compare.go

// Package compare cross-checks the handcrafted DFA lexer against the
// participle-backed one on the same input.
package compare

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dangerclosesec/oatlex/lexer/automaton"
	"github.com/dangerclosesec/oatlex/lexer/liblex"
	"github.com/dangerclosesec/oatlex/lexer/scan"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

// Option configures stream comparison.
type Option func(*options)

type options struct {
	positions bool
}

// WithPositions makes comparison require equal line/column/offset
// metadata, not just kind and lexeme.
func WithPositions() Option {
	return func(o *options) { o.positions = true }
}

// Mismatch describes the first point where two token streams diverge.
// A nil Hand or Lib token means that stream ended early.
type Mismatch struct {
	Index int
	Hand  *token.Token
	Lib   *token.Token
}

func (m *Mismatch) String() string {
	switch {
	case m.Hand == nil:
		return fmt.Sprintf("token %d: handcrafted stream ended, library produced %s", m.Index, m.Lib)
	case m.Lib == nil:
		return fmt.Sprintf("token %d: library stream ended, handcrafted produced %s", m.Index, m.Hand)
	default:
		return fmt.Sprintf("token %d: handcrafted %s != library %s", m.Index, m.Hand, m.Lib)
	}
}

// Result holds both token streams from a dual run.
type Result struct {
	Hand []token.Token
	Lib  []token.Token
}

// Run tokenizes the input with both lexers concurrently. The DFA and
// the participle definition are read-only once built, and each lexer
// owns its cursor state, so the two runs share nothing mutable.
func Run(dfa *automaton.DFA, lib *liblex.Lexer, filename, input string) (Result, error) {
	var res Result

	var g errgroup.Group
	g.Go(func() error {
		toks, err := scan.New(dfa, input).All()
		if err != nil {
			return fmt.Errorf("handcrafted lexer: %w", err)
		}
		res.Hand = toks
		return nil
	})
	g.Go(func() error {
		toks, err := lib.Lex(filename, input)
		if err != nil {
			return fmt.Errorf("library lexer: %w", err)
		}
		res.Lib = toks
		return nil
	})
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// Streams compares two token streams and returns the first mismatch,
// or nil when they agree. Kind and lexeme must always match; position
// metadata only under WithPositions.
func Streams(hand, lib []token.Token, opts ...Option) *Mismatch {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(hand)
	if len(lib) < n {
		n = len(lib)
	}
	for i := 0; i < n; i++ {
		h, l := hand[i], lib[i]
		same := h.Kind == l.Kind && h.Lexeme == l.Lexeme
		if same && o.positions {
			same = h.Pos == l.Pos
		}
		if !same {
			return &Mismatch{Index: i, Hand: &hand[i], Lib: &lib[i]}
		}
	}
	if len(hand) > n {
		return &Mismatch{Index: n, Hand: &hand[n]}
	}
	if len(lib) > n {
		return &Mismatch{Index: n, Lib: &lib[n]}
	}
	return nil
}
