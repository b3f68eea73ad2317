// File: rules/rules.go
package rules

import (
	"errors"
	"fmt"

	"github.com/dangerclosesec/oatlex/lexer/token"
	"github.com/go-playground/validator/v10"
)

// ErrEmptyRuleSet is returned when a rule set is built with no rules.
var ErrEmptyRuleSet = errors.New("rules: empty rule set")

// Rule pairs a pattern with the token kind it recognizes. Priority breaks
// ties between rules matching the same lexeme; higher wins, and on equal
// priority the rule declared earlier wins.
type Rule struct {
	Kind     token.Kind `validate:"required"`
	Pattern  string     `validate:"required"`
	Priority int        `validate:"gte=0"`
}

// PatternError reports a malformed rule pattern. It is produced either by
// rule-set validation or by NFA construction when the pattern cannot be
// compiled.
type PatternError struct {
	Kind    token.Kind
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("rules: bad pattern %q for %s: %s", e.Pattern, e.Kind, e.Reason)
}

var validate = validator.New()

// Set is an ordered, immutable collection of rules. A Set is built once at
// startup and only read afterwards.
type Set struct {
	rules []Rule
}

// New validates the given rules and returns them as a Set. Declaration
// order is preserved and significant.
func New(rs []Rule) (*Set, error) {
	if len(rs) == 0 {
		return nil, ErrEmptyRuleSet
	}
	for _, r := range rs {
		if err := validate.Struct(r); err != nil {
			return nil, &PatternError{Kind: r.Kind, Pattern: r.Pattern, Reason: err.Error()}
		}
	}
	out := make([]Rule, len(rs))
	copy(out, rs)
	return &Set{rules: out}, nil
}

// Rules returns the rules in declaration order. The returned slice is a
// copy; mutating it does not affect the Set.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}
