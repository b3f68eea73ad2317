// File: automaton/nfa.go
package automaton

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dangerclosesec/oatlex/lexer/rules"
)

// Compile builds a single NFA recognizing every rule in the set. Each
// rule compiles to its own fragment reached from the shared start state
// by an epsilon edge; the fragment's final state carries the rule's
// accept tag.
func Compile(set *rules.Set) (*NFA, error) {
	rs := set.Rules()
	if len(rs) == 0 {
		return nil, rules.ErrEmptyRuleSet
	}

	n := &NFA{}
	n.start = n.newState()

	for i, r := range rs {
		p := &patternParser{pat: []rune(r.Pattern), nfa: n}
		f, err := p.parse()
		if err != nil {
			return nil, &rules.PatternError{Kind: r.Kind, Pattern: r.Pattern, Reason: err.Error()}
		}
		if contains(n.Closure([]int{f.start}), f.end) {
			return nil, &rules.PatternError{Kind: r.Kind, Pattern: r.Pattern, Reason: "pattern matches the empty string"}
		}
		n.addEps(n.start, f.start)
		n.accept[f.end] = &Accept{Kind: r.Kind, Priority: r.Priority, Rule: i}
	}

	return n, nil
}

func contains(sorted []int, x int) bool {
	for _, v := range sorted {
		if v == x {
			return true
		}
	}
	return false
}

// frag is an NFA fragment under construction with one entry and one
// exit state. Exit states are never shared between rules, so accept
// tags attach unambiguously.
type frag struct {
	start, end int
}

// patternParser compiles one rule pattern into an NFA fragment by
// recursive descent. The grammar, lowest precedence first:
//
//	alternation: concat ("|" concat)*
//	concat:      repeat*
//	repeat:      atom ("*" | "+" | "?")*
//	atom:        literal | escape | "[" class "]" | "(" alternation ")"
type patternParser struct {
	pat []rune
	pos int
	nfa *NFA
}

func (p *patternParser) parse() (frag, error) {
	f, err := p.alternation()
	if err != nil {
		return frag{}, err
	}
	if p.pos < len(p.pat) {
		return frag{}, fmt.Errorf("unexpected %q", p.pat[p.pos])
	}
	return f, nil
}

func (p *patternParser) alternation() (frag, error) {
	f, err := p.concat()
	if err != nil {
		return frag{}, err
	}
	for p.pos < len(p.pat) && p.pat[p.pos] == '|' {
		p.pos++
		g, err := p.concat()
		if err != nil {
			return frag{}, err
		}
		f = p.union(f, g)
	}
	return f, nil
}

func (p *patternParser) concat() (frag, error) {
	var f frag
	first := true
	for p.pos < len(p.pat) && p.pat[p.pos] != '|' && p.pat[p.pos] != ')' {
		g, err := p.repeat()
		if err != nil {
			return frag{}, err
		}
		if first {
			f = g
			first = false
		} else {
			p.nfa.addEps(f.end, g.start)
			f.end = g.end
		}
	}
	if first {
		// Empty branch, e.g. "a|" or "()": a lone state accepting epsilon.
		s := p.nfa.newState()
		f = frag{start: s, end: s}
	}
	return f, nil
}

func (p *patternParser) repeat() (frag, error) {
	f, err := p.atom()
	if err != nil {
		return frag{}, err
	}
	for p.pos < len(p.pat) {
		switch p.pat[p.pos] {
		case '*':
			f = p.star(f)
		case '+':
			f = p.plus(f)
		case '?':
			f = p.option(f)
		default:
			return f, nil
		}
		p.pos++
	}
	return f, nil
}

func (p *patternParser) atom() (frag, error) {
	if p.pos >= len(p.pat) {
		return frag{}, errors.New("unexpected end of pattern")
	}
	c := p.pat[p.pos]
	switch c {
	case '(':
		p.pos++
		f, err := p.alternation()
		if err != nil {
			return frag{}, err
		}
		if p.pos >= len(p.pat) || p.pat[p.pos] != ')' {
			return frag{}, errors.New("unclosed group")
		}
		p.pos++
		return f, nil
	case '[':
		return p.class()
	case ']':
		return frag{}, errors.New("unmatched ']'")
	case '*', '+', '?':
		return frag{}, fmt.Errorf("nothing to repeat before %q", c)
	case '\\':
		set, err := p.escape()
		if err != nil {
			return frag{}, err
		}
		return p.charSet(set), nil
	default:
		p.pos++
		return p.charSet([]rune{c}), nil
	}
}

// escape consumes a backslash escape and returns the runes it stands
// for. \s covers the whitespace characters; any other letter or digit
// escape is unknown and rejected.
func (p *patternParser) escape() ([]rune, error) {
	p.pos++ // backslash
	if p.pos >= len(p.pat) {
		return nil, errors.New("trailing backslash")
	}
	e := p.pat[p.pos]
	p.pos++
	switch e {
	case 's':
		return []rune{' ', '\t', '\n', '\r'}, nil
	case 't':
		return []rune{'\t'}, nil
	case 'n':
		return []rune{'\n'}, nil
	case 'r':
		return []rune{'\r'}, nil
	default:
		if unicode.IsLetter(e) || unicode.IsDigit(e) {
			return nil, fmt.Errorf("unknown escape \\%c", e)
		}
		return []rune{e}, nil
	}
}

// class parses a [...] character class. A leading ^ negates the class
// over printable ASCII (0x20-0x7E); ranges use '-' between two
// endpoints, and a '-' first or last in the class is a literal.
func (p *patternParser) class() (frag, error) {
	p.pos++ // '['
	negate := false
	if p.pos < len(p.pat) && p.pat[p.pos] == '^' {
		negate = true
		p.pos++
	}

	set := make(map[rune]bool)
	var prev rune
	havePrev := false
	closed := false

	for p.pos < len(p.pat) {
		c := p.pat[p.pos]
		if c == ']' {
			p.pos++
			closed = true
			break
		}
		switch {
		case c == '\\':
			chars, err := p.escape()
			if err != nil {
				return frag{}, err
			}
			for _, r := range chars {
				set[r] = true
			}
			if len(chars) == 1 {
				prev, havePrev = chars[0], true
			} else {
				havePrev = false
			}
		case c == '-' && havePrev && p.pos+1 < len(p.pat) && p.pat[p.pos+1] != ']':
			p.pos++
			end := p.pat[p.pos]
			if end == '\\' {
				chars, err := p.escape()
				if err != nil {
					return frag{}, err
				}
				if len(chars) != 1 {
					return frag{}, errors.New("invalid range endpoint")
				}
				end = chars[0]
			} else {
				p.pos++
			}
			if end < prev {
				return frag{}, fmt.Errorf("invalid range %c-%c", prev, end)
			}
			for r := prev; r <= end; r++ {
				set[r] = true
			}
			havePrev = false
		default:
			set[c] = true
			prev, havePrev = c, true
			p.pos++
		}
	}
	if !closed {
		return frag{}, errors.New("unclosed character class")
	}
	if len(set) == 0 {
		return frag{}, errors.New("empty character class")
	}

	if negate {
		full := make([]rune, 0, 95)
		for r := rune(0x20); r <= 0x7e; r++ {
			if !set[r] {
				full = append(full, r)
			}
		}
		return p.charSet(full), nil
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	return p.charSet(out), nil
}

// charSet builds a two-state fragment with one edge per rune.
func (p *patternParser) charSet(chars []rune) frag {
	s := p.nfa.newState()
	e := p.nfa.newState()
	for _, r := range chars {
		p.nfa.addEdge(s, r, e)
	}
	return frag{start: s, end: e}
}

func (p *patternParser) union(f, g frag) frag {
	s := p.nfa.newState()
	e := p.nfa.newState()
	p.nfa.addEps(s, f.start)
	p.nfa.addEps(s, g.start)
	p.nfa.addEps(f.end, e)
	p.nfa.addEps(g.end, e)
	return frag{start: s, end: e}
}

func (p *patternParser) star(f frag) frag {
	s := p.nfa.newState()
	e := p.nfa.newState()
	p.nfa.addEps(s, f.start)
	p.nfa.addEps(s, e)
	p.nfa.addEps(f.end, f.start)
	p.nfa.addEps(f.end, e)
	return frag{start: s, end: e}
}

func (p *patternParser) plus(f frag) frag {
	s := p.nfa.newState()
	e := p.nfa.newState()
	p.nfa.addEps(s, f.start)
	p.nfa.addEps(f.end, f.start)
	p.nfa.addEps(f.end, e)
	return frag{start: s, end: e}
}

func (p *patternParser) option(f frag) frag {
	s := p.nfa.newState()
	e := p.nfa.newState()
	p.nfa.addEps(s, f.start)
	p.nfa.addEps(s, e)
	p.nfa.addEps(f.end, e)
	return frag{start: s, end: e}
}
