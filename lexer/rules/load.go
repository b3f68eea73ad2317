// File: rules/load.go
package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dangerclosesec/oatlex/lexer/token"
)

// LoadFile reads a rule set from a lex-style definition file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rules: reading %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a lex-style rule definition. Each line holds a pattern
// followed by the quoted token kind it produces, e.g.
//
//	[a-zA-Z_][a-zA-Z0-9_]* "IDENT"
//
// Lines starting with %% and blank lines are skipped. Declaration order
// fixes tie-breaking between rules; the file format carries no explicit
// priority column.
func Load(r io.Reader) (*Set, error) {
	var rs []Rule

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%%") {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) < 2 {
			return nil, fmt.Errorf("rules: line %d: expected pattern and quoted kind, got %q", line, text)
		}
		name := strings.Trim(parts[len(parts)-1], `"`)
		if name == "" {
			return nil, fmt.Errorf("rules: line %d: empty kind name", line)
		}
		pattern := strings.Join(parts[:len(parts)-1], " ")

		rs = append(rs, Rule{
			Kind:    token.Kind(name),
			Pattern: pattern,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rules: reading definition: %w", err)
	}

	return New(rs)
}
