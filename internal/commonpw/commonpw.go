// Package commonpw flags strings containing well-known weak passwords.
//
// This is a local heuristic over a short fixed list, not a breach-database lookup:
// it catches the most obvious reuse patterns and nothing more.
package commonpw

import "strings"

// DefaultPatterns are lowercase substrings taken from the most frequently breached passwords.
var DefaultPatterns = []string{
	"password", "123456", "qwerty", "abc123",
	"letmein", "welcome", "iloveyou", "admin",
	"monkey", "111111", "sunshine", "princess",
	"football", "baseball", "trustno1", "passw0rd",
}

// Checker matches case-insensitively against a fixed pattern list.
type Checker struct {
	patterns []string
}

// New returns a Checker over patterns; empty patterns are ignored.
func New(patterns []string) *Checker {
	c := &Checker{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			c.patterns = append(c.patterns, p)
		}
	}
	return c
}

var defaultChecker = New(DefaultPatterns)

// Default returns the checker over DefaultPatterns.
func Default() *Checker { return defaultChecker }

// Match returns the first pattern contained in password.
func (c *Checker) Match(password string) (string, bool) {
	if password == "" {
		return "", false
	}
	lower := strings.ToLower(password)
	for _, p := range c.patterns {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// IsCommon reports whether password contains any pattern.
func (c *Checker) IsCommon(password string) bool {
	_, ok := c.Match(password)
	return ok
}

// IsCommon uses the default checker.
func IsCommon(password string) bool { return defaultChecker.IsCommon(password) }
