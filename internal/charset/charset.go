// Package charset builds the character pool a random password is drawn from.
package charset

import (
	"strings"

	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/model"
)

// Fixed category alphabets.
const (
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()-_=+[]{}|;:,.<>?"

	// Ambiguous characters are visually confusable and can be excluded.
	Ambiguous = "lI1O0"
)

// Alphabets holds the per-category alphabets used for one generation.
type Alphabets struct {
	Upper   string
	Lower   string
	Digits  string
	Symbols string
}

// Default returns the fixed alphabets.
func Default() Alphabets {
	return Alphabets{Upper: Upper, Lower: Lower, Digits: Digits, Symbols: Symbols}
}

// WithSymbols returns a copy using custom as the symbol alphabet.
// custom must be printable ASCII punctuation; duplicates are collapsed.
func (a Alphabets) WithSymbols(custom string) (Alphabets, error) {
	if custom == "" {
		return a, nil
	}
	var sb strings.Builder
	seen := make(map[rune]bool, len(custom))
	for _, r := range custom {
		if !isPunct(r) {
			return a, errs.NewConfigError(errs.KindInvalidSymbols, "customSymbols",
				"%q is not printable ASCII punctuation", r)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		sb.WriteRune(r)
	}
	a.Symbols = sb.String()
	return a, nil
}

// For returns the alphabet of a single category, minus ambiguous characters if requested.
func (a Alphabets) For(c model.Category, excludeAmbiguous bool) string {
	var s string
	switch c {
	case model.Uppercase:
		s = a.Upper
	case model.Lowercase:
		s = a.Lower
	case model.Digit:
		s = a.Digits
	case model.Symbol:
		s = a.Symbols
	}
	if excludeAmbiguous {
		s = StripAmbiguous(s)
	}
	return s
}

// Pool concatenates the enabled alphabets in canonical order.
// It fails with errs.ErrEmptyPool when nothing is left.
func (a Alphabets) Pool(set model.Category, excludeAmbiguous bool) (string, error) {
	var sb strings.Builder
	for _, c := range model.AllCategories {
		if set.Has(c) {
			sb.WriteString(a.For(c, excludeAmbiguous))
		}
	}
	if sb.Len() == 0 {
		return "", errs.ErrEmptyPool
	}
	return sb.String(), nil
}

// BuildPool builds the pool from the fixed alphabets.
func BuildPool(set model.Category, excludeAmbiguous bool) (string, error) {
	return Default().Pool(set, excludeAmbiguous)
}

// StripAmbiguous removes every ambiguous character from s.
func StripAmbiguous(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Ambiguous, r) {
			return -1
		}
		return r
	}, s)
}

func isPunct(r rune) bool {
	switch {
	case r <= ' ' || r >= 0x7f:
		return false
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return false
	default:
		return true
	}
}
