// Package strength scores passwords by category coverage and length.
package strength

import (
	"math"
	"unicode/utf8"

	"github.com/and161185/goph-passgen/internal/commonpw"
	"github.com/and161185/goph-passgen/internal/model"
)

// Sizes of the search space each category contributes to EntropyBits.
const (
	UpperSpace  = 26
	LowerSpace  = 26
	DigitSpace  = 10
	SymbolSpace = 32 // printable ASCII punctuation
)

// Length thresholds for the length bonus.
const (
	MinRecommendedLength = 12
	LongLength           = 16
)

// Feedback messages, emitted in this order.
const (
	TipUpper  = "Add uppercase letters"
	TipLower  = "Add lowercase letters"
	TipDigit  = "Add numbers"
	TipSymbol = "Add special characters"
	TipLength = "Use at least 12 characters"
)

var labels = [...]string{"Very Weak", "Weak", "Moderate", "Strong", "Very Strong", "Extreme"}

// Estimator evaluates strings. The zero value is not usable; use New or Default.
type Estimator struct {
	common *commonpw.Checker
}

// New returns an Estimator using checker for common-password detection.
func New(checker *commonpw.Checker) *Estimator {
	if checker == nil {
		checker = commonpw.Default()
	}
	return &Estimator{common: checker}
}

var defaultEstimator = New(nil)

// Default returns the Estimator using the default common-password list.
func Default() *Estimator { return defaultEstimator }

// Evaluate uses the default Estimator.
func Evaluate(password string) model.StrengthReport { return defaultEstimator.Evaluate(password) }

// Evaluate scores password. It is pure: equal inputs give equal reports.
// An empty password scores 0 with no feedback.
func (e *Estimator) Evaluate(password string) model.StrengthReport {
	n := utf8.RuneCountInString(password)
	if n == 0 {
		return model.StrengthReport{
			CrackTime: model.CrackInstant,
			Label:     labels[0],
			Persona:   persona(0),
			Feedback:  []string{},
		}
	}

	c := classify(password)

	r := model.StrengthReport{CategoryScore: c.Count()}
	if n >= MinRecommendedLength {
		r.LengthBonus++
	}
	if n >= LongLength {
		r.LengthBonus++
	}
	r.TotalScore = r.CategoryScore + r.LengthBonus
	r.EntropyBits = EntropyBits(password)
	r.UniqueEntropyBits = UniqueEntropyBits(password)
	r.CrackTime = CrackTimeFor(r.TotalScore, n)
	r.Label = labels[min(r.TotalScore, len(labels)-1)]
	r.Persona = persona(r.TotalScore)
	r.Feedback = feedback(c, n)
	r.CommonPattern, r.IsCommon = e.common.Match(password)
	return r
}

// EntropyBits is log2(charset) * length where charset sums the spaces of the
// categories present in password.
func EntropyBits(password string) float64 {
	space := 0
	c := classify(password)
	if c.Has(model.Uppercase) {
		space += UpperSpace
	}
	if c.Has(model.Lowercase) {
		space += LowerSpace
	}
	if c.Has(model.Digit) {
		space += DigitSpace
	}
	if c.Has(model.Symbol) {
		space += SymbolSpace
	}
	if space == 0 {
		return 0
	}
	return math.Log2(float64(space)) * float64(utf8.RuneCountInString(password))
}

// UniqueEntropyBits is log2(distinct characters) * length.
func UniqueEntropyBits(password string) float64 {
	seen := make(map[rune]struct{}, len(password))
	n := 0
	for _, r := range password {
		seen[r] = struct{}{}
		n++
	}
	if len(seen) < 2 {
		return 0
	}
	return math.Log2(float64(len(seen))) * float64(n)
}

// CrackTimeFor maps a score and length to a bucket: score + floor((length-8)/2),
// clamped to the bucket range. Non-decreasing in both arguments.
func CrackTimeFor(totalScore, length int) model.CrackTime {
	idx := totalScore + floorDiv(length-8, 2)
	switch {
	case idx < int(model.CrackInstant):
		return model.CrackInstant
	case idx > int(model.CrackCenturies):
		return model.CrackCenturies
	default:
		return model.CrackTime(idx)
	}
}

// classify reports which categories occur. Anything that is not an ASCII letter or
// digit counts as a symbol.
func classify(password string) model.Category {
	var c model.Category
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c |= model.Uppercase
		case r >= 'a' && r <= 'z':
			c |= model.Lowercase
		case r >= '0' && r <= '9':
			c |= model.Digit
		default:
			c |= model.Symbol
		}
	}
	return c
}

func feedback(c model.Category, n int) []string {
	tips := make([]string, 0, 5)
	if !c.Has(model.Uppercase) {
		tips = append(tips, TipUpper)
	}
	if !c.Has(model.Lowercase) {
		tips = append(tips, TipLower)
	}
	if !c.Has(model.Digit) {
		tips = append(tips, TipDigit)
	}
	if !c.Has(model.Symbol) {
		tips = append(tips, TipSymbol)
	}
	if n < MinRecommendedLength {
		tips = append(tips, TipLength)
	}
	return tips
}

func persona(score int) string {
	switch {
	case score <= 2:
		return "Glass House Dweller"
	case score <= 4:
		return "Vault Guardian"
	default:
		return "Fort Knox Defender"
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
