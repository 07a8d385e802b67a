// Package model defines domain entities used by the generator, estimator and history.
package model

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category is a character class. Values are bit flags so a set fits in one Category.
type Category uint8

const (
	Uppercase Category = 1 << iota
	Lowercase
	Digit
	Symbol
)

// AllCategories lists every category in canonical pool order.
var AllCategories = []Category{Uppercase, Lowercase, Digit, Symbol}

// Has reports whether every flag of c is set in s.
func (s Category) Has(c Category) bool { return c != 0 && s&c == c }

// Count returns how many categories are set.
func (s Category) Count() int {
	n := 0
	for _, c := range AllCategories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// String renders the set as "upper|lower|digit|symbol" in canonical order.
func (s Category) String() string {
	var parts []string
	for _, c := range AllCategories {
		if !s.Has(c) {
			continue
		}
		switch c {
		case Uppercase:
			parts = append(parts, "upper")
		case Lowercase:
			parts = append(parts, "lower")
		case Digit:
			parts = append(parts, "digit")
		case Symbol:
			parts = append(parts, "symbol")
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Mode selects between character-based and word-based credentials.
type Mode int

const (
	ModeRandom Mode = iota
	ModePassphrase
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModePassphrase:
		return "passphrase"
	default:
		return "unknown"
	}
}

// ParseMode maps a wire name to a Mode. Empty means ModeRandom.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random", "password":
		return ModeRandom, true
	case "passphrase", "words":
		return ModePassphrase, true
	default:
		return 0, false
	}
}

// PassphraseOptions shapes a word-based credential.
type PassphraseOptions struct {
	WordCount       int
	Separator       string // exactly one character; empty means "-"
	CapitalizeWords bool
}

// GenerationConfig is supplied by the caller per request and passed by value.
type GenerationConfig struct {
	Length           int
	Categories       Category
	ExcludeAmbiguous bool
	CustomSymbols    string // replaces the default symbol alphabet when non-empty
	Mode             Mode
	Passphrase       PassphraseOptions
}

// Credential is a generated value with its origin. Treat as immutable.
type Credential struct {
	ID        uuid.UUID
	Value     string
	Config    GenerationConfig
	CreatedAt time.Time
}

// CrackTime is an ordered bucket from "under 1 second" (0) to "centuries" (9).
type CrackTime int

const (
	CrackInstant CrackTime = iota
	CrackSecondsToMinutes
	CrackMinutesToHours
	CrackHoursToDays
	CrackDaysToWeeks
	CrackWeeksToMonths
	CrackMonthsToYears
	CrackYearsToDecades
	CrackDecadesToCenturies
	CrackCenturies
)

var crackTimeLabels = [...]string{
	"under 1 second",
	"seconds to minutes",
	"minutes to hours",
	"hours to days",
	"days to weeks",
	"weeks to months",
	"months to years",
	"years to decades",
	"decades to centuries",
	"centuries",
}

func (c CrackTime) String() string {
	if c < CrackInstant || c > CrackCenturies {
		return "unknown"
	}
	return crackTimeLabels[c]
}

// StrengthReport is the estimator output for a single string.
type StrengthReport struct {
	CategoryScore     int // 0..4
	LengthBonus       int // 0..2
	TotalScore        int // CategoryScore + LengthBonus
	EntropyBits       float64
	UniqueEntropyBits float64
	CrackTime         CrackTime
	Label             string
	Persona           string
	Feedback          []string
	IsCommon          bool
	CommonPattern     string
}

// Generation bundles a new credential with its strength report.
type Generation struct {
	Credential Credential
	Strength   StrengthReport
	// PassphraseEntropyBits is wordCount*log2(wordListSize); zero for random passwords.
	PassphraseEntropyBits float64
}
