// Package generator produces random passwords and word-based passphrases.
//
// All randomness comes from an io.Reader (crypto/rand by default). Indices are drawn
// with crypto/rand.Int, which rejects out-of-range samples, so draws are uniform for
// any pool size.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/goph-passgen/internal/charset"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/model"
)

// Limits that keep a single call bounded.
const (
	MaxLength    = 1024
	MaxWordCount = 64

	DefaultSeparator = "-"
	DefaultWordCount = 4
)

// DefaultWords is the built-in passphrase list. Twelve words give only
// log2(12) ≈ 3.58 bits per word; callers needing real strength should pass a
// large list through WithWordList.
var DefaultWords = []string{
	"correct", "horse", "battery", "staple", "dragon", "cloud",
	"sunny", "moonlight", "robot", "nebula", "galaxy", "shield",
}

// Generator is stateless apart from its configuration and is safe for concurrent use
// as long as its random source is.
type Generator struct {
	rnd       io.Reader
	alphabets charset.Alphabets
	words     []string
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom replaces the random source.
func WithRandom(r io.Reader) Option { return func(g *Generator) { g.rnd = r } }

// WithWordList replaces the passphrase word list.
func WithWordList(words []string) Option {
	return func(g *Generator) { g.words = append([]string(nil), words...) }
}

// WithClock replaces time.Now for credential timestamps.
func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

// New constructs a Generator using crypto/rand and the default alphabets and words.
func New(opts ...Option) *Generator {
	g := &Generator{
		rnd:       rand.Reader,
		alphabets: charset.Default(),
		words:     DefaultWords,
		now:       time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// WordListSize returns the number of words passphrases are drawn from.
func (g *Generator) WordListSize() int { return len(g.words) }

// Generate dispatches on cfg.Mode.
func (g *Generator) Generate(cfg model.GenerationConfig) (model.Credential, error) {
	switch cfg.Mode {
	case model.ModeRandom:
		return g.RandomPassword(cfg)
	case model.ModePassphrase:
		return g.Passphrase(cfg)
	default:
		return model.Credential{}, errs.NewConfigError(errs.KindUnknownMode, "mode", "unknown mode %d", cfg.Mode)
	}
}

// RandomPassword builds a password of exactly cfg.Length characters.
//
// One character is drawn from each enabled category first so every category is
// represented; when Length is smaller than the number of enabled categories the seed is
// truncated to Length. The remaining positions are drawn from the merged pool and the
// result is shuffled.
func (g *Generator) RandomPassword(cfg model.GenerationConfig) (model.Credential, error) {
	if cfg.Length < 1 || cfg.Length > MaxLength {
		return model.Credential{}, errs.NewConfigError(errs.KindInvalidLength, "length",
			"must be between 1 and %d, got %d", MaxLength, cfg.Length)
	}
	alpha, err := g.alphabets.WithSymbols(cfg.CustomSymbols)
	if err != nil {
		return model.Credential{}, err
	}
	pool, err := alpha.Pool(cfg.Categories, cfg.ExcludeAmbiguous)
	if err != nil {
		return model.Credential{}, &errs.ConfigError{
			Kind:  errs.KindNoCharacterType,
			Field: "categories",
			Msg:   "select at least one character type",
			Err:   err,
		}
	}

	out := make([]byte, 0, cfg.Length)
	for _, c := range model.AllCategories {
		if len(out) == cfg.Length {
			break
		}
		if !cfg.Categories.Has(c) {
			continue
		}
		a := alpha.For(c, cfg.ExcludeAmbiguous)
		if a == "" {
			continue
		}
		ch, err := g.pick(a)
		if err != nil {
			return model.Credential{}, err
		}
		out = append(out, ch)
	}
	for len(out) < cfg.Length {
		ch, err := g.pick(pool)
		if err != nil {
			return model.Credential{}, err
		}
		out = append(out, ch)
	}
	if err := g.shuffle(out); err != nil {
		return model.Credential{}, err
	}
	return g.credential(string(out), cfg)
}

// Passphrase joins WordCount words drawn independently (with replacement).
func (g *Generator) Passphrase(cfg model.GenerationConfig) (model.Credential, error) {
	opts := cfg.Passphrase
	if opts.WordCount < 1 || opts.WordCount > MaxWordCount {
		return model.Credential{}, errs.NewConfigError(errs.KindInvalidWordCount, "wordCount",
			"must be between 1 and %d, got %d", MaxWordCount, opts.WordCount)
	}
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	if utf8.RuneCountInString(sep) != 1 {
		return model.Credential{}, errs.NewConfigError(errs.KindInvalidSeparator, "separator",
			"must be a single character, got %q", sep)
	}
	if len(g.words) == 0 {
		return model.Credential{}, errs.NewConfigError(errs.KindEmptyWordList, "words", "word list is empty")
	}

	words := make([]string, opts.WordCount)
	for i := range words {
		idx, err := g.intn(len(g.words))
		if err != nil {
			return model.Credential{}, err
		}
		w := g.words[idx]
		if opts.CapitalizeWords {
			w = capitalize(w)
		}
		words[i] = w
	}

	cfg.Mode = model.ModePassphrase
	cfg.Passphrase.Separator = sep
	return g.credential(strings.Join(words, sep), cfg)
}

// PassphraseEntropyBits is the real entropy of a passphrase drawn from listSize words.
func PassphraseEntropyBits(wordCount, listSize int) float64 {
	if wordCount < 1 || listSize < 2 {
		return 0
	}
	return float64(wordCount) * math.Log2(float64(listSize))
}

func (g *Generator) credential(value string, cfg model.GenerationConfig) (model.Credential, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.Credential{}, fmt.Errorf("credential id: %w", err)
	}
	return model.Credential{ID: id, Value: value, Config: cfg, CreatedAt: g.now().UTC()}, nil
}

func (g *Generator) pick(alphabet string) (byte, error) {
	i, err := g.intn(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

// shuffle is a backward Fisher-Yates pass.
func (g *Generator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

// intn returns a uniform int in [0, n).
func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random source: %w", err)
	}
	return int(v.Int64()), nil
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
