package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_HasAndCount(t *testing.T) {
	t.Parallel()

	s := Uppercase | Digit
	assert.True(t, s.Has(Uppercase))
	assert.True(t, s.Has(Digit))
	assert.False(t, s.Has(Lowercase))
	assert.False(t, s.Has(0))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "upper|digit", s.String())
	assert.Equal(t, "none", Category(0).String())
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{"": ModeRandom, "Random": ModeRandom, "passphrase": ModePassphrase} {
		got, ok := ParseMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseMode("pin")
	assert.False(t, ok)
}

func TestCrackTime_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "under 1 second", CrackInstant.String())
	assert.Equal(t, "centuries", CrackCenturies.String())
	assert.Equal(t, "unknown", CrackTime(42).String())
}
