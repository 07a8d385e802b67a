package charset

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/model"
)

func TestAlphabetSizes(t *testing.T) {
	t.Parallel()

	assert.Len(t, Upper, 26)
	assert.Len(t, Lower, 26)
	assert.Len(t, Digits, 10)
	assert.Len(t, Symbols, 26)
}

func TestBuildPool(t *testing.T) {
	t.Parallel()

	all := model.Uppercase | model.Lowercase | model.Digit | model.Symbol

	tests := []struct {
		name    string
		set     model.Category
		exclude bool
		wantLen int
		wantErr bool
	}{
		{name: "upper", set: model.Uppercase, wantLen: 26},
		{name: "upper_no_ambiguous", set: model.Uppercase, exclude: true, wantLen: 24},
		{name: "lower_no_ambiguous", set: model.Lowercase, exclude: true, wantLen: 25},
		{name: "digits_no_ambiguous", set: model.Digit, exclude: true, wantLen: 8},
		{name: "symbols_unaffected", set: model.Symbol, exclude: true, wantLen: 26},
		{name: "all", set: all, wantLen: 88},
		{name: "all_no_ambiguous", set: all, exclude: true, wantLen: 83},
		{name: "none", set: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool, err := BuildPool(tc.set, tc.exclude)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrEmptyPool)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pool, tc.wantLen)
			if tc.exclude {
				assert.False(t, strings.ContainsAny(pool, Ambiguous), "pool %q has ambiguous chars", pool)
			}
		})
	}
}

func TestBuildPool_CanonicalOrder(t *testing.T) {
	t.Parallel()

	pool, err := BuildPool(model.Digit|model.Uppercase, false)
	require.NoError(t, err)
	assert.Equal(t, Upper+Digits, pool)
}

func TestBuildPool_MembershipIndependentOfFlagOrder(t *testing.T) {
	t.Parallel()

	a, err := BuildPool(model.Symbol|model.Lowercase, true)
	require.NoError(t, err)
	b, err := BuildPool(model.Lowercase|model.Symbol, true)
	require.NoError(t, err)
	assert.Equal(t, sorted(a), sorted(b))
}

func TestWithSymbols(t *testing.T) {
	t.Parallel()

	a, err := Default().WithSymbols("!!@#@")
	require.NoError(t, err)
	assert.Equal(t, "!@#", a.Symbols)
	assert.Equal(t, "!@#", a.For(model.Symbol, true))

	_, err = Default().WithSymbols("ab!")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = Default().WithSymbols("! ")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	same, err := Default().WithSymbols("")
	require.NoError(t, err)
	assert.Equal(t, Symbols, same.Symbols)
}

func TestStripAmbiguous(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", StripAmbiguous("alIb1O0c"))
}

func sorted(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}
