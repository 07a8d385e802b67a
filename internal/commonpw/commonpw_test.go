package commonpw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCommon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"Password123", true},
		{"my-QWERTY-keyboard", true},
		{"abc123", true},
		{"xx123456xx", true},
		{"Xk9#mQ2$vL", false},
		{"", false},
		{"pass", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsCommon(tc.in), tc.in)
	}
}

func TestChecker_Match(t *testing.T) {
	t.Parallel()

	c := New([]string{"  Hunter2 ", "", "tiger"})
	p, ok := c.Match("myHUNTER2pw")
	assert.True(t, ok)
	assert.Equal(t, "hunter2", p)

	_, ok = c.Match("password")
	assert.False(t, ok, "custom checker must not fall back to defaults")
}
