package version_test

import (
	"testing"

	"dependency-manager/core/version"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want version.Ordering
	}{
		{"Identical", "1.2.3", "1.2.3", version.Equal},
		{"TrailingZero", "1.2", "1.2.0", version.Equal},
		{"TrailingZeros Reversed", "1.2.0.0", "1.2", version.Equal},
		{"Numeric Not Lexical", "1.9", "1.10", version.Less},
		{"Major Bump", "2.0", "1.99.99", version.Greater},
		{"Qualifier Stripped", "2.0-beta", "2.0", version.Equal},
		{"Qualifier With Digits", "1.0-RC2", "1.0", version.Greater},
		{"Four Components", "10.4.2.0", "10.17.1.0", version.Less},
		{"Leading Zeros", "1.02", "1.2", version.Equal},
		{"Huge Run", "1.99999999999999999999999", "1.100000000000000000000000", version.Less},
		{"No Digits", "alpha", "beta", version.Less},
		{"No Digits Equal", "final", "final", version.Equal},
		{"Empty Both", "", "", version.Equal},
		{"Empty Vs Numeric", "", "1", version.Less},
		{"Empty Vs Zero", "", "0.0", version.Equal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, version.Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, version.Compare(tt.b, tt.a), "comparison must be antisymmetric")
		})
	}
}

func TestCompare_Reflexive(t *testing.T) {
	for _, v := range []string{"", "1", "1.0", "2.0-beta", "jdk15", "0.0.17.4", "3.0.1", "r09"} {
		assert.Equal(t, version.Equal, version.Compare(v, v), v)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"2", "1"}, version.Normalize("2.1:jdk15")[:2])
	assert.Equal(t, []string{"1", "0", "0"}, version.Normalize("1.0.0-beta"))
	assert.Equal(t, []string{"0", "7"}, version.Normalize("v00.007"))
	assert.Empty(t, version.Normalize("final"))
}

func TestIsNewer(t *testing.T) {
	assert.True(t, version.IsNewer("1.0.0", "1.1.0"))
	assert.False(t, version.IsNewer("1.1.0", "1.1"))
	assert.False(t, version.IsNewer("2.0", "1.9"))
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "less", version.Less.String())
	assert.Equal(t, "equal", version.Equal.String())
	assert.Equal(t, "greater", version.Greater.String())
}
