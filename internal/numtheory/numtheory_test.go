package numtheory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{4, 6, 2},
		{6, 4, 2},
		{17, 5, 1},
		{0, 9, 9},
		{9, 0, 9},
		{0, 0, 0},
		{-12, 18, 6},
		{1071, 462, 21},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GCD(tc.a, tc.b), "gcd(%d, %d)", tc.a, tc.b)
	}
}

func TestTriple_Sample(t *testing.T) {
	res, err := Triple(4, 6, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.GCD)
	assert.Equal(t, int64(24), res.LCM)
}

func TestTriple_LCMIsCommonMultiple(t *testing.T) {
	for a := int64(1); a <= 12; a++ {
		for b := int64(1); b <= 12; b++ {
			for c := int64(1); c <= 12; c++ {
				res, err := Triple(a, b, c)
				require.NoError(t, err)

				assert.Zero(t, res.LCM%a)
				assert.Zero(t, res.LCM%b)
				assert.Zero(t, res.LCM%c)

				// pairwise lcm reduction must agree with the closed form
				ab := a / GCD(a, b) * b
				assert.Equal(t, ab/GCD(ab, c)*c, res.LCM, "lcm(%d, %d, %d)", a, b, c)
			}
		}
	}
}

func TestTriple_NonPositive(t *testing.T) {
	for _, in := range [][3]int64{{0, 1, 2}, {1, -3, 2}, {1, 2, 0}} {
		_, err := Triple(in[0], in[1], in[2])
		assert.ErrorIs(t, err, ErrNonPositive)
	}
}

func TestLCM3_LargeOperandsDoNotOverflowIntermediate(t *testing.T) {
	// a*b*c overflows int64 but the lcm itself does not.
	const huge = int64(1) << 40
	lcm, err := LCM3(huge, huge, huge)
	require.NoError(t, err)
	assert.Equal(t, huge, lcm)
}

func TestLCM3_Overflow(t *testing.T) {
	_, err := LCM3(math.MaxInt64, math.MaxInt64-1, math.MaxInt64-2)
	assert.ErrorIs(t, err, ErrOverflow)
}
