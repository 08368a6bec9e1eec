// Package numtheory computes greatest common divisors and least common
// multiples of integer triples.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNonPositive is returned when an input is zero or negative.
	ErrNonPositive = errors.New("numbers must be positive")
	// ErrOverflow is returned when the LCM does not fit in an int64.
	ErrOverflow = errors.New("lcm overflows int64")
)

// Result is the GCD and LCM of a triple.
type Result struct {
	GCD int64
	LCM int64
}

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GCD3 reduces pairwise: gcd(gcd(a, b), c).
func GCD3(a, b, c int64) int64 {
	return GCD(GCD(a, b), c)
}

// LCM3 returns the least common multiple of three positive integers using
//
//	lcm(a,b,c) = a*b*c*gcd(a,b,c) / (gcd(a,b)*gcd(b,c)*gcd(a,c))
//
// The numerator is evaluated in arbitrary precision; only the result has to
// fit an int64.
func LCM3(a, b, c int64) (int64, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0, ErrNonPositive
	}

	num := big.NewInt(a)
	num.Mul(num, big.NewInt(b))
	num.Mul(num, big.NewInt(c))
	num.Mul(num, big.NewInt(GCD3(a, b, c)))

	den := big.NewInt(GCD(a, b))
	den.Mul(den, big.NewInt(GCD(b, c)))
	den.Mul(den, big.NewInt(GCD(a, c)))

	lcm := num.Quo(num, den)
	if !lcm.IsInt64() {
		return 0, ErrOverflow
	}
	return lcm.Int64(), nil
}

// Triple validates a, b and c and returns their GCD and LCM.
func Triple(a, b, c int64) (Result, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return Result{}, fmt.Errorf("%d, %d, %d: %w", a, b, c, ErrNonPositive)
	}
	lcm, err := LCM3(a, b, c)
	if err != nil {
		return Result{}, fmt.Errorf("%d, %d, %d: %w", a, b, c, err)
	}
	return Result{GCD: GCD3(a, b, c), LCM: lcm}, nil
}
