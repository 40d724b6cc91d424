// Package emphasis implements the single-tap pre-emphasis high-pass filter
// (and its inverse, de-emphasis) used to flatten the spectrum before LPC
// analysis and lattice prediction. The transform is stateless across calls:
// the prior sample is taken as zero at the start of every call, so each
// block is filtered independently.
package emphasis

import "github.com/ala-codec/ala/internal/numerics"

// DefaultShift is the default pre-emphasis shift parameter k, giving
// alpha = (2^k - 1) / 2^k.
const DefaultShift = 5

// Apply performs integer pre-emphasis in place: x[n] -= (prev * (2^k-1)) >>a k,
// where prev is the original (unmodified) value of x[n-1]. The initial prior
// sample is 0.
func Apply(x []int32, k uint) {
	coeff := int32(1)<<k - 1
	var prev int32
	for i, v := range x {
		tmp := v
		x[i] = v - numerics.Ashr32(prev*coeff, k)
		prev = tmp
	}
}

// Unapply performs integer de-emphasis in place, the exact inverse of Apply
// when the initial prior sample was 0: x[n] += (x[n-1] * (2^k-1)) >>a k for
// n from 1 to len(x)-1.
func Unapply(x []int32, k uint) {
	coeff := int32(1)<<k - 1
	for n := 1; n < len(x); n++ {
		x[n] += numerics.Ashr32(x[n-1]*coeff, k)
	}
}

// Coefficient returns the double-precision equivalent of the integer
// pre-emphasis coefficient (2^k - 1) / 2^k.
func Coefficient(k uint) float64 {
	return float64(int32(1)<<k-1) / float64(int64(1)<<k)
}

// ApplyDouble performs double-precision pre-emphasis in place using the
// real-valued coefficient, for use ahead of LPC analysis.
func ApplyDouble(x []float64, k uint) {
	alpha := Coefficient(k)
	var prev float64
	for i, v := range x {
		tmp := v
		x[i] = v - alpha*prev
		prev = tmp
	}
}
