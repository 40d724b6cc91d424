// Package lpc implements autocorrelation-based linear prediction analysis:
// it turns a block of windowed double-precision samples into an ordered
// PARCOR (reflection) coefficient vector via the Levinson-Durbin recursion.
// All internals are double precision; single precision is insufficient
// because autocorrelation magnitudes grow with the block length and
// accumulated error can propagate to NaN.
package lpc

import (
	"math"

	"github.com/ala-codec/ala/internal/numerics"
)

// epsilon mirrors FLT_EPSILON from the reference implementation: below this
// energy a block is treated as silent.
const epsilon = 1.1920929e-7

// Autocorrelate computes R[l] = sum_{n=l}^{L-1} x[n]*x[n-l] for l = 0..order.
func Autocorrelate(x []float64, order int) []float64 {
	r := make([]float64, order+1)
	l := len(x)
	for lag := 0; lag <= order; lag++ {
		var sum float64
		for n := lag; n < l; n++ {
			sum += x[n] * x[n-lag]
		}
		r[lag] = sum
	}
	return r
}

// Analyse runs the Levinson-Durbin recursion over the autocorrelation of a
// windowed block and returns a length-(order+1) PARCOR vector. Element 0 is
// always 0 by convention; elements 1..order are parcor[k+1] = -gamma_k.
//
// Per spec: a silent block (R[0] < epsilon) or a block shorter than order
// yields an all-zero PARCOR vector rather than attempting the recursion.
func Analyse(x []float64, order int) []float64 {
	parcor := make([]float64, order+1)
	if len(x) < order {
		return parcor
	}
	r := Autocorrelate(x, order)
	if r[0] < epsilon {
		return parcor
	}

	a := make([]float64, order+1)
	tmp := make([]float64, order+1)
	e := r[0]
	for k := 0; k < order; k++ {
		acc := r[k+1]
		for j := 0; j < k; j++ {
			acc -= a[j+1] * r[k-j]
		}
		gamma := acc / e
		if gamma >= 1 || gamma <= -1 {
			panic("lpc: |gamma| < 1 invariant violated")
		}

		copy(tmp, a)
		a[k+1] = gamma
		for j := 0; j < k; j++ {
			a[j+1] = tmp[j+1] - gamma*tmp[k-j]
		}

		e *= 1 - gamma*gamma
		if e < 0 {
			panic("lpc: e >= 0 invariant violated")
		}

		parcor[k+1] = -gamma
	}
	return parcor
}

// Quantize scales each PARCOR coefficient by 2^15, rounds to the nearest
// integer, and clamps to the signed 16-bit range. Element 0 is always 0 and
// is not transmitted on the wire; the caller is responsible for omitting it.
func Quantize(parcor []float64) []int16 {
	q := make([]int16, len(parcor))
	for i, c := range parcor {
		v := numerics.RoundHalfAway(c * 32768)
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		q[i] = int16(v)
	}
	return q
}
