// Package decorr implements the lossless mid/side channel decorrelation
// transform applied to channels 0 and 1 of a multi-channel stream.
// Additional channels, if any, pass through unchanged.
package decorr

import "github.com/ala-codec/ala/internal/numerics"

// ToMidSide replaces the given left/right integer sample pair with its
// mid/side representation: mid = (L+R) >>a 1, side = L-R. The transform is
// exactly invertible by ToLeftRight for any 31-bit-representable input.
func ToMidSide(l, r int32) (mid, side int32) {
	mid = numerics.Ashr32(l+r, 1)
	side = l - r
	return mid, side
}

// ToLeftRight reconstructs the original left/right sample pair from a
// mid/side pair produced by ToMidSide, using the parity of side to recover
// the bit lost by the arithmetic right shift.
func ToLeftRight(mid, side int32) (l, r int32) {
	mid2 := (mid << 1) | (side & 1)
	l = numerics.Ashr32(mid2+side, 1)
	r = numerics.Ashr32(mid2-side, 1)
	return l, r
}

// ToMidSideDouble computes the double-precision mid/side transform used only
// for LPC analysis (window + autocorrelation); it is not part of the
// lossless round trip.
func ToMidSideDouble(l, r float64) (mid, side float64) {
	return (l + r) / 2, l - r
}

// Block applies ToMidSide in place to channels 0 and 1 of a per-channel
// sample block. Channels beyond index 1, if any, are left untouched. Block
// panics if data has fewer than two channels; callers are expected to check
// the channel count before invoking the decorrelator.
func Block(data [][]int32) {
	if len(data) < 2 {
		panic("decorr: Block requires at least two channels")
	}
	l, r := data[0], data[1]
	n := len(l)
	if len(r) < n {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		l[i], r[i] = ToMidSide(l[i], r[i])
	}
}

// InverseBlock applies ToLeftRight in place to channels 0 and 1 of a
// per-channel sample block, reversing Block.
func InverseBlock(data [][]int32) {
	if len(data) < 2 {
		panic("decorr: InverseBlock requires at least two channels")
	}
	mid, side := data[0], data[1]
	n := len(mid)
	if len(side) < n {
		n = len(side)
	}
	for i := 0; i < n; i++ {
		mid[i], side[i] = ToLeftRight(mid[i], side[i])
	}
}
