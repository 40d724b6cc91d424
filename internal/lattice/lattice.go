// Package lattice implements the fixed-point PARCOR lattice predictor and
// its exact inverse synthesiser, operating on int16 PARCOR coefficients
// scaled by 2^15. Round-to-nearest is approximated throughout by adding
// 2^14 before an arithmetic right shift by 15; these two constants are part
// of the wire format (they affect the prediction/inversion identity bit for
// bit) and must not be changed.
package lattice

import "github.com/ala-codec/ala/internal/numerics"

const (
	roundBias = 1 << 14
	scaleBits = 15
)

func mulShift(parcor int16, x int32) int32 {
	return numerics.Ashr32(int32(parcor)*x+roundBias, scaleBits)
}

// Predictor is the forward lattice filter. It owns its own forward/backward
// residual history buffers, sized at construction from the PARCOR order,
// and is reset to all zeros at creation. Order-matched state must be
// preserved across blocks within a single encode session for bit-exact
// decode (a compliant implementation may instead reset it at every block
// boundary, since the entropy coder state already resets there).
type Predictor struct {
	order int
	b     []int32 // length order+1
}

// NewPredictor returns a forward predictor for the given PARCOR order, with
// its backward-residual history initialised to zero.
func NewPredictor(order int) *Predictor {
	return &Predictor{order: order, b: make([]int32, order+1)}
}

// Reset zeroes the predictor's internal state.
func (p *Predictor) Reset() {
	for i := range p.b {
		p.b[i] = 0
	}
}

// Predict runs the forward lattice recursion over data and returns the
// residual sequence in a new slice (data is not modified), reusing the predictor's persistent backward-history
// buffer across calls.
func (p *Predictor) Predict(parcor []int16, data []int32) []int32 {
	order := p.order
	f := make([]int32, order+1)
	residual := make([]int32, len(data))
	b := p.b
	for n, x := range data {
		f[0] = x
		for k := 1; k <= order; k++ {
			f[k] = f[k-1] - mulShift(parcor[k], b[k-1])
		}
		for k := order; k >= 1; k-- {
			b[k] = b[k-1] - mulShift(parcor[k], f[k-1])
		}
		b[0] = x
		residual[n] = f[order]
	}
	return residual
}

// Synthesiser is the inverse lattice filter. Given the residual sequence
// produced by a Predictor driven with the same PARCOR vector and matching
// initial backward-history state, it reconstructs the original samples
// bit-for-bit.
type Synthesiser struct {
	order int
	b     []int32 // length order+1
}

// NewSynthesiser returns an inverse filter for the given PARCOR order, with
// its backward-residual history initialised to zero.
func NewSynthesiser(order int) *Synthesiser {
	return &Synthesiser{order: order, b: make([]int32, order+1)}
}

// Reset zeroes the synthesiser's internal state.
func (s *Synthesiser) Reset() {
	for i := range s.b {
		s.b[i] = 0
	}
}

// Synthesise inverts Predict: given the residual sequence and the same
// PARCOR vector, it reconstructs the original sample sequence.
func (s *Synthesiser) Synthesise(parcor []int16, residual []int32) []int32 {
	order := s.order
	b := s.b
	output := make([]int32, len(residual))
	for n, r := range residual {
		f := r
		for k := order; k >= 1; k-- {
			f += mulShift(parcor[k], b[k-1])
			b[k] = b[k-1] - mulShift(parcor[k], f)
		}
		output[n] = f
		b[0] = f
	}
	return output
}
