// Package rice implements the adaptive recursive-Rice entropy coder used
// for the per-channel prediction residual. Each channel carries an
// independent State tracking an exponentially-smoothed estimate of the
// residual magnitude; the Rice divisor used to code a value is always a
// power of two derived from that estimate, so quotient and remainder
// reduce to a shift and a mask.
package rice

import (
	"github.com/ala-codec/ala/internal/bitstream"
	"github.com/ala-codec/ala/internal/numerics"
)

// State is the per-channel Rice-parameter tracker: an unsigned 64-bit
// fixed-point scalar with 8 fractional bits holding the estimated mean of
// the coded values.
type State struct {
	m uint64
}

// NewState returns a Rice state with its mean initialised to the given
// value (already in 8.8-style fixed point, i.e. pre-shifted left by 8).
func NewState(initialMean uint64) *State {
	return &State{m: initialMean}
}

// divisorFromMean implements D = round_up_pow2(max(1, round(m/2))), where m
// is in 8.8 fixed point, so round(m/2) in integer units is
// round(m / 2 / 256) = (m + 256) >> 9.
func divisorFromMean(m uint64) uint64 {
	half := (m + 256) >> 9
	if half < 1 {
		half = 1
	}
	d := numerics.RoundUpPow2(half)
	if d < 1 {
		panic("rice: divisor invariant d >= 1 violated")
	}
	return d
}

// update applies the exponential-smoothing recurrence after coding value v:
// m <- (119*m + 9*(v<<8) + 64) >> 7.
func (s *State) update(v uint64) {
	s.m = (119*s.m + 9*(v<<8) + 64) >> 7
}

// EncodeValue Rice-codes a single non-negative integer to bw using the
// state's current divisor, then updates the state.
func EncodeValue(bw *bitstream.Writer, s *State, v uint64) error {
	d := divisorFromMean(s.m)
	k := numerics.Log2Ceil(d)
	q := v / d
	r := v % d

	for i := uint64(0); i < q; i++ {
		if err := bw.PutBit(0); err != nil {
			return err
		}
	}
	if err := bw.PutBit(1); err != nil {
		return err
	}
	if k > 0 {
		if err := bw.PutBits(k, r); err != nil {
			return err
		}
	}

	s.update(v)
	return nil
}

// DecodeValue Rice-decodes a single non-negative integer from br using the
// state's current divisor, then updates the state.
func DecodeValue(br *bitstream.Reader, s *State) (uint64, error) {
	d := divisorFromMean(s.m)
	k := numerics.Log2Ceil(d)

	var q uint64
	for {
		bit, err := br.GetBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		q++
	}

	var r uint64
	if k > 0 {
		var err error
		r, err = br.GetBits(k)
		if err != nil {
			return 0, err
		}
	}

	v := q*d + r
	s.update(v)
	return v, nil
}

// PutArray encodes a [channel][sample] block of signed residuals, one
// independent Rice state per channel, channel-outer (all samples of
// channel 0, then channel 1, ...). For each channel it first transmits a
// 16-bit initial mean (the mean of the zig-zag-unsigned samples of that
// channel), then codes the zig-zag-mapped samples with a state seeded from
// that mean.
func PutArray(bw *bitstream.Writer, data [][]int32) error {
	for _, channel := range data {
		var sum uint64
		for _, s := range channel {
			sum += uint64(numerics.ZigZagEncode(s))
		}
		mean := uint64(0)
		if len(channel) > 0 {
			mean = sum / uint64(len(channel))
		}
		if mean >= 1<<16 {
			panic("rice: initial mean exceeds 16 bits")
		}
		if err := bw.PutBits(16, mean); err != nil {
			return err
		}

		state := NewState(mean << 8)
		for _, sample := range channel {
			u := uint64(numerics.ZigZagEncode(sample))
			if err := EncodeValue(bw, state, u); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetArray decodes nchannels independent Rice-coded channels of nsamples
// signed residuals each, symmetric with PutArray.
func GetArray(br *bitstream.Reader, nchannels, nsamples int) ([][]int32, error) {
	data := make([][]int32, nchannels)
	for c := 0; c < nchannels; c++ {
		mean, err := br.GetBits(16)
		if err != nil {
			return nil, err
		}
		state := NewState(mean << 8)

		channel := make([]int32, nsamples)
		for i := 0; i < nsamples; i++ {
			u, err := DecodeValue(br, state)
			if err != nil {
				return nil, err
			}
			channel[i] = numerics.ZigZagDecode(uint32(u))
		}
		data[c] = channel
	}
	return data, nil
}
