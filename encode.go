package ala

import (
	"io"

	"github.com/ala-codec/ala/internal/bitstream"
	"github.com/ala-codec/ala/internal/decorr"
	"github.com/ala-codec/ala/internal/emphasis"
	"github.com/ala-codec/ala/internal/lattice"
	"github.com/ala-codec/ala/internal/lpc"
	"github.com/ala-codec/ala/internal/numerics"
	"github.com/ala-codec/ala/internal/rice"
)

// SampleSource supplies the PCM samples to be encoded, one left-justified
// 32-bit value per channel per sample (the external sample I/O contract). It
// is the encoder's collaborator on the ingest side; a WAV reader is the
// reference implementation, but the core makes no assumption about the
// container format.
//
// ReadBlock returns up to len(dst[i]) samples per channel into dst, and the
// number of samples actually filled (which may be less than len(dst[i]) only
// for the final block of the stream). Once no further samples are available
// it returns 0, with either a nil error or io.EOF; Encode treats both as the
// end of the input.
type SampleSource interface {
	ReadBlock(dst [][]int32) (n int, err error)
}

// Encoder writes a sequence of sample blocks to an ALA bitstream. Each
// channel's lattice predictor state persists across blocks within the
// session.
type Encoder struct {
	cfg        Config
	bw         *bitstream.Writer
	predictors []*lattice.Predictor
	shift      uint
}

// NewEncoder validates cfg and returns an Encoder that will write an ALA
// file header for a stream of the given total sample count, followed by the
// block-encoded audio data written via subsequent calls to EncodeBlock.
func NewEncoder(w io.Writer, cfg Config, totalSamples uint32) (*Encoder, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bw := bitstream.NewWriter(w)
	hdr := header{
		Channels:      cfg.Channels,
		SampleCount:   totalSamples,
		SampleRate:    cfg.SampleRate,
		BitsPerSample: cfg.BitsPerSample,
		BlockSize:     cfg.BlockSize,
		PARCOROrder:   cfg.PARCOROrder,
	}
	if err := writeHeader(bw, hdr); err != nil {
		return nil, err
	}

	predictors := make([]*lattice.Predictor, cfg.Channels)
	for i := range predictors {
		predictors[i] = lattice.NewPredictor(cfg.PARCOROrder)
	}

	return &Encoder{cfg: cfg, bw: bw, predictors: predictors, shift: uint(32 - cfg.BitsPerSample)}, nil
}

// EncodeBlock encodes one block of left-justified 32-bit samples, one slice
// per channel, all of equal length (<= cfg.BlockSize), per the external
// sample I/O contract. Samples are right-shifted to their effective
// bits-per-sample width before any analysis or prediction runs; the core
// pipeline operates on that right-shifted form throughout. For
// two-or-more-channel streams, channels 0 and 1 are losslessly decorrelated
// to mid/side before analysis and prediction.
func (e *Encoder) EncodeBlock(block [][]int32) error {
	if len(block) != e.cfg.Channels {
		return newError(InvalidArgument, "block has %d channels, encoder configured for %d", len(block), e.cfg.Channels)
	}
	n := 0
	if len(block) > 0 {
		n = len(block[0])
	}

	raw := make([][]int32, len(block))
	for c, ch := range block {
		cp := make([]int32, len(ch))
		for i, s := range ch {
			cp[i] = s >> e.shift
		}
		raw[c] = cp
	}

	// The double-precision analysis signal is derived straight from the
	// width-normalised raw samples via the exact mid/side transform, not from the
	// Ashr32-truncated integer one used for lossless prediction below: the
	// two are separate steps (spec.md §2, §4.3), and reusing the truncated
	// integer mid introduces a systematic bias into the LPC analysis.
	analysis := make([][]float64, len(raw))
	if e.cfg.Channels >= 2 {
		l, r := raw[0], raw[1]
		mid := make([]float64, n)
		side := make([]float64, n)
		for i := 0; i < n; i++ {
			mid[i], side[i] = decorr.ToMidSideDouble(float64(l[i]), float64(r[i]))
		}
		analysis[0], analysis[1] = mid, side
		for c := 2; c < len(raw); c++ {
			ch := make([]float64, n)
			for i, s := range raw[c] {
				ch[i] = float64(s)
			}
			analysis[c] = ch
		}
	} else {
		for c, ch := range raw {
			a := make([]float64, n)
			for i, s := range ch {
				a[i] = float64(s)
			}
			analysis[c] = a
		}
	}

	work := raw
	if e.cfg.Channels >= 2 {
		decorr.Block(work)
	}

	order := e.cfg.PARCOROrder
	parcorQ := make([][]int16, len(work))
	residuals := make([][]int32, len(work))
	window := numerics.SinWindow(n)
	for c, samples := range work {
		windowed := make([]float64, n)
		for i, a := range analysis[c] {
			windowed[i] = a * window[i]
		}
		emphasis.ApplyDouble(windowed, e.cfg.EmphasisShift)

		parcor := lpc.Analyse(windowed, order)
		parcorQ[c] = lpc.Quantize(parcor)

		emphasised := make([]int32, n)
		copy(emphasised, samples)
		emphasis.Apply(emphasised, e.cfg.EmphasisShift)

		residuals[c] = e.predictors[c].Predict(parcorQ[c], emphasised)
	}

	if err := writeBlockHeader(e.bw, order, parcorQ); err != nil {
		return err
	}
	if err := rice.PutArray(e.bw, residuals); err != nil {
		return wrapError(IOError, err, "write residual payload")
	}
	if err := e.bw.Flush(); err != nil {
		return wrapError(IOError, err, "flush block")
	}
	return nil
}

// Encode drives src to completion, writing an ALA file header for
// totalSamples followed by cfg.BlockSize-sized blocks (the final block
// truncated to the remainder) to w.
func Encode(w io.Writer, cfg Config, totalSamples uint32, src SampleSource) error {
	enc, err := NewEncoder(w, cfg, totalSamples)
	if err != nil {
		return err
	}

	blockSize := enc.cfg.BlockSize
	buf := make([][]int32, enc.cfg.Channels)
	for i := range buf {
		buf[i] = make([]int32, blockSize)
	}

	var done uint32
	for done < totalSamples {
		n, err := src.ReadBlock(buf)
		if n == 0 {
			if err == io.EOF || err == nil {
				break
			}
			return wrapError(IOError, err, "read sample block")
		}
		block := make([][]int32, len(buf))
		for i, ch := range buf {
			block[i] = ch[:n]
		}
		if encErr := enc.EncodeBlock(block); encErr != nil {
			return encErr
		}
		done += uint32(n)
		if err == io.EOF {
			break
		}
	}
	return nil
}
