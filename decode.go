package ala

import (
	"io"

	"github.com/ala-codec/ala/internal/bitstream"
	"github.com/ala-codec/ala/internal/decorr"
	"github.com/ala-codec/ala/internal/emphasis"
	"github.com/ala-codec/ala/internal/lattice"
	"github.com/ala-codec/ala/internal/rice"
)

// SampleSink consumes the PCM samples reconstructed by the decoder, one
// left-justified 32-bit value per channel per sample (the external sample
// I/O contract). It is the decoder's collaborator on the egress side; a WAV
// writer is the reference implementation.
type SampleSink interface {
	WriteBlock(block [][]int32) error
}

// Decoder reads a sequence of sample blocks from an ALA bitstream, the
// inverse of Encoder.
type Decoder struct {
	cfg          Config
	br           *bitstream.Reader
	synthesisers []*lattice.Synthesiser
	remaining    uint32
	shift        uint
}

// NewDecoder reads and validates the file header from r and returns a
// Decoder ready to produce blocks via DecodeBlock. The Config's Channels,
// SampleRate, BitsPerSample, BlockSize, and PARCOROrder fields are
// populated from the header.
func NewDecoder(r io.Reader) (*Decoder, error) {
	br := bitstream.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		Channels:      hdr.Channels,
		SampleRate:    hdr.SampleRate,
		BitsPerSample: hdr.BitsPerSample,
		BlockSize:     hdr.BlockSize,
		PARCOROrder:   hdr.PARCOROrder,
		EmphasisShift: DefaultEmphasisShift,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	synth := make([]*lattice.Synthesiser, cfg.Channels)
	for i := range synth {
		synth[i] = lattice.NewSynthesiser(cfg.PARCOROrder)
	}

	shift := uint(32 - cfg.BitsPerSample)
	return &Decoder{cfg: cfg, br: br, synthesisers: synth, remaining: hdr.SampleCount, shift: shift}, nil
}

// Config returns the stream configuration decoded from the file header.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Remaining returns the number of inter-channel samples declared in the file
// header that have not yet been decoded.
func (d *Decoder) Remaining() uint32 {
	return d.remaining
}

// Done reports whether every sample declared in the file header has been
// decoded.
func (d *Decoder) Done() bool {
	return d.remaining == 0
}

// DecodeBlock reads and reconstructs the next block of samples, one slice
// per channel, left-justified to 32 bits per the external sample I/O
// contract. The final block of a stream is truncated to N mod BlockSize
// samples when that remainder is nonzero.
func (d *Decoder) DecodeBlock() ([][]int32, error) {
	if d.remaining == 0 {
		return nil, io.EOF
	}
	n := d.cfg.BlockSize
	if uint32(n) > d.remaining {
		n = int(d.remaining)
	}

	order := d.cfg.PARCOROrder
	parcorQ, err := readBlockHeader(d.br, d.cfg.Channels, order)
	if err != nil {
		return nil, err
	}

	residuals, err := rice.GetArray(d.br, d.cfg.Channels, n)
	if err != nil {
		return nil, wrapError(EndOfStream, err, "read residual payload")
	}

	out := make([][]int32, d.cfg.Channels)
	for c, residual := range residuals {
		samples := d.synthesisers[c].Synthesise(parcorQ[c], residual)
		emphasis.Unapply(samples, d.cfg.EmphasisShift)
		out[c] = samples
	}
	if d.cfg.Channels >= 2 {
		decorr.InverseBlock(out)
	}
	for _, ch := range out {
		for i, s := range ch {
			ch[i] = s << d.shift
		}
	}

	if err := d.br.Flush(); err != nil {
		return nil, wrapError(IOError, err, "byte-align after block")
	}

	d.remaining -= uint32(n)
	return out, nil
}

// Decode reads the full file header from r, then drives decode to
// completion, calling sink.WriteBlock once per decoded block.
func Decode(r io.Reader, sink SampleSink) (Config, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return Config{}, err
	}
	for !dec.Done() {
		block, err := dec.DecodeBlock()
		if err != nil {
			return dec.cfg, err
		}
		if err := sink.WriteBlock(block); err != nil {
			return dec.cfg, wrapError(IOError, err, "write decoded block")
		}
	}
	return dec.cfg, nil
}
