package ala

import (
	"github.com/ala-codec/ala/internal/bitstream"
)

// Signature is the four bytes that begin every ALA file.
var Signature = [4]byte{'A', 'L', 'A', 0}

// FormatVersion is the only wire format version this implementation knows
// how to read and write.
const FormatVersion = 1

// SyncCode marks the start of every block.
const SyncCode = 0xFFFF

// header is the fixed set of fields that open an ALA file. Field widths
// follow spec.md section 6.1 verbatim; note that the per-field widths
// listed there (32+16+8+32+32+8+16+8 = 152 bits) sum to more than the
// section's stated aggregate of 136 bits. This implementation takes the
// per-field table as authoritative (see DESIGN.md) — 152 bits is itself a
// whole number of bytes (19), so the "no padding before the first block"
// requirement is still satisfied without a flush.
type header struct {
	Channels      int
	SampleCount   uint32
	SampleRate    uint32
	BitsPerSample int
	BlockSize     int
	PARCOROrder   int
}

func writeHeader(bw *bitstream.Writer, h header) error {
	for _, b := range Signature {
		if err := bw.PutBits(8, uint64(b)); err != nil {
			return wrapError(IOError, err, "write signature")
		}
	}
	if err := bw.PutBits(16, FormatVersion); err != nil {
		return wrapError(IOError, err, "write format version")
	}
	if err := bw.PutBits(8, uint64(h.Channels)); err != nil {
		return wrapError(IOError, err, "write channel count")
	}
	if err := bw.PutBits(32, uint64(h.SampleCount)); err != nil {
		return wrapError(IOError, err, "write sample count")
	}
	if err := bw.PutBits(32, uint64(h.SampleRate)); err != nil {
		return wrapError(IOError, err, "write sample rate")
	}
	if err := bw.PutBits(8, uint64(h.BitsPerSample)); err != nil {
		return wrapError(IOError, err, "write bits per sample")
	}
	if err := bw.PutBits(16, uint64(h.BlockSize)); err != nil {
		return wrapError(IOError, err, "write block size")
	}
	if err := bw.PutBits(8, uint64(h.PARCOROrder)); err != nil {
		return wrapError(IOError, err, "write PARCOR order")
	}
	return nil
}

func readHeader(br *bitstream.Reader) (header, error) {
	var h header
	var sig [4]byte
	for i := range sig {
		b, err := br.GetBits(8)
		if err != nil {
			return h, wrapError(EndOfStream, err, "read signature")
		}
		sig[i] = byte(b)
	}
	if sig != Signature {
		return h, newError(BadSignature, "expected %q, got %q", Signature, sig)
	}

	version, err := br.GetBits(16)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read format version")
	}
	if version != FormatVersion {
		return h, newError(UnsupportedVersion, "unsupported format version %d", version)
	}

	channels, err := br.GetBits(8)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read channel count")
	}
	h.Channels = int(channels)

	sampleCount, err := br.GetBits(32)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read sample count")
	}
	h.SampleCount = uint32(sampleCount)

	sampleRate, err := br.GetBits(32)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read sample rate")
	}
	h.SampleRate = uint32(sampleRate)

	bps, err := br.GetBits(8)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read bits per sample")
	}
	h.BitsPerSample = int(bps)

	blockSize, err := br.GetBits(16)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read block size")
	}
	h.BlockSize = int(blockSize)

	order, err := br.GetBits(8)
	if err != nil {
		return h, wrapError(EndOfStream, err, "read PARCOR order")
	}
	h.PARCOROrder = int(order)

	return h, nil
}
