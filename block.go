package ala

import (
	"github.com/ala-codec/ala/internal/bitstream"
	"github.com/ala-codec/ala/internal/numerics"
)

// writeBlockHeader writes a block's sync code followed by its per-channel
// quantised PARCOR vectors (elements 1..order; element 0 is implicit zero
// and never transmitted).
func writeBlockHeader(bw *bitstream.Writer, order int, parcor [][]int16) error {
	if err := bw.PutBits(16, SyncCode); err != nil {
		return wrapError(IOError, err, "write sync code")
	}
	for _, channel := range parcor {
		for ord := 1; ord <= order; ord++ {
			u := numerics.ZigZagEncode(int32(channel[ord]))
			if err := bw.PutBits(16, uint64(u)); err != nil {
				return wrapError(IOError, err, "write PARCOR coefficient")
			}
		}
	}
	return nil
}

// readBlockHeader reads and validates a block's sync code, then its
// per-channel quantised PARCOR vectors. Element 0 of each returned vector is
// always 0, matching the convention used throughout the codec.
func readBlockHeader(br *bitstream.Reader, channels, order int) ([][]int16, error) {
	sync, err := br.GetBits(16)
	if err != nil {
		return nil, wrapError(EndOfStream, err, "read sync code")
	}
	if sync != SyncCode {
		return nil, newError(SyncLost, "expected sync code %#04x, got %#04x", SyncCode, sync)
	}

	parcor := make([][]int16, channels)
	for c := range parcor {
		channel := make([]int16, order+1)
		for ord := 1; ord <= order; ord++ {
			u, err := br.GetBits(16)
			if err != nil {
				return nil, wrapError(EndOfStream, err, "read PARCOR coefficient")
			}
			channel[ord] = int16(numerics.ZigZagDecode(uint32(u)))
		}
		parcor[c] = channel
	}
	return parcor, nil
}
