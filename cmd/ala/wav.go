package main

import (
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// wavSource adapts a fully-buffered WAV PCM buffer to ala.SampleSource,
// de-interleaving samples into per-channel slices and left-justifying each
// one to 32 bits, per the external sample I/O contract.
type wavSource struct {
	data     []int
	channels int
	shift    uint
	pos      int
}

func newWAVSource(buf *audio.IntBuffer) *wavSource {
	return &wavSource{
		data:     buf.Data,
		channels: buf.Format.NumChannels,
		shift:    uint(32 - buf.SourceBitDepth),
	}
}

func (s *wavSource) totalSamples() uint32 {
	if s.channels == 0 {
		return 0
	}
	return uint32(len(s.data) / s.channels)
}

func (s *wavSource) ReadBlock(dst [][]int32) (int, error) {
	remaining := s.totalSamples() - uint32(s.pos)
	if remaining == 0 {
		return 0, nil
	}
	n := len(dst[0])
	if uint32(n) > remaining {
		n = int(remaining)
	}
	for i := 0; i < n; i++ {
		base := (s.pos + i) * s.channels
		for c := range dst {
			dst[c][i] = int32(s.data[base+c]) << s.shift
		}
	}
	s.pos += n
	return n, nil
}

// wavSink adapts ala.SampleSink to a streaming go-audio/wav Encoder,
// interleaving each decoded block and right-shifting its left-justified
// 32-bit samples back down to the WAV file's bit depth before writing it
// out.
type wavSink struct {
	enc   *wav.Encoder
	buf   audio.IntBuffer
	shift uint
}

func newWAVSink(enc *wav.Encoder, channels, sampleRate, bitDepth int) *wavSink {
	return &wavSink{
		enc:   enc,
		shift: uint(32 - bitDepth),
		buf: audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *wavSink) WriteBlock(block [][]int32) error {
	if len(block) == 0 {
		return nil
	}
	n := len(block[0])
	channels := len(block)
	if cap(s.buf.Data) < n*channels {
		s.buf.Data = make([]int, n*channels)
	}
	s.buf.Data = s.buf.Data[:n*channels]
	for i := 0; i < n; i++ {
		for c := 0; c < channels; c++ {
			s.buf.Data[i*channels+c] = int(block[c][i] >> s.shift)
		}
	}
	if err := s.enc.Write(&s.buf); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
