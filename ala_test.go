package ala

import (
	"bytes"
	"testing"
)

// memSource feeds pre-built per-channel sample slices to the encoder. Values
// are left-justified 32-bit, matching the external sample I/O contract.
type memSource struct {
	data [][]int32
	pos  int
}

func (s *memSource) totalSamples() uint32 {
	if len(s.data) == 0 {
		return 0
	}
	return uint32(len(s.data[0]))
}

func (s *memSource) ReadBlock(dst [][]int32) (int, error) {
	remaining := int(s.totalSamples()) - s.pos
	if remaining <= 0 {
		return 0, nil
	}
	n := len(dst[0])
	if n > remaining {
		n = remaining
	}
	for c := range dst {
		copy(dst[c][:n], s.data[c][s.pos:s.pos+n])
	}
	s.pos += n
	return n, nil
}

// memSink collects decoded blocks into a single contiguous buffer per
// channel.
type memSink struct {
	data [][]int32
}

func (s *memSink) WriteBlock(block [][]int32) error {
	if s.data == nil {
		s.data = make([][]int32, len(block))
	}
	for c, ch := range block {
		s.data[c] = append(s.data[c], ch...)
	}
	return nil
}

// widen left-justifies a 16-bit sample value to the external 32-bit sample
// I/O contract (section 6.2): shift left by 32-B.
func widen(v int32) int32 {
	return v << 16
}

func roundTrip(t *testing.T, cfg Config, data [][]int32) [][]int32 {
	t.Helper()
	src := &memSource{data: data}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, src.totalSamples(), src); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	sink := &memSink{}
	if _, err := Decode(&buf, sink); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return sink.data
}

func assertEqualChannels(t *testing.T, want, got [][]int32) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("channel count mismatch: want %d, got %d", len(want), len(got))
	}
	for c := range want {
		if len(want[c]) != len(got[c]) {
			t.Fatalf("channel %d length mismatch: want %d, got %d", c, len(want[c]), len(got[c]))
		}
		for i := range want[c] {
			if want[c][i] != got[c][i] {
				t.Fatalf("channel %d sample %d mismatch: want %d, got %d", c, i, want[c][i], got[c][i])
			}
		}
	}
}

func TestRoundTripSingleSampleMono(t *testing.T) {
	cfg := Config{Channels: 1, SampleRate: 44100, BitsPerSample: 16, BlockSize: 4096, PARCOROrder: 4}
	data := [][]int32{{widen(12345)}}
	got := roundTrip(t, cfg, data)
	assertEqualChannels(t, data, got)
}

func TestRoundTripSilentSingleSample(t *testing.T) {
	cfg := Config{Channels: 1, SampleRate: 44100, BitsPerSample: 16, BlockSize: 4096, PARCOROrder: 10}
	data := [][]int32{{widen(0)}}
	got := roundTrip(t, cfg, data)
	assertEqualChannels(t, data, got)
}

func TestRoundTripConstantStereo(t *testing.T) {
	cfg := Config{Channels: 2, SampleRate: 44100, BitsPerSample: 16, BlockSize: 4096, PARCOROrder: 8}
	const n = 8192
	data := make([][]int32, 2)
	for c := range data {
		ch := make([]int32, n)
		for i := range ch {
			ch[i] = widen(100)
		}
		data[c] = ch
	}
	got := roundTrip(t, cfg, data)
	assertEqualChannels(t, data, got)
}

func TestRoundTripTriangleWaveTwoBlocksStereo(t *testing.T) {
	cfg := Config{Channels: 2, SampleRate: 44100, BitsPerSample: 16, BlockSize: 4096, PARCOROrder: 10}
	const n = 5000
	data := make([][]int32, 2)
	for i := 0; i < n; i++ {
		l := int32(i % 1024)
		data[0] = append(data[0], widen(l))
		data[1] = append(data[1], widen(-l))
	}
	got := roundTrip(t, cfg, data)
	assertEqualChannels(t, data, got)
}

func TestDecodeSyncLostOnCorruptBlock(t *testing.T) {
	cfg := Config{Channels: 1, SampleRate: 8000, BitsPerSample: 16, BlockSize: 256, PARCOROrder: 2}
	data := [][]int32{make([]int32, 1000)}
	for i := range data[0] {
		data[0][i] = widen(int32(i % 100))
	}
	src := &memSource{data: data}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, src.totalSamples(), src); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	raw := buf.Bytes()
	headerBytes := 4 + 2 + 1 + 4 + 4 + 1 + 2 + 1 // signature, version, channels, sample count, rate, bps, block size, order
	if headerBytes >= len(raw) {
		t.Fatalf("unexpected stream too short")
	}
	raw[headerBytes] ^= 0xFF

	sink := &memSink{}
	_, err := Decode(bytes.NewReader(raw), sink)
	if err == nil {
		t.Fatalf("expected an error decoding a corrupted sync code")
	}
	aerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if aerr.Kind != SyncLost {
		t.Fatalf("expected SyncLost, got %v", aerr.Kind)
	}
}

func TestDecodeEndOfStreamOnTruncatedFile(t *testing.T) {
	cfg := Config{Channels: 1, SampleRate: 8000, BitsPerSample: 16, BlockSize: 256, PARCOROrder: 2}
	data := [][]int32{make([]int32, 1000)}
	for i := range data[0] {
		data[0][i] = widen(int32(i % 50))
	}
	src := &memSource{data: data}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, src.totalSamples(), src); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()-4]
	sink := &memSink{}
	_, err := Decode(bytes.NewReader(truncated), sink)
	if err == nil {
		t.Fatalf("expected an error decoding a truncated stream")
	}
	aerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if aerr.Kind != EndOfStream {
		t.Fatalf("expected EndOfStream, got %v", aerr.Kind)
	}
}
