package lpc

import (
	"math"
	"testing"
)

func TestAnalyseSilentBlock(t *testing.T) {
	x := make([]float64, 100)
	parcor := Analyse(x, 10)
	for i, c := range parcor {
		if c != 0 {
			t.Fatalf("silent block parcor[%d] = %v, want 0", i, c)
		}
	}
}

func TestAnalyseShortBlock(t *testing.T) {
	x := []float64{1, 2, 3}
	parcor := Analyse(x, 10)
	if len(parcor) != 11 {
		t.Fatalf("len(parcor) = %d, want 11", len(parcor))
	}
	for i, c := range parcor {
		if c != 0 {
			t.Fatalf("short block parcor[%d] = %v, want 0", i, c)
		}
	}
}

func TestAnalyseSineWave(t *testing.T) {
	const l = 512
	x := make([]float64, l)
	for i := range x {
		x[i] = 1000 * math.Sin(float64(i)*0.1)
	}
	parcor := Analyse(x, 10)
	if parcor[0] != 0 {
		t.Fatalf("parcor[0] = %v, want 0", parcor[0])
	}
	for i, c := range parcor[1:] {
		if c <= -1 || c >= 1 {
			t.Fatalf("parcor[%d] = %v, not within (-1, 1)", i+1, c)
		}
	}
}

func TestQuantizeClamps(t *testing.T) {
	q := Quantize([]float64{0, 2, -2, 0.5, -0.5})
	want := []int16{0, 32767, -32768, 16384, -16384}
	for i := range want {
		if q[i] != want[i] {
			t.Errorf("Quantize[%d] = %d, want %d", i, q[i], want[i])
		}
	}
}
