package decorr

import (
	"testing"
	"testing/quick"
)

func TestRoundTrip(t *testing.T) {
	f := func(l, r int16) bool {
		L, R := int32(l), int32(r)
		mid, side := ToMidSide(L, R)
		gotL, gotR := ToLeftRight(mid, side)
		return gotL == L && gotR == R
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestConstantSignalSideIsZero(t *testing.T) {
	mid, side := ToMidSide(100, 100)
	if mid != 100 || side != 0 {
		t.Fatalf("ToMidSide(100, 100) = (%d, %d), want (100, 0)", mid, side)
	}
	l, r := ToLeftRight(mid, side)
	if l != 100 || r != 100 {
		t.Fatalf("ToLeftRight(100, 0) = (%d, %d), want (100, 100)", l, r)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	left := []int32{100, -5, 32767, -32768, 0}
	right := []int32{100, 3, -32768, 32767, 0}
	data := [][]int32{append([]int32(nil), left...), append([]int32(nil), right...)}
	Block(data)
	InverseBlock(data)
	for i := range left {
		if data[0][i] != left[i] || data[1][i] != right[i] {
			t.Fatalf("round trip mismatch at %d: got (%d, %d), want (%d, %d)", i, data[0][i], data[1][i], left[i], right[i])
		}
	}
}
