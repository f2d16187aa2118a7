package conceal

import "testing"

func TestCorrelateInvalidSet(t *testing.T) {
	for _, u := range []uint16{0, 1, 2, 0xFFFE, 0xFFFF, 0x7fff} {
		if got := Correlate(u); got != 0 {
			t.Errorf("Correlate(%#x) = %#x, want 0", u, got)
		}
	}
}

func TestCorrelateInvolution(t *testing.T) {
	for u := 0; u < 1<<16; u++ {
		c := Correlate(uint16(u))
		if c == 0 {
			continue
		}
		back := Correlate(c)
		if back != uint16(u) {
			t.Fatalf("Correlate(Correlate(%#x)) = %#x, want %#x", u, back, u)
		}
	}
}

func TestCorrelateKnownPairs(t *testing.T) {
	pairs := [][2]uint16{{3, 4}, {5, 6}, {7, 8}, {0x8000, 0x8001}}
	for _, p := range pairs {
		if got := Correlate(p[0]); got != p[1] {
			t.Errorf("Correlate(%#x) = %#x, want %#x", p[0], got, p[1])
		}
		if got := Correlate(p[1]); got != p[0] {
			t.Errorf("Correlate(%#x) = %#x, want %#x", p[1], got, p[0])
		}
	}
}
