package conceal

import "testing"

func TestBitTestInvalidWhenUnseen(t *testing.T) {
	h := &histogram{}
	h.total[3] = 5
	// total[4] stays zero: the partner was never seen in the cover.
	if kind, _ := h.bitTest(3, 4); kind != classInvalid {
		t.Fatalf("bitTest = %v, want classInvalid", kind)
	}
}

func TestBitTestRestoreWhenExhausted(t *testing.T) {
	h := &histogram{}
	h.total[3] = 2
	h.total[4] = 2
	h.occur[3] = 2 // every original 3 already processed
	if kind, _ := h.bitTest(3, 4); kind != classRestore {
		t.Fatalf("bitTest = %v, want classRestore", kind)
	}
}

func TestBitTestPaddingWhenPartnerExhausted(t *testing.T) {
	h := &histogram{}
	h.total[3] = 5
	h.total[4] = 2
	h.occur[4] = 2
	if kind, _ := h.bitTest(3, 4); kind != classPadding {
		t.Fatalf("bitTest = %v, want classPadding", kind)
	}
}

func TestBitTestNaturalUnderQuota(t *testing.T) {
	h := &histogram{}
	h.total[3] = 10
	h.total[4] = 10
	kind, bit := h.bitTest(3, 4)
	if kind != classNatural {
		t.Fatalf("bitTest = %v, want classNatural", kind)
	}
	if bit != 3&1 {
		t.Fatalf("bit = %d, want %d", bit, 3&1)
	}
}

func TestBitTestPaddingAtQuota(t *testing.T) {
	h := &histogram{}
	h.total[3] = 10
	h.total[4] = 20
	h.occur[3] = 1
	h.count[3] = 1 // seen = 1<<16/1 = full scale, quota = 10<<16/20 = half scale
	if kind, _ := h.bitTest(3, 4); kind != classPadding {
		t.Fatalf("bitTest = %v, want classPadding once over quota", kind)
	}
}
