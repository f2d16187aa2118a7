package jpegcoef

import "testing"

func flatBlocks(values []int16, wide, high int) [][]Block {
	blocks := make([][]Block, high)
	idx := 0
	for y := 0; y < high; y++ {
		blocks[y] = make([]Block, wide)
		for x := 0; x < wide; x++ {
			copy(blocks[y][x][:], values[idx:idx+64])
			idx += 64
		}
	}
	return blocks
}

func grayscaleView(blocksWide int, fill func(b int, d int) int16) *View {
	values := make([]int16, blocksWide*64)
	for b := 0; b < blocksWide; b++ {
		for d := 0; d < 64; d++ {
			values[b*64+d] = fill(b, d)
		}
	}
	comp := Component{
		ID: 1, H: 1, V: 1,
		BlocksWide: blocksWide,
		BlocksHigh: 1,
		Blocks:     flatBlocks(values, blocksWide, 1),
	}
	var q QuantTable
	for i := range q {
		q[i] = 1
	}
	return &View{
		Width: blocksWide * 8, Height: 8,
		Grayscale:  true,
		Components: []Component{comp},
		Quant:      []QuantTable{q},
	}
}

func TestSerializeDecodeRoundTrip(t *testing.T) {
	v := grayscaleView(4, func(b, d int) int16 {
		if d == 0 {
			return int16(10 + b) // DC
		}
		if d%7 == 0 {
			return int16((d % 5) - 2) // a sprinkling of small AC values
		}
		return 0
	})

	out, err := v.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Width != v.Width || got.Height != v.Height {
		t.Fatalf("dims: got %dx%d, want %dx%d", got.Width, got.Height, v.Width, v.Height)
	}
	if len(got.Components) != 1 {
		t.Fatalf("components: got %d, want 1", len(got.Components))
	}
	wantC, gotC := v.Components[0], got.Components[0]
	for by := 0; by < wantC.BlocksHigh; by++ {
		for bx := 0; bx < wantC.BlocksWide; bx++ {
			want := wantC.Blocks[by][bx]
			have := gotC.Blocks[by][bx]
			if want != have {
				t.Fatalf("block (%d,%d): got %v, want %v", by, bx, have, want)
			}
		}
	}
}

func TestUnzigIsAPermutation(t *testing.T) {
	var seen [64]bool
	for _, idx := range unzig {
		if idx < 0 || idx > 63 || seen[idx] {
			t.Fatalf("unzig is not a permutation of 0..63: duplicate or out-of-range %d", idx)
		}
		seen[idx] = true
	}
}

func TestDecodeRejectsNonJPEG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	_, err := Decode(png)
	if err == nil {
		t.Fatal("Decode of PNG bytes succeeded, want DecodeFailed")
	}
	jerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if jerr.Kind != DecodeFailed {
		t.Fatalf("Kind = %v, want DecodeFailed", jerr.Kind)
	}
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	_, err := Decode([]byte{0xFF})
	if err == nil {
		t.Fatal("Decode of a single truncated byte succeeded, want DecodeFailed")
	}
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != DecodeFailed {
		t.Fatalf("got %v, want a DecodeFailed *Error", err)
	}
}

func TestHuffmanLUTCoversEverySpecValue(t *testing.T) {
	for hi, spec := range theHuffmanSpec {
		lut := huffmanLUTs[hi]
		for _, v := range spec.value {
			if lut[v] == 0 {
				t.Fatalf("table %d: value %#x has no assigned code", hi, v)
			}
		}
	}
}
