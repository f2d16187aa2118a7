// Package jpegcoef reads and writes baseline JPEG files at the level of
// quantized DCT coefficients. It never runs an IDCT or FDCT and never
// touches pixel/colorspace data: a View round-trips a cover's coefficients
// losslessly, which is the only property callers in pkg/conceal need.
package jpegcoef

// Block holds one 8x8 block's coefficients in natural (row-major, not
// zig-zag) order, index 0 is the DC term.
type Block [64]int16

// Component describes one color component's sampling geometry and its
// coefficient grid, padded up to a whole number of 8x8 blocks in each
// direction (the same padding jpeg_read_coefficients leaves in place).
type Component struct {
	ID          byte
	H, V        int // sampling factors
	QuantTable  int // index into View.Quant
	DCTable     int // id of the DC table from the file's DHT, read from SOS
	ACTable     int // id of the AC table from the file's DHT, read from SOS
	BlocksWide  int // width in 8x8 blocks, MCU-padded
	BlocksHigh  int // height in 8x8 blocks, MCU-padded
	Blocks      [][]Block
}

// QuantTable is one DQT table, stored in zig-zag order exactly as the
// bitstream encodes it; values are never rescaled.
type QuantTable [64]uint16

// View is a decoded cover JPEG: its coefficients, quantization tables, and
// enough structural metadata to re-serialize a bit-identical-content file.
type View struct {
	Width, Height   int
	Grayscale       bool
	Components      []Component
	Quant           []QuantTable
	RestartInterval int
}

// Walk visits every coefficient of every block of every component exactly
// once, in the canonical order: components in ascending index, block rows
// top to bottom, block columns left to right, coefficient index 0..63 in
// natural order. fn may mutate the coefficient through the pointer it is
// handed. Returning false from fn stops the walk immediately, for passes
// that only need a prefix of the cover (e.g. filling a fixed-size buffer).
func (v *View) Walk(fn func(c *Component, by, bx, d int, coef *int16) bool) {
	for ci := range v.Components {
		c := &v.Components[ci]
		for by := 0; by < c.BlocksHigh; by++ {
			for bx := 0; bx < c.BlocksWide; bx++ {
				blk := &c.Blocks[by][bx]
				for d := 0; d < 64; d++ {
					if !fn(c, by, bx, d, &blk[d]) {
						return
					}
				}
			}
		}
	}
}
