package conceal

import "github.com/sebadur/jpeg-steganography/pkg/jpegcoef"

// extractPass walks the cover in canonical order, classifying each cell
// exactly as embedPass did, and recovering the bits that classify as
// natural carriers. Grounded on jpeg.cpp's bit_read.
//
// dest == nil runs in "measure" mode: every cell in the cover is visited
// and the returned byte count is the full capacity. A non-nil dest runs in
// "fill" mode: the walk stops as soon as dest is full.
func extractPass(h *histogram, view *jpegcoef.View, dest []byte) int {
	msgByte, msgBit := 0, uint(0)
	view.Walk(func(_ *jpegcoef.Component, _, _, _ int, coefPtr *int16) bool {
		if dest != nil && msgByte >= len(dest) {
			return false
		}
		coef := uint16(*coefPtr)
		corr := Correlate(coef)
		kind, bit := h.bitTest(coef, corr)
		if kind == classNatural {
			h.count[coef]++
			if dest != nil {
				if bit != 0 {
					dest[msgByte] |= 1 << msgBit
				} else {
					dest[msgByte] &^= 1 << msgBit
				}
			}
			msgBit++
			msgByte += int(msgBit>>3) & 1
			msgBit &= 7
		}
		h.occur[coef]++
		return true
	})
	return msgByte
}
