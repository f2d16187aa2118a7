package conceal

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/sebadur/jpeg-steganography/pkg/jpegcoef"
)

// embedPass walks the cover in canonical order, consuming pl's bits as
// carrier cells become available and padding the rest with entropy-matched
// noise, grounded on jpeg.cpp's bit_write. It returns PayloadTooLarge if pl
// is not fully consumed by the end of the walk, and RNGFailed if the
// padding draw cannot reach the OS RNG.
func embedPass(h *histogram, view *jpegcoef.View, pl *payload, entropy float64) error {
	var rngErr error
	view.Walk(func(_ *jpegcoef.Component, _, _, _ int, coefPtr *int16) bool {
		coef := uint16(*coefPtr)
		corr := Correlate(coef)
		kind, bwas := h.bitTest(coef, corr)

		switch kind {
		case classInvalid:
			// leave untouched, not counted.
		case classRestore:
			*coefPtr = int16(corr)
			h.occur[corr]++
		case classPadding:
			h.occur[coef]++
		default: // classNatural
			var bset byte
			haveReal := !pl.done()
			if haveReal {
				bset = pl.currentBit()
			} else {
				b, err := randomBit(entropy)
				if err != nil {
					rngErr = err
					return false
				}
				bset = b
			}

			if bwas == bset {
				h.count[coef]++
				h.occur[coef]++
				if haveReal {
					pl.advance()
				}
			} else {
				flipKind, flipBit := h.bitTest(corr, coef)
				if flipKind == classNatural && flipBit == bset {
					h.count[corr]++
					if haveReal {
						pl.advance()
					}
				}
				*coefPtr = int16(corr)
				h.occur[corr]++
			}
		}
		return true
	})
	if rngErr != nil {
		return &Error{Kind: RNGFailed, Op: "embed-pass", Err: rngErr}
	}
	if !pl.done() {
		return &Error{Kind: PayloadTooLarge, Op: "embed-pass"}
	}
	return nil
}

// randomBit draws one statistically entropy-matched padding bit from a
// cryptographically secure source, grounded on jpeg.cpp's use of
// getentropy() gated by the cover's own 0-bit frequency.
func randomBit(entropy float64) (byte, error) {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	rnd := binary.BigEndian.Uint16(buf[:])
	if float64(rnd)/65535.0 >= entropy {
		return 1, nil
	}
	return 0, nil
}
