package conceal

import "github.com/sebadur/jpeg-steganography/pkg/jpegcoef"

// Embedder borrows mutable access to a cover JPEG's coefficients for the
// duration of a pass. It is not safe for concurrent use; independent
// Embedders over disjoint covers may run in parallel. Grounded on
// jpeg.cpp's jpeg_conceal lifecycle: decode, INIT, a dry READ to fix
// entropy, then any number of current-size/read/write calls.
type Embedder struct {
	view    *jpegcoef.View
	total   [tableSize]uint32
	entropy float64
}

// NewEmbedder decodes cover, builds the frozen total histogram, and
// computes the cover's native entropy via a dry extract, all before
// returning — matching the reference constructor's ordering exactly.
func NewEmbedder(cover []byte) (*Embedder, error) {
	if err := selfCheckCorrelation(); err != nil {
		return nil, err
	}
	view, err := jpegcoef.Decode(cover)
	if err != nil {
		return nil, &Error{Kind: DecodeFailed, Op: "decode", Err: err}
	}
	e := &Embedder{view: view}
	e.initTotals()
	e.entropy = e.computeEntropy()
	return e, nil
}

// initTotals is the histogram pass (INIT): zero total, then walk every
// coefficient once, incrementing total[u]. Frozen for the embedder's
// lifetime thereafter.
func (e *Embedder) initTotals() {
	e.view.Walk(func(_ *jpegcoef.Component, _, _, _ int, coefPtr *int16) bool {
		e.total[uint16(*coefPtr)]++
		return true
	})
}

func (e *Embedder) freshHistogram() *histogram {
	h := &histogram{}
	h.total = e.total
	return h
}

// computeEntropy runs a dry extract (current_size then a full fill read)
// and returns the fraction of 0-bits across every recovered bit.
func (e *Embedder) computeEntropy() float64 {
	measure := e.freshHistogram()
	n := extractPass(measure, e.view, nil)
	if n == 0 {
		return 0
	}
	buf := make([]byte, n)
	h := e.freshHistogram()
	extractPass(h, e.view, buf)

	zeros, total := 0, 0
	for _, b := range buf {
		for bit := 0; bit < 8; bit++ {
			total++
			if (b>>uint(bit))&1 == 0 {
				zeros++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(zeros) / float64(total)
}

// CurrentSize returns the cover's embedding capacity in bytes: the number
// of whole bytes a full extract pass recovers before the cover runs out of
// carrier cells.
func (e *Embedder) CurrentSize() int {
	h := e.freshHistogram()
	return extractPass(h, e.view, nil)
}

// Read recovers the payload currently embedded in (or the pseudo-random
// cover noise of) the cover, sized to CurrentSize().
func (e *Embedder) Read() ([]byte, error) {
	n := e.CurrentSize()
	buf := make([]byte, n)
	h := e.freshHistogram()
	got := extractPass(h, e.view, buf)
	if got != n {
		return nil, &Error{Kind: ExtractIncomplete, Op: "read"}
	}
	return buf, nil
}

// Write embeds msg into the cover and returns a freshly re-serialized JPEG
// byte buffer. msg must be no longer than CurrentSize(), but that bound is
// not sufficient: a flip whose partner value is already at its quota moves
// the coefficient without carrying a bit, so the pass can run out of
// carrier cells first, and a msg of CurrentSize() bytes can fail with
// PayloadTooLarge. Any surplus capacity is filled with entropy-matched noise.
func (e *Embedder) Write(msg []byte) ([]byte, error) {
	h := e.freshHistogram()
	pl := &payload{data: msg}
	if err := embedPass(h, e.view, pl, e.entropy); err != nil {
		return nil, err
	}
	out, err := e.view.Serialize()
	if err != nil {
		return nil, &Error{Kind: EncodeFailed, Op: "serialize", Err: err}
	}
	return out, nil
}

// selfCheckCorrelation verifies Correlate over its entire domain: it must
// be self-inverse wherever it is nonzero, and it must map to zero exactly
// the values of the documented invalid set. Run once at embedder
// construction, matching the reference's own startup self-check.
func selfCheckCorrelation() error {
	for u := 0; u < tableSize; u++ {
		c := Correlate(uint16(u))
		if c == 0 {
			if s := int16(uint16(u)); (s < -2 || s > 2) && u != 0x7FFF {
				return &Error{
					Kind:          CorrelationViolation,
					Op:            "self-check",
					SelfCheckCode: 11,
				}
			}
			continue
		}
		if Correlate(c) != uint16(u) {
			return &Error{
				Kind:          CorrelationViolation,
				Op:            "self-check",
				SelfCheckCode: 10,
			}
		}
	}
	invalid := []uint16{0, 1, 2, 0xFFFE, 0xFFFF, 0x7FFF}
	for _, u := range invalid {
		if Correlate(u) != 0 {
			return &Error{
				Kind:          CorrelationViolation,
				Op:            "self-check",
				SelfCheckCode: 11,
			}
		}
	}
	return nil
}
