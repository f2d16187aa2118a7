package conceal

// Correlate maps a coefficient, reinterpreted as an unsigned 16-bit word,
// to the partner coefficient it is histogram-paired with. It is an
// involution on every value for which it does not return 0: Correlate is
// its own inverse, Correlate(Correlate(u)) == u, for any u where
// Correlate(u) != 0.
//
// coef values 0, 1, 2, 0xfffe, 0xffff (the coefficients -2..2) and the
// sentinel 0x7fff have no partner and map to 0 (invalid/self-paired). The
// other values above 0x7fff pair by flipping their low bit. Values at or below 0x7fff (excluding the invalid set) pair the same
// way after shifting into a 1-based frame, so that e.g. 3 and 4 pair with
// each other and 5 and 6 pair with each other.
func Correlate(coef uint16) uint16 {
	switch {
	case coef <= 2 || coef >= 0xFFFE || coef == 0x7FFF:
		return 0
	case coef > 0x7FFF:
		return coef ^ 1
	default:
		return ((coef - 1) ^ 1) + 1
	}
}
