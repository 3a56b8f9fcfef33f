package raster

// wrap returns v mod n in [0, n). Go's % keeps the sign of v, and x - depth
// goes negative whenever depth exceeds x.
func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// PatternColumn returns the tile column sampled by output column x at the
// given depth.
func PatternColumn(x, depth, patternWidth int) int {
	return wrap(x-depth, patternWidth)
}
