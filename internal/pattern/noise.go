package pattern

// Noise fills a w×h tile with independent uniform colours. Adjacent cells
// must stay uncorrelated or the viewer fuses false matches.
func Noise(rng Source, w, h int) *Tile {
	t := NewTile(w, h)
	for i := range t.Pix {
		t.Pix[i] = RGB{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	return t
}
