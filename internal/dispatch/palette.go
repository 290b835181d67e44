package dispatch

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette picks the fill and border colors of a category the dataset does
// not assign colors to.
type Palette interface {
	Colors(category string) (fill, border string)
}

// NewPalette returns the palette for a SCATTER_COLOR_MODE value.
// Unknown modes fall back to hashed.
func NewPalette(mode string) Palette {
	if mode == "random" {
		return RandomPalette{}
	}
	return HashedPalette{}
}

// HashedPalette derives a stable color from the category name, so the same
// category keeps its color across renders and theme switches.
type HashedPalette struct{}

func (HashedPalette) Colors(category string) (string, string) {
	h := fnv.New32a()
	h.Write([]byte(category))
	hue := float64(h.Sum32() % 360)
	c := colorful.Hcl(hue, 0.55, 0.6).Clamped()
	r, g, b := c.RGB255()
	return rgba(r, g, b, 0.6), rgba(r, g, b, 1)
}

// RandomPalette draws new colors on every call. Fill and border are drawn
// independently.
type RandomPalette struct{}

func (RandomPalette) Colors(string) (string, string) {
	return rgba(uint8(rand.IntN(255)), uint8(rand.IntN(255)), uint8(rand.IntN(255)), 0.6),
		rgba(uint8(rand.IntN(255)), uint8(rand.IntN(255)), uint8(rand.IntN(255)), 1)
}

func rgba(r, g, b uint8, a float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, a)
}
