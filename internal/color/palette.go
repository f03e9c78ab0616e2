// Package color derives the section and subsection palette. Everything
// here is pure: randomness comes in through the caller's source, and
// variant generation is fully deterministic.
package color

import (
	"math/rand"
	"strings"

	"github.com/alexanderramin/trackdown/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the fixed set of section base colors.
var Palette = []string{
	"#7fbc7f", "#7f7fcd", "#d980a0", "#ff9d7f", "#ffff99",
	"#99ff99", "#99ffff", "#ff99ff", "#a3c1f0", "#ffe4c4",
}

// UnusedColor picks a random palette entry not used by any section.
// Once the palette is exhausted it falls back to a fully random pick,
// which may collide; the guarantee is aesthetic, not structural.
func UnusedColor(p *domain.Project, rng *rand.Rand) string {
	used := map[string]bool{}
	for _, c := range p.UsedColors() {
		used[strings.ToLower(c)] = true
	}
	var avail []string
	for _, c := range Palette {
		if !used[c] {
			avail = append(avail, c)
		}
	}
	if len(avail) > 0 {
		return avail[rng.Intn(len(avail))]
	}
	return Palette[rng.Intn(len(Palette))]
}

var (
	saturationOffsets = []float64{-15, 15}
	lightnessLevels   = []float64{35, 45, 55, 65, 75}
)

// Variants produces the ten HSL-derived shades of a base color used
// for subsections: two saturation offsets crossed with five lightness
// levels, hue untouched. An unparseable base yields the base itself.
func Variants(base string) []string {
	c, err := colorful.Hex(strings.TrimSpace(base))
	if err != nil {
		out := make([]string, len(saturationOffsets)*len(lightnessLevels))
		for i := range out {
			out[i] = base
		}
		return out
	}
	h, s, _ := c.Hsl()

	var variants []string
	for _, satOff := range saturationOffsets {
		for _, light := range lightnessLevels {
			sat := clamp(s*100+satOff, 30, 100)
			variants = append(variants, colorful.Hsl(h, sat/100, light/100).Hex())
		}
	}
	return variants
}

// SimilarColor returns the index-th variant of base, wrapping at ten.
// Identical inputs always yield the identical color, so subsections
// added in order get stable shades.
func SimilarColor(base string, index int) string {
	v := Variants(base)
	return v[((index%len(v))+len(v))%len(v)]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
