package exporter

import (
	"fmt"
	"math"

	"staffgap/pkg/contracts/domain"
)

// Heat-map palette: shortages red, surpluses navy.
const (
	ColorShortage = "#B1483F"
	ColorBalanced = "#FFFFFF"
	ColorSurplus  = "#182735"

	textDark  = "#000000"
	textLight = "#FFFFFF"

	// BalancedBand bounds gaps that are always drawn on white.
	BalancedBand = 0.9

	colormapLevels = 256
)

type rgb struct{ r, g, b float64 }

var (
	rgbShortage = rgb{0xB1 / 255.0, 0x48 / 255.0, 0x3F / 255.0}
	rgbBalanced = rgb{1, 1, 1}
	rgbSurplus  = rgb{0x18 / 255.0, 0x27 / 255.0, 0x35 / 255.0}
)

// ColorScale maps gap values onto the diverging palette, centred at zero.
type ColorScale struct {
	Min float64
	Max float64
}

// NewColorScale derives the scale from the matrix values. Both sides of
// zero are always present: a matrix without negatives gets Min -1 and one
// without positives gets Max 1.
func NewColorScale(m domain.GapMatrix) ColorScale {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range m.Cells {
		for _, c := range row {
			if c == nil || math.IsNaN(*c) || math.IsInf(*c, 0) {
				continue
			}
			lo = min(lo, *c)
			hi = max(hi, *c)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = -5, 5
	}
	if lo >= 0 {
		lo = -1
	}
	if hi <= 0 {
		hi = 1
	}
	return ColorScale{Min: lo, Max: hi}
}

// norm places v on [0,1] with zero at 0.5, each side scaled separately.
func (s ColorScale) norm(v float64) float64 {
	var t float64
	if v < 0 {
		t = 0.5 * (v - s.Min) / (0 - s.Min)
	} else {
		t = 0.5 + 0.5*v/s.Max
	}
	return math.Max(0, math.Min(1, t))
}

func (s ColorScale) color(v float64) rgb {
	t := s.norm(v)
	// quantise like a 256-entry lookup table
	t = math.Floor(t*(colormapLevels-1)+0.5) / (colormapLevels - 1)
	if t <= 0.5 {
		return lerp(rgbShortage, rgbBalanced, t/0.5)
	}
	return lerp(rgbBalanced, rgbSurplus, (t-0.5)/0.5)
}

// Fill returns the cell background for v as #RRGGBB.
func (s ColorScale) Fill(v float64) string {
	if balanced(v) {
		return ColorBalanced
	}
	return s.color(v).hex()
}

// TextColor returns a label colour that contrasts with Fill(v).
func (s ColorScale) TextColor(v float64) string {
	if balanced(v) {
		return textDark
	}
	if luminance(s.color(v)) < 0.5 {
		return textLight
	}
	return textDark
}

func balanced(v float64) bool {
	return v >= -BalancedBand && v <= BalancedBand
}

func lerp(a, b rgb, t float64) rgb {
	return rgb{
		r: a.r + (b.r-a.r)*t,
		g: a.g + (b.g-a.g)*t,
		b: a.b + (b.b-a.b)*t,
	}
}

func luminance(c rgb) float64 {
	return 0.2126*c.r + 0.7152*c.g + 0.0722*c.b
}

func (c rgb) hex() string {
	channel := func(f float64) int { return int(math.Round(f * 255)) }
	return fmt.Sprintf("#%02X%02X%02X", channel(c.r), channel(c.g), channel(c.b))
}
