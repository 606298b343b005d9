package sortreel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA is a straight-alpha color with components in [0, 1]. It implements
// color.Color, so palette entries can be handed straight to a surface.
type RGBA struct {
	R, G, B, A float64
}

// RGBA returns alpha-premultiplied components in [0, 0xffff].
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(to8(c.A)) * 0x101
	r = uint32(to8(c.R*c.A)) * 0x101
	g = uint32(to8(c.G*c.A)) * 0x101
	b = uint32(to8(c.B*c.A)) * 0x101
	return r, g, b, a
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// String formats the color as #rrggbb, with an alpha byte appended when the
// color is not opaque.
func (c RGBA) String() string {
	n := c.NRGBA()
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". The leading
// '#' is optional.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for i := range len(h) {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		h = b.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("sortreel: color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("sortreel: color %q: %w", s, err)
	}
	return RGBA{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func mustHex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func to8(x float64) uint8 {
	switch v := x*255 + 0.5; {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Palette used by the algorithm visualizations, named after the web colors.
var (
	Black      = mustHex("#000000")
	White      = mustHex("#ffffff")
	WhiteSmoke = mustHex("#f5f5f5")
	Red        = mustHex("#ff0000")
	Blue       = mustHex("#0000ff")
	Aqua       = mustHex("#00ffff")
	Cyan       = Aqua
	DarkCyan   = mustHex("#008b8b")
	Fuchsia    = mustHex("#ff00ff")
	Orange     = mustHex("#ffa500")
	LightBlue  = mustHex("#add8e6")
	LightGreen = mustHex("#90ee90")
	Green      = mustHex("#008000")
	Brown      = mustHex("#a52a2a")
	Gold       = mustHex("#ffd700")
	OldLace    = mustHex("#fdf5e6")
	Gainsboro  = mustHex("#dcdcdc")
	Plum       = mustHex("#dda0dd")
	DimGray    = mustHex("#696969")
)
