package pdf

import "regexp"

// RGB is a color triple in 0..255 components.
type RGB struct {
	R, G, B int
}

// Palette holds the colors a layout draws with. Primary/Secondary come from
// franchise branding; the rest are fixed per layout.
type Palette struct {
	Primary   RGB
	Secondary RGB
	Accent    RGB
	Text      RGB
	LightText RGB
	Border    RGB
	Success   RGB
	Warning   RGB
}

// RenderConfig is the page geometry and palette for one generation call.
// Pure value data; nothing here draws.
type RenderConfig struct {
	PageWidth  float64 // mm
	PageHeight float64
	Margin     float64
	LineHeight float64
	Colors     Palette
}

// ContentWidth is the horizontal space between the margins.
func (c RenderConfig) ContentWidth() float64 {
	return c.PageWidth - 2*c.Margin
}

// DefaultConfig returns A4 geometry with the stock palette.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     15,
		LineHeight: 4,
		Colors: Palette{
			Primary:   RGB{27, 94, 32},    // dark green
			Secondary: RGB{76, 175, 80},   // green
			Accent:    RGB{212, 175, 55},  // gold
			Text:      RGB{33, 33, 33},
			LightText: RGB{100, 100, 100},
			Border:    RGB{200, 200, 200},
			Success:   RGB{34, 197, 94},
			Warning:   RGB{239, 68, 68},
		},
	}
}

var hexColorRe = regexp.MustCompile(`^#?([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

// HexToRGB parses a #rrggbb color; malformed input yields the default dark
// green, matching the branding fallback.
func HexToRGB(hex string) RGB {
	m := hexColorRe.FindStringSubmatch(hex)
	if m == nil {
		return RGB{27, 94, 32}
	}
	return RGB{hexByte(m[1]), hexByte(m[2]), hexByte(m[3])}
}

func hexByte(s string) int {
	v := 0
	for i := 0; i < 2; i++ {
		v <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		}
	}
	return v
}
