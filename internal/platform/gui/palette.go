package gui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/vovakirdan/sliceit/internal/core"
)

var (
	colorBackground = color.RGBA{R: 18, G: 18, B: 28, A: 255}
	colorHUD        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorOverlay    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	colorBeam       = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	colorTrail      = color.RGBA{R: 200, G: 240, B: 255, A: 255}
	colorHealthBack = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	colorHealth     = color.RGBA{R: 220, G: 30, B: 30, A: 255}
)

// palette maps terminal colors to RGB.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {R: 220, G: 220, B: 220, A: 255},
	core.ColorRed:           {R: 205, G: 49, B: 49, A: 255},
	core.ColorGreen:         {R: 13, G: 188, B: 121, A: 255},
	core.ColorYellow:        {R: 229, G: 229, B: 16, A: 255},
	core.ColorBlue:          {R: 65, G: 105, B: 225, A: 255},
	core.ColorMagenta:       {R: 188, G: 63, B: 188, A: 255},
	core.ColorCyan:          {R: 17, G: 168, B: 205, A: 255},
	core.ColorWhite:         {R: 229, G: 229, B: 229, A: 255},
	core.ColorBrightRed:     {R: 241, G: 76, B: 76, A: 255},
	core.ColorBrightGreen:   {R: 35, G: 209, B: 139, A: 255},
	core.ColorBrightYellow:  {R: 255, G: 215, B: 0, A: 255},
	core.ColorBrightBlue:    {R: 59, G: 142, B: 234, A: 255},
	core.ColorBrightMagenta: {R: 214, G: 112, B: 214, A: 255},
	core.ColorBrightCyan:    {R: 41, G: 184, B: 219, A: 255},
	core.ColorBrightWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:        {R: 255, G: 136, B: 0, A: 255},
	core.ColorGray:          {R: 128, G: 128, B: 128, A: 255},
	core.ColorGold:          {R: 212, G: 175, B: 55, A: 255},
	core.ColorBrown:         {R: 139, G: 69, B: 19, A: 255},
	core.ColorDarkGray:      {R: 68, G: 68, B: 68, A: 255},
}

// rgba returns the RGB value of a terminal color.
func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// fade scales a color by alpha in [0, 1]. Ebiten expects premultiplied
// colors, so every channel is scaled.
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// parseHex parses "#RRGGBB" or "RRGGBB".
func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
