package view

import (
	"image/color"

	"gcodeview/hal"

	"tinygo.org/x/tinyfont"
)

var hudFont = &tinyfont.TomThumb

const (
	hudLineHeight = 7
	hudMargin     = 4
)

var (
	hudText   = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudShadow = color.RGBA{A: 0xFF}
)

// drawHUD writes lines top-left with a one pixel drop shadow.
func drawHUD(fb hal.Framebuffer, lines []string) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || len(lines) == 0 {
		return
	}
	d := hal.NewFramebufferDisplay(fb)
	y := int16(hudMargin + hudLineHeight)
	for _, s := range lines {
		if int(y) > fb.Height() {
			return
		}
		tinyfont.WriteLine(d, hudFont, hudMargin+1, y+1, s, hudShadow)
		tinyfont.WriteLine(d, hudFont, hudMargin, y, s, hudText)
		y += hudLineHeight
	}
}
