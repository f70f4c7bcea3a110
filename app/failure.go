package app

import (
	"errors"
	"image/color"
	"strings"
	"unicode/utf8"

	"gcodeview/hal"
	"gcodeview/view"

	"tinygo.org/x/tinyfont"
)

const (
	failLineHeight = 7
	failGlyphWidth = 4
)

// showFailure replaces the frame with the error that stopped rendering,
// wrapped to the framebuffer width, followed by the panic stack if any.
func showFailure(fb hal.Framebuffer, err error) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || err == nil {
		return
	}
	fb.ClearRGB(0x40, 0, 0)

	lines := []string{
		"Rendering stopped:",
		err.Error(),
		"q/ESC exit",
	}
	var pe *view.PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(pe.Stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimLeft(line, "\t"))
		}
	}

	d := hal.NewFramebufferDisplay(fb)
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	cols := int16(fb.Width()-4) / failGlyphWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(failLineHeight)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y) > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, &tinyfont.TomThumb, 2, y, chunk, fg)
			y += failLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
