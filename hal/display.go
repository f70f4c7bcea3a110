package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// FramebufferDisplay adapts an RGB565 framebuffer to drivers.Displayer so
// tinyfont can draw into it. Display is a no-op; callers present the
// framebuffer themselves.
type FramebufferDisplay struct {
	fb Framebuffer
}

var _ drivers.Displayer = (*FramebufferDisplay)(nil)

func NewFramebufferDisplay(fb Framebuffer) *FramebufferDisplay {
	return &FramebufferDisplay{fb: fb}
}

func (d *FramebufferDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FramebufferDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FramebufferDisplay) Display() error { return nil }
