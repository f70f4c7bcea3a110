package hal

import (
	"image/color"
	"testing"
)

func TestFramebufferDisplaySetPixel(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	d := NewFramebufferDisplay(fb)
	if w, h := d.Size(); w != 4 || h != 4 {
		t.Fatalf("Size()=%d,%d", w, h)
	}
	d.SetPixel(1, 2, color.RGBA{R: 0xFF, A: 0xFF})
	d.SetPixel(-1, 0, color.RGBA{G: 0xFF, A: 0xFF})
	d.SetPixel(4, 4, color.RGBA{G: 0xFF, A: 0xFF})

	img := fb.RGBA()
	if c := img.RGBAAt(1, 2); c.R != 0xFF || c.G != 0 || c.B != 0 {
		t.Fatalf("pixel=%+v", c)
	}
	lit := 0
	for _, b := range fb.Buffer() {
		if b != 0 {
			lit++
		}
	}
	if lit != 1 {
		t.Fatalf("%d non-zero bytes, want 1", lit)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
}
