package hal

import "testing"

func TestFramebufferClearAndSnapshot(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if fb.StrideBytes() != 8 || len(fb.Buffer()) != 24 {
		t.Fatalf("stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	fb.ClearRGB(0xFF, 0, 0)
	dst := make([]byte, 24)
	if n := fb.Snapshot(dst); n != 24 {
		t.Fatalf("Snapshot copied %d bytes, want 24", n)
	}
	if dst[0] != 0x00 || dst[1] != 0xF8 {
		t.Fatalf("pixel bytes = %#x %#x, want 0x00 0xf8", dst[0], dst[1])
	}

	img := fb.RGBA()
	c := img.RGBAAt(3, 2)
	if c.R != 0xFF || c.G != 0 || c.B != 0 || c.A != 0xFF {
		t.Fatalf("RGBA pixel = %+v", c)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	var r Resizer = fb
	if err := r.Resize(5, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if fb.Width() != 5 || fb.Height() != 4 || len(fb.Buffer()) != 5*4*2 {
		t.Fatalf("after resize: %dx%d len=%d", fb.Width(), fb.Height(), len(fb.Buffer()))
	}
	if err := r.Resize(0, 4); err == nil {
		t.Fatalf("Resize(0,4) succeeded")
	}
	if fb.Width() != 5 {
		t.Fatalf("failed resize changed width to %d", fb.Width())
	}
}

func TestFramebufferPresents(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	for i := 0; i < 3; i++ {
		if err := fb.Present(); err != nil {
			t.Fatalf("Present: %v", err)
		}
	}
	if fb.Presents() != 3 {
		t.Fatalf("Presents()=%d, want 3", fb.Presents())
	}
}
