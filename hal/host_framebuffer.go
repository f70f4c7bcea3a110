package hal

import (
	"fmt"
	"image"
	"sync"
)

// MemFramebuffer is an in-memory RGB565 framebuffer. Present only counts
// frames; hosts copy the pixels out with Snapshot.
type MemFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	presents uint64
}

// NewFramebuffer allocates a width×height RGB565 framebuffer.
func NewFramebuffer(width, height int) *MemFramebuffer {
	f := &MemFramebuffer{}
	f.alloc(width, height)
	return f
}

func (f *MemFramebuffer) alloc(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width = width
	f.height = height
	f.stride = width * 2
	f.buf = make([]byte, f.stride*height)
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemFramebuffer) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

// Presents returns how many frames have been presented.
func (f *MemFramebuffer) Presents() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

// Resize reallocates the pixel store. The contents are cleared.
func (f *MemFramebuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.width && height == f.height {
		return nil
	}
	f.alloc(width, height)
	return nil
}

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// Snapshot copies the raw pixels into dst and returns the byte count copied.
func (f *MemFramebuffer) Snapshot(dst []byte) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copy(dst, f.buf)
}

// RGBA returns a copy of the framebuffer as an opaque RGBA image.
func (f *MemFramebuffer) RGBA() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	expandRGB565(img.Pix, f.buf)
	return img
}
