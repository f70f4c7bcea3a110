package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Default framebuffer size for hosts that do not report a viewport.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Scale is the number of window pixels per framebuffer pixel.
	Scale int
}

type hostHAL struct {
	logger *hostLogger
	fb     *MemFramebuffer
	kbd    *hostKeyboard
	frames *FrameQueue

	mu    sync.Mutex
	viewW int
	viewH int
}

// New returns a host HAL implementation with a width×height framebuffer.
// Non-positive sizes fall back to DefaultWidth×DefaultHeight.
func New(width, height int) HAL {
	return newHost(width, height, os.Stdout)
}

func newHost(width, height int, logw io.Writer) *hostHAL {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &hostHAL{
		logger: &hostLogger{w: logw},
		fb:     NewFramebuffer(width, height),
		kbd:    newHostKeyboard(),
		frames: NewFrameQueue(),
	}
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) Display() Display       { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input           { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Frames() FrameScheduler { return h.frames }

func (h *hostHAL) setViewport(w, ht int) {
	h.mu.Lock()
	h.viewW, h.viewH = w, ht
	h.mu.Unlock()
}

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }

func (d hostDisplay) Viewport() (int, int) {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	return d.h.viewW, d.h.viewH
}

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// NewLogger returns a Logger writing lines to w.
func NewLogger(w io.Writer) Logger { return &hostLogger{w: w} }
