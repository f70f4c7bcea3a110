//go:build cgo

package hal

import (
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a resizable desktop window that displays the framebuffer
// and forwards keyboard input. It blocks until the window closes or the app
// step fails.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	step := newApp(h)

	g := &hostGame{h: h, step: step, scale: cfg.Scale}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(h.fb.Width()*cfg.Scale, h.fb.Height()*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	scale   int
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	g.h.frames.Flush()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Width(), fb.Height()
	if w == 0 || h == 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, w*h*2)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	n := fb.Snapshot(g.scratch)
	expandRGB565(g.img.Pix, g.scratch[:n])

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.h.setViewport(w, h)
	return w, h
}
