// Package app is the interactive toolpath viewer: it owns a view.Surface and
// maps keyboard input and host resizes onto it.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gcodeview/gcode"
	"gcodeview/hal"
	"gcodeview/internal/config"
	"gcodeview/quarkgl"
	"gcodeview/view"
)

// ErrQuit is returned by Step when the user asks to leave.
var ErrQuit = errors.New("app: quit")

// Viewer is the interactive viewer. All methods run on the host's frame
// thread.
type Viewer struct {
	h    hal.HAL
	cfg  config.Config
	log  hal.Logger
	surf *view.Surface

	name   string
	result gcode.ParseResult
	layers []float64
	cutoff float64
	loaded bool

	failShown bool
}

// New creates the viewer surface on the host framebuffer. ctx bounds the
// render loop.
func New(ctx context.Context, h hal.HAL, cfg config.Config) (*Viewer, error) {
	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("app: %w: display", hal.ErrNotImplemented)
	}
	opts, err := cfg.ViewOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, view.WithLogger(h.Logger()))
	surf, err := view.New(ctx, disp.Framebuffer(), h.Frames(), 0, 0, opts...)
	if err != nil {
		return nil, err
	}
	v := &Viewer{h: h, cfg: cfg, log: h.Logger(), surf: surf}
	v.updateStatus()
	return v, nil
}

// Surface returns the viewer's drawing surface.
func (v *Viewer) Surface() *view.Surface { return v.surf }

// Cutoff returns the current height cutoff.
func (v *Viewer) Cutoff() float64 { return v.cutoff }

// Load shows a parsed program. A NaN cutoff shows every layer.
func (v *Viewer) Load(name string, res gcode.ParseResult, cutoff float64) error {
	v.name = name
	v.result = res
	v.layers = gcode.Layers(res.Segments)
	v.loaded = true
	if math.IsNaN(cutoff) {
		cutoff = v.topLayer()
	}
	if v.log != nil {
		d, t := res.Counts()
		v.log.WriteLineString(fmt.Sprintf("app: loaded %s: %d deposition, %d travel, %d layers, max z %.3f",
			name, d, t, len(v.layers), res.MaxHeight))
	}
	return v.setCutoff(cutoff)
}

func (v *Viewer) topLayer() float64 {
	top := v.result.MaxHeight
	if n := len(v.layers); n > 0 && v.layers[n-1] > top {
		top = v.layers[n-1]
	}
	return top
}

func (v *Viewer) setCutoff(cutoff float64) error {
	v.cutoff = cutoff
	err := v.surf.Visualize(v.result.Segments, cutoff)
	v.updateStatus()
	return err
}

// Step handles pending input and host resizes. It is the per-tick app
// callback.
func (v *Viewer) Step() error {
	if v.surf.Disposed() {
		return ErrQuit
	}
	if w, h := v.h.Display().Viewport(); w > 0 && h > 0 {
		if err := v.surf.UpdateSize(w, h); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
			return err
		}
	}

	if in := v.h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			if err := v.drainKeys(kbd.Events()); err != nil {
				return err
			}
		}
	}

	if !v.surf.LoopAlive() && v.surf.LoopErr() != nil && !v.failShown {
		v.failShown = true
		showFailure(v.h.Display().Framebuffer(), v.surf.LoopErr())
	}
	return nil
}

func (v *Viewer) drainKeys(ch <-chan hal.KeyEvent) error {
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			if err := v.HandleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// HandleKey applies one key press.
func (v *Viewer) HandleKey(ev hal.KeyEvent) error {
	step := v.cfg.OrbitStep * math.Pi / 180
	switch ev.Code {
	case hal.KeyEscape:
		return ErrQuit
	case hal.KeyLeft:
		return v.surf.Orbit(-step, 0)
	case hal.KeyRight:
		return v.surf.Orbit(step, 0)
	case hal.KeyUp:
		return v.surf.Orbit(0, -step)
	case hal.KeyDown:
		return v.surf.Orbit(0, step)
	case hal.KeyPageUp:
		return v.stepLayer(1)
	case hal.KeyPageDown:
		return v.stepLayer(-1)
	case hal.KeyHome:
		return v.firstLayer()
	case hal.KeyEnd:
		return v.allLayers()
	}

	switch ev.Rune {
	case 'q':
		return ErrQuit
	case '+', '=':
		return v.surf.Zoom(-v.cfg.ZoomStep)
	case '-', '_':
		return v.surf.Zoom(v.cfg.ZoomStep)
	case ']':
		return v.stepLayer(1)
	case '[':
		return v.stepLayer(-1)
	case 'w':
		return v.surf.SetAxesVisible(!v.surf.AxesVisible())
	case 'p':
		return v.surf.SetBedVisible(!v.surf.BedVisible())
	case 'b':
		return v.surf.SetBedMode(nextBedMode(v.surf.BedMode()))
	}
	return nil
}

func nextBedMode(m quarkgl.RenderMode) quarkgl.RenderMode {
	switch m {
	case quarkgl.RenderSolidFlat:
		return quarkgl.RenderWireframe
	case quarkgl.RenderWireframe:
		return quarkgl.RenderSolidVertexColor
	default:
		return quarkgl.RenderSolidFlat
	}
}

func (v *Viewer) stepLayer(delta int) error {
	if !v.loaded || len(v.layers) == 0 {
		return nil
	}
	i := gcode.LayerIndex(v.layers, v.cutoff) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(v.layers) {
		i = len(v.layers) - 1
	}
	return v.setCutoff(v.layers[i])
}

func (v *Viewer) firstLayer() error {
	if !v.loaded || len(v.layers) == 0 {
		return nil
	}
	return v.setCutoff(v.layers[0])
}

func (v *Viewer) allLayers() error {
	if !v.loaded {
		return nil
	}
	return v.setCutoff(v.topLayer())
}

func (v *Viewer) updateStatus() {
	if !v.loaded {
		v.surf.SetStatus("loading...")
		return
	}
	d, t := v.surf.Segments()
	layer := gcode.LayerIndex(v.layers, v.cutoff) + 1
	v.surf.SetStatus(
		v.name,
		fmt.Sprintf("z <= %.2f  layer %d/%d", v.cutoff, layer, len(v.layers)),
		fmt.Sprintf("deposit %d  travel %d", d, t),
		"arrows orbit  +/- zoom  [ ] layer  w axes  p/b bed  q quit",
	)
}

// Close disposes the surface.
func (v *Viewer) Close() {
	v.surf.Dispose()
}
