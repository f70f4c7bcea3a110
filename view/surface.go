package view

import (
	"context"
	"errors"
	"fmt"

	"gcodeview/gcode"
	"gcodeview/hal"
	"gcodeview/quarkgl"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrDisposed  = errors.New("view: surface disposed")
	errNoSurface = errors.New("view: no framebuffer")
)

// Fallback size when neither the caller nor the framebuffer provides one.
const (
	fallbackWidth  = 800
	fallbackHeight = 600
)

const defaultAxesSize = 100

var initialCamera = quarkgl.V3(0, -150, 200)

// Palette holds the surface colors.
type Palette struct {
	Clear   quarkgl.Color
	Deposit quarkgl.Color
	Travel  quarkgl.Color
	Bed     quarkgl.Color
}

// DefaultPalette returns the stock colors: dark background, red deposition,
// light blue travel.
func DefaultPalette() Palette {
	return Palette{
		Clear:   quarkgl.Hex(0x111111),
		Deposit: quarkgl.Hex(0xFF0000),
		Travel:  quarkgl.Hex(0x00AAFF),
		Bed:     quarkgl.Hex(0x2A2A2A),
	}
}

type options struct {
	log     hal.Logger
	palette Palette
	axes    float64
	bedW    float64
	bedD    float64
	bedX    float64
	bedY    float64
	bedMode quarkgl.RenderMode
	hud     bool
}

// Option configures a Surface.
type Option func(*options)

func WithLogger(l hal.Logger) Option { return func(o *options) { o.log = l } }

func WithPalette(p Palette) Option { return func(o *options) { o.palette = p } }

// WithAxes sets the length of the coordinate-axis indicator; 0 hides it.
func WithAxes(size float64) Option { return func(o *options) { o.axes = size } }

// WithBed adds a flat build plate of w×d units at z=0 with its corner at the
// origin.
func WithBed(w, d float64) Option {
	return func(o *options) { o.bedW, o.bedD = w, d }
}

// WithBedOrigin moves the build plate corner to (x, y). Printers homing to
// the plate centre use negative half sizes.
func WithBedOrigin(x, y float64) Option {
	return func(o *options) { o.bedX, o.bedY = x, y }
}

// WithBedMode selects how the build plate is filled.
func WithBedMode(m quarkgl.RenderMode) Option { return func(o *options) { o.bedMode = m } }

// WithHUD enables the text overlay set by SetStatus.
func WithHUD(on bool) Option { return func(o *options) { o.hud = on } }

// Surface renders toolpaths into a framebuffer.
type Surface struct {
	fb    hal.Framebuffer
	sched hal.FrameScheduler
	log   hal.Logger
	opts  options

	r        *quarkgl.Renderer
	scene    *quarkgl.Scene
	controls *quarkgl.OrbitController
	axes     *quarkgl.LineSegments
	bed      int

	deposit lineChannel
	travel  lineChannel

	loop *RenderLoop

	fitted    Bounds
	hasFitted bool

	width, height int
	status        []string
	disposed      bool
}

// New binds a surface to fb and starts its render loop on sched. A zero
// width or height takes the framebuffer's; if that is zero too the surface
// is 800×600. The loop stops when ctx is cancelled.
func New(ctx context.Context, fb hal.Framebuffer, sched hal.FrameScheduler, width, height int, opts ...Option) (*Surface, error) {
	if fb == nil {
		return nil, errNoSurface
	}
	if sched == nil {
		return nil, errNoScheduler
	}
	o := options{palette: DefaultPalette(), axes: defaultAxesSize, bedMode: quarkgl.RenderSolidFlat}
	for _, opt := range opts {
		opt(&o)
	}
	if !validBedMode(o.bedMode) {
		return nil, fmt.Errorf("view: bed mode %d: %w", o.bedMode, hal.ErrNotImplemented)
	}

	s := &Surface{
		fb:     fb,
		sched:  sched,
		log:    o.log,
		opts:   o,
		width:  fb.Width(),
		height: fb.Height(),
		bed:    -1,
	}

	w, h := width, height
	if w == 0 {
		w = fb.Width()
	}
	if h == 0 {
		h = fb.Height()
	}
	if w == 0 || h == 0 {
		w, h = fallbackWidth, fallbackHeight
	}
	if err := s.resizeFramebuffer(w, h); err != nil {
		return nil, err
	}

	s.r = quarkgl.NewRenderer(w, h, true)
	s.r.SetRenderMode(o.bedMode)
	s.r.ClearColor = o.palette.Clear

	s.scene = quarkgl.CreateScene(1)
	cam := &s.scene.Camera
	cam.FOVYRad = quarkgl.DegToRad(DefaultFOV)
	cam.Near = 0.1
	cam.Far = 1000
	cam.Position = initialCamera
	cam.Target = quarkgl.V3(0, 0, 0)
	cam.Up = quarkgl.V3(0, 1, 0)
	cam.SetAspect(w, h)

	s.scene.Light = quarkgl.Light{
		Mode:      quarkgl.LightAmbientDirectional,
		Ambient:   0.6,
		Dir:       quarkgl.V3(0, 0, -1),
		DirAmount: 0.8,
	}

	if o.axes > 0 {
		axes, err := quarkgl.NewAxesHelper(s.r, quarkgl.Scalar(o.axes))
		if err != nil {
			return nil, fmt.Errorf("view: axes: %w", err)
		}
		s.axes = axes
		s.scene.AddLines(axes)
	}
	if o.bedW > 0 && o.bedD > 0 {
		bed := quarkgl.NewPlaneMesh(quarkgl.Scalar(o.bedW), quarkgl.Scalar(o.bedD), 0)
		bed.Material.BaseColor = o.palette.Bed
		// Shaded mode darkens the plate towards the far corner.
		for i, shade := range []quarkgl.Scalar{1, 0.8, 0.6, 0.8} {
			bed.Vertices[i].Color = o.palette.Bed.MulScalar(shade)
		}
		s.bed = s.scene.AddMesh(bed)
		s.scene.UpdateMeshTransform(s.bed, quarkgl.Mat4Translate(quarkgl.V3(quarkgl.Scalar(o.bedX), quarkgl.Scalar(o.bedY), 0)))
	}

	s.controls = quarkgl.NewOrbitController(cam)
	s.loop = StartLoop(ctx, sched, s.log, s.paint)
	return s, nil
}

func (s *Surface) paint() error {
	s.controls.Update(&s.scene.Camera)

	t := &quarkgl.RGB565Target{
		Buf:    s.fb.Buffer(),
		Stride: s.fb.StrideBytes(),
		W:      s.fb.Width(),
		H:      s.fb.Height(),
	}
	if err := s.r.Render(t, s.scene); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if s.opts.hud {
		drawHUD(s.fb, s.status)
	}
	if err := s.fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// UpdateSize resizes the framebuffer, depth buffer and camera projection. A
// zero argument keeps the current value; the current size is a no-op.
func (s *Surface) UpdateSize(width, height int) error {
	if s.disposed {
		return ErrDisposed
	}
	if width == 0 {
		width = s.width
	}
	if height == 0 {
		height = s.height
	}
	if width == s.width && height == s.height {
		return nil
	}
	if err := s.resizeFramebuffer(width, height); err != nil {
		return err
	}
	s.r.SetSize(width, height)
	s.scene.Camera.SetAspect(width, height)
	return nil
}

func (s *Surface) resizeFramebuffer(w, h int) error {
	if w == s.fb.Width() && h == s.fb.Height() {
		s.width, s.height = w, h
		return nil
	}
	rs, ok := s.fb.(hal.Resizer)
	if !ok {
		return fmt.Errorf("view: resize to %dx%d: %w", w, h, hal.ErrNotImplemented)
	}
	if err := rs.Resize(w, h); err != nil {
		return fmt.Errorf("view: resize to %dx%d: %w", w, h, err)
	}
	s.width, s.height = w, h
	return nil
}

// Visualize replaces the drawn toolpath with the segments lying wholly at or
// below cutoff and frames the camera on them. The camera is left alone when
// the drawn extent matches the last fit, or when there is nothing to draw; in
// the latter case both channels end up empty.
func (s *Surface) Visualize(segments []gcode.Segment, cutoff float64) error {
	if s.disposed {
		return ErrDisposed
	}
	s.deposit.release(s.scene)
	s.travel.release(s.scene)

	b := gcode.BatchSegments(segments, cutoff)
	if err := s.deposit.fill(s.r, s.scene, b.Deposit, s.opts.palette.Deposit); err != nil {
		return fmt.Errorf("view: deposition: %w", err)
	}
	if err := s.travel.fill(s.r, s.scene, b.Travel, s.opts.palette.Travel); err != nil {
		s.deposit.release(s.scene)
		return fmt.Errorf("view: travel: %w", err)
	}
	if b.Empty() {
		return nil
	}

	var bounds Bounds
	bounds.ExtendFlat(b.Deposit)
	bounds.ExtendFlat(b.Travel)
	if s.hasFitted && bounds == s.fitted {
		return nil
	}
	pose, ok := FitBounds(bounds, float64(s.scene.Camera.FOVYRad))
	if !ok {
		return nil
	}
	cam := &s.scene.Camera
	cam.Position = toVec3(pose.Position)
	cam.Target = toVec3(pose.Target)
	s.controls.SetTarget(cam.Target, cam)
	s.fitted, s.hasFitted = bounds, true
	return nil
}

// Dispose stops the render loop and releases every buffer the surface holds.
// Later calls are no-ops.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.loop.Stop()
	s.deposit.release(s.scene)
	s.travel.release(s.scene)
	s.controls.Dispose()
	s.scene.Clear()
	s.axes = nil
	s.r.Dispose()
}

// Disposed reports whether Dispose has been called.
func (s *Surface) Disposed() bool { return s.disposed }

// Orbit queues a camera rotation around the orbit target, in radians.
func (s *Surface) Orbit(yaw, pitch float64) error {
	if s.disposed {
		return ErrDisposed
	}
	s.controls.Rotate(quarkgl.Scalar(yaw), quarkgl.Scalar(pitch))
	return nil
}

// Zoom queues a change of orbit distance by factor of the current distance;
// negative values move closer.
func (s *Surface) Zoom(factor float64) error {
	if s.disposed {
		return ErrDisposed
	}
	s.controls.Zoom(s.controls.Radius * quarkgl.Scalar(factor))
	return nil
}

// SetAxesVisible shows or hides the coordinate-axis indicator.
func (s *Surface) SetAxesVisible(on bool) error {
	if s.disposed {
		return ErrDisposed
	}
	if s.axes != nil {
		s.axes.Enabled = on
	}
	return nil
}

// AxesVisible reports whether the axis indicator is drawn.
func (s *Surface) AxesVisible() bool { return s.axes != nil && s.axes.Enabled }

// SetBedMode changes how the build plate is filled.
func (s *Surface) SetBedMode(m quarkgl.RenderMode) error {
	if s.disposed {
		return ErrDisposed
	}
	if !validBedMode(m) {
		return fmt.Errorf("view: bed mode %d: %w", m, hal.ErrNotImplemented)
	}
	s.r.SetRenderMode(m)
	return nil
}

// BedMode returns the build plate fill mode.
func (s *Surface) BedMode() quarkgl.RenderMode { return s.r.Mode }

// SetBedVisible shows or hides the build plate, if there is one.
func (s *Surface) SetBedVisible(on bool) error {
	if s.disposed {
		return ErrDisposed
	}
	s.scene.SetMeshEnabled(s.bed, on)
	return nil
}

// BedVisible reports whether the build plate is drawn.
func (s *Surface) BedVisible() bool { return s.scene.MeshEnabled(s.bed) }

func validBedMode(m quarkgl.RenderMode) bool {
	switch m {
	case quarkgl.RenderWireframe, quarkgl.RenderSolidFlat, quarkgl.RenderSolidVertexColor:
		return true
	}
	return false
}

// SetStatus replaces the HUD text lines.
func (s *Surface) SetStatus(lines ...string) {
	s.status = append(s.status[:0], lines...)
}

// Camera returns a copy of the current camera.
func (s *Surface) Camera() quarkgl.Camera { return s.scene.Camera }

// Size returns the current surface size.
func (s *Surface) Size() (w, h int) { return s.width, s.height }

// Segments returns the number of deposition and travel segments drawn.
func (s *Surface) Segments() (deposit, travel int) {
	return s.deposit.segments(), s.travel.segments()
}

// LiveResources returns the number of retained buffers not yet released.
func (s *Surface) LiveResources() int { return s.r.LiveResources() }

// LoopAlive reports whether the render loop is still running.
func (s *Surface) LoopAlive() bool { return s.loop.Alive() }

// LoopErr returns the error that stopped the render loop, if any.
func (s *Surface) LoopErr() error { return s.loop.Err() }

// Frames returns the number of frames painted.
func (s *Surface) Frames() uint64 { return s.loop.Frames() }

func toVec3(v mgl64.Vec3) quarkgl.Vec3 {
	return quarkgl.V3(quarkgl.Scalar(v.X()), quarkgl.Scalar(v.Y()), quarkgl.Scalar(v.Z()))
}
