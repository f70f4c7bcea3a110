package quarkgl

import (
	"errors"
	"fmt"
)

var (
	ErrDisposed    = errors.New("quarkgl: renderer disposed")
	ErrReleased    = errors.New("quarkgl: resource released")
	ErrVertexCount = errors.New("quarkgl: vertex list is not a whole number of segments")
)

// resource is the bookkeeping shared by retained buffers.
type resource struct {
	owner    *Renderer
	released bool
}

func (r *resource) release() {
	if r.released {
		return
	}
	r.released = true
	if r.owner != nil {
		r.owner.live--
	}
}

// Released reports whether the resource has been released.
func (r *resource) Released() bool { return r.released }

// Geometry is a retained line-segment vertex buffer. Vertices pair up: 2i and
// 2i+1 form one independent segment.
type Geometry struct {
	resource

	pos    []Vec3
	colors []Color
}

// NewLineGeometry uploads flat xyz triples as line segments.
func (r *Renderer) NewLineGeometry(flat []float32) (*Geometry, error) {
	return r.NewLineGeometryColored(flat, nil)
}

// NewLineGeometryColored is NewLineGeometry with one color per vertex.
// Vertex colors take precedence over the material color.
func (r *Renderer) NewLineGeometryColored(flat []float32, colors []Color) (*Geometry, error) {
	if len(flat)%6 != 0 {
		return nil, fmt.Errorf("new geometry: %d floats: %w", len(flat), ErrVertexCount)
	}
	n := len(flat) / 3
	if colors != nil && len(colors) != n {
		return nil, fmt.Errorf("new geometry: %d colors for %d vertices: %w", len(colors), n, ErrVertexCount)
	}
	if err := r.acquire(); err != nil {
		return nil, err
	}
	g := &Geometry{resource: resource{owner: r}, pos: make([]Vec3, n)}
	for i := range g.pos {
		g.pos[i] = V3(flat[i*3], flat[i*3+1], flat[i*3+2])
	}
	if colors != nil {
		g.colors = append([]Color(nil), colors...)
	}
	return g, nil
}

// Vertices returns the number of vertices held by the buffer.
func (g *Geometry) Vertices() int { return len(g.pos) }

// Release frees the buffer. It is safe to call more than once.
func (g *Geometry) Release() {
	g.release()
	g.pos = nil
	g.colors = nil
}

// LineMaterial is a retained unlit line material.
type LineMaterial struct {
	resource

	Color Color
}

func (r *Renderer) NewLineMaterial(c Color) (*LineMaterial, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	return &LineMaterial{resource: resource{owner: r}, Color: c}, nil
}

// Release frees the material. It is safe to call more than once.
func (m *LineMaterial) Release() { m.release() }

// LineSegments pairs a geometry with its material as one scene object.
type LineSegments struct {
	Enabled bool

	Geometry *Geometry
	Material *LineMaterial
}

// NewLineSegments builds an enabled line object.
func NewLineSegments(g *Geometry, m *LineMaterial) *LineSegments {
	return &LineSegments{Enabled: true, Geometry: g, Material: m}
}

// Release frees both the geometry and the material.
func (l *LineSegments) Release() {
	if l == nil {
		return
	}
	if l.Geometry != nil {
		l.Geometry.Release()
	}
	if l.Material != nil {
		l.Material.Release()
	}
}

func (l *LineSegments) usable() error {
	if l.Geometry == nil || l.Material == nil || l.Geometry.released || l.Material.released {
		return ErrReleased
	}
	return nil
}

// NewAxesHelper builds the coordinate-axis indicator: X red, Y green, Z blue,
// each size units long from the origin.
func NewAxesHelper(r *Renderer, size Scalar) (*LineSegments, error) {
	flat := []float32{
		0, 0, 0, size, 0, 0,
		0, 0, 0, 0, size, 0,
		0, 0, 0, 0, 0, size,
	}
	red, green, blue := Hex(0xFF0000), Hex(0x00FF00), Hex(0x0000FF)
	colors := []Color{red, red, green, green, blue, blue}
	g, err := r.NewLineGeometryColored(flat, colors)
	if err != nil {
		return nil, err
	}
	m, err := r.NewLineMaterial(RGB(0xFF, 0xFF, 0xFF))
	if err != nil {
		g.Release()
		return nil, err
	}
	return NewLineSegments(g, m), nil
}
