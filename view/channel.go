package view

import (
	"errors"
	"fmt"

	"gcodeview/quarkgl"
)

var errChannelOccupied = errors.New("view: line channel already holds buffers")

// lineChannel is one optional set of retained line buffers. It is either
// absent (obj == nil) or present with a live geometry and material attached
// to the scene.
type lineChannel struct {
	obj *quarkgl.LineSegments
}

func (c *lineChannel) present() bool { return c.obj != nil }

// segments returns the number of segments held, 0 when absent.
func (c *lineChannel) segments() int {
	if c.obj == nil || c.obj.Geometry == nil {
		return 0
	}
	return c.obj.Geometry.Vertices() / 2
}

// fill uploads flat as a new line object and attaches it to s. An empty list
// leaves the channel absent. Filling a present channel fails; release it
// first.
func (c *lineChannel) fill(r *quarkgl.Renderer, s *quarkgl.Scene, flat []float32, col quarkgl.Color) error {
	if c.present() {
		return errChannelOccupied
	}
	if len(flat) == 0 {
		return nil
	}
	g, err := r.NewLineGeometry(flat)
	if err != nil {
		return fmt.Errorf("fill channel: %w", err)
	}
	m, err := r.NewLineMaterial(col)
	if err != nil {
		g.Release()
		return fmt.Errorf("fill channel: %w", err)
	}
	c.obj = quarkgl.NewLineSegments(g, m)
	s.AddLines(c.obj)
	return nil
}

// release detaches the line object from s and frees its buffers. Releasing
// an absent channel is a no-op.
func (c *lineChannel) release(s *quarkgl.Scene) {
	if c.obj == nil {
		return
	}
	s.RemoveLines(c.obj)
	c.obj.Release()
	c.obj = nil
}
