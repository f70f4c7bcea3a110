package quarkgl

import (
	"errors"
	"testing"
)

func TestGeometryLifecycleCounts(t *testing.T) {
	r := NewRenderer(8, 8, true)
	g, err := r.NewLineGeometry([]float32{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatalf("NewLineGeometry: %v", err)
	}
	m, err := r.NewLineMaterial(RGB(1, 2, 3))
	if err != nil {
		t.Fatalf("NewLineMaterial: %v", err)
	}
	if got := r.LiveResources(); got != 2 {
		t.Fatalf("live=%d, want 2", got)
	}
	if g.Vertices() != 2 {
		t.Fatalf("vertices=%d, want 2", g.Vertices())
	}

	l := NewLineSegments(g, m)
	l.Release()
	l.Release()
	if got := r.LiveResources(); got != 0 {
		t.Fatalf("live=%d after release, want 0", got)
	}
	if !g.Released() || !m.Released() {
		t.Fatalf("expected both resources released")
	}
}

func TestGeometryRejectsPartialSegments(t *testing.T) {
	r := NewRenderer(8, 8, false)
	if _, err := r.NewLineGeometry([]float32{0, 0, 0}); !errors.Is(err, ErrVertexCount) {
		t.Fatalf("err=%v, want ErrVertexCount", err)
	}
	if _, err := r.NewLineGeometryColored([]float32{0, 0, 0, 1, 1, 1}, []Color{{}}); !errors.Is(err, ErrVertexCount) {
		t.Fatalf("err=%v, want ErrVertexCount", err)
	}
	if got := r.LiveResources(); got != 0 {
		t.Fatalf("failed constructors must not count: live=%d", got)
	}
}

func TestDisposedRendererRefusesResources(t *testing.T) {
	r := NewRenderer(8, 8, false)
	r.Dispose()
	if _, err := r.NewLineMaterial(Color{}); !errors.Is(err, ErrDisposed) {
		t.Fatalf("err=%v, want ErrDisposed", err)
	}
	if _, err := NewAxesHelper(r, 10); !errors.Is(err, ErrDisposed) {
		t.Fatalf("err=%v, want ErrDisposed", err)
	}
}

func TestSceneClearReleasesLines(t *testing.T) {
	r := NewRenderer(8, 8, false)
	s := CreateScene(1)
	axes, err := NewAxesHelper(r, 100)
	if err != nil {
		t.Fatalf("NewAxesHelper: %v", err)
	}
	s.AddLines(axes)
	s.AddLines(axes)
	s.AddMesh(NewPlaneMesh(10, 10, 0))
	if got := s.Objects(); got != 2 {
		t.Fatalf("objects=%d, want 2", got)
	}
	s.Clear()
	if got := s.Objects(); got != 0 {
		t.Fatalf("objects=%d after clear, want 0", got)
	}
	if got := r.LiveResources(); got != 0 {
		t.Fatalf("live=%d after clear, want 0", got)
	}
}
