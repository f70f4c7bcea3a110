package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFOV is the vertical field of view used when none is given.
	DefaultFOV = 30.0

	fitMargin      = 1.5
	elevationRatio = 0.6
	// minFitExtent stands in for the size of a box with no extent.
	minFitExtent = 1.0
)

// Pose is a camera placement.
type Pose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// Bounds is an axis-aligned bounding box grown one point at a time. The zero
// value is empty.
type Bounds struct {
	min, max mgl64.Vec3
	n        int
}

func (b *Bounds) Extend(p mgl64.Vec3) {
	if b.n == 0 {
		b.min, b.max = p, p
		b.n = 1
		return
	}
	for i := 0; i < 3; i++ {
		b.min[i] = math.Min(b.min[i], p[i])
		b.max[i] = math.Max(b.max[i], p[i])
	}
	b.n++
}

// ExtendFlat extends the box by every xyz triple in flat. A trailing partial
// triple is ignored.
func (b *Bounds) ExtendFlat(flat []float32) {
	for i := 0; i+2 < len(flat); i += 3 {
		b.Extend(mgl64.Vec3{float64(flat[i]), float64(flat[i+1]), float64(flat[i+2])})
	}
}

func (b Bounds) Empty() bool { return b.n == 0 }

// Points returns how many points have been added.
func (b Bounds) Points() int { return b.n }

func (b Bounds) Min() mgl64.Vec3 { return b.min }
func (b Bounds) Max() mgl64.Vec3 { return b.max }

func (b Bounds) Center() mgl64.Vec3 {
	return b.min.Add(b.max).Mul(0.5)
}

func (b Bounds) Size() mgl64.Vec3 {
	return b.max.Sub(b.min)
}

// Fit frames points for a perspective camera with vertical field of view
// fovY (radians). It reports false when there is nothing to frame or the box
// is not finite, in which case the caller keeps its current pose.
func Fit(points []mgl64.Vec3, fovY float64) (Pose, bool) {
	var b Bounds
	for _, p := range points {
		b.Extend(p)
	}
	return FitBounds(b, fovY)
}

// FitBounds is Fit over an already accumulated box.
//
// The camera looks at the box centre from below and in front:
// centre + (0, -0.6d, d), where d puts the largest box dimension inside the
// field of view with a 1.5 margin.
func FitBounds(b Bounds, fovY float64) (Pose, bool) {
	if b.Empty() {
		return Pose{}, false
	}
	if !(fovY > 0 && fovY < math.Pi) {
		fovY = mgl64.DegToRad(DefaultFOV)
	}

	center := b.Center()
	if !finite(center) {
		return Pose{}, false
	}
	size := b.Size()
	maxDim := math.Max(size.X(), math.Max(size.Y(), size.Z()))
	if !(maxDim > 0) || math.IsInf(maxDim, 0) {
		maxDim = minFitExtent
	}

	distance := (maxDim / 2) / math.Tan(fovY/2) * fitMargin
	return Pose{
		Position: center.Add(mgl64.Vec3{0, -elevationRatio * distance, distance}),
		Target:   center,
	}, true
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
