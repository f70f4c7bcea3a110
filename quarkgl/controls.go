package quarkgl

import "math"

// maxPitch keeps the orbit short of the poles where LookAt degenerates.
const maxPitch = Scalar(math.Pi/2 - 1e-3)

// OrbitController provides orbit/zoom interactions for a camera, with
// optional damping.
//
// It does not depend on any input system: callers feed Rotate/Zoom deltas and
// call Update once per frame.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	// With damping enabled each Update applies DampingFactor of the pending
	// motion and keeps the rest for later frames.
	EnableDamping bool
	DampingFactor Scalar

	dYaw, dPitch, dRadius Scalar
	disposed              bool
}

// NewOrbitController returns a damped controller synced to cam.
func NewOrbitController(cam *Camera) *OrbitController {
	c := &OrbitController{EnableDamping: true, DampingFactor: 0.05}
	if cam != nil {
		c.Target = cam.Target
		c.Sync(cam)
	}
	return c
}

// Sync derives yaw, pitch and radius from the camera position around Target
// and discards pending motion. Call it after moving the camera directly.
func (c *OrbitController) Sync(cam *Camera) {
	if cam == nil {
		return
	}
	c.Yaw, c.Pitch, c.Radius = Spherical(cam.Position.Sub(c.Target))
	c.dYaw, c.dPitch, c.dRadius = 0, 0, 0
}

// SetTarget moves the orbit centre and re-syncs to the camera.
func (c *OrbitController) SetTarget(target Vec3, cam *Camera) {
	c.Target = target
	c.Sync(cam)
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.clampRadius(c.Radius)
	if r == 0 {
		r = Scalar(3)
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// Update advances pending motion by one frame and writes the camera. It
// reports whether motion is still pending.
func (c *OrbitController) Update(cam *Camera) bool {
	if c.disposed {
		return false
	}
	f := Scalar(1)
	if c.EnableDamping {
		f = c.DampingFactor
		if f <= 0 || f > 1 {
			f = 1
		}
	}
	c.Yaw += c.dYaw * f
	c.Pitch += c.dPitch * f
	c.Radius = c.clampRadius(c.Radius + c.dRadius*f)
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	keep := 1 - f
	c.dYaw *= keep
	c.dPitch *= keep
	c.dRadius *= keep
	const eps = 1e-5
	if abs(c.dYaw) < eps && abs(c.dPitch) < eps && abs(c.dRadius) < eps {
		c.dYaw, c.dPitch, c.dRadius = 0, 0, 0
	}

	if c.Radius != 0 {
		c.Apply(cam)
	}
	return c.dYaw != 0 || c.dPitch != 0 || c.dRadius != 0
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.dYaw += deltaYaw
	c.dPitch += deltaPitch
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.dRadius += delta
}

// Dispose detaches the controller; Update becomes a no-op.
func (c *OrbitController) Dispose() {
	c.disposed = true
	c.dYaw, c.dPitch, c.dRadius = 0, 0, 0
}

// Disposed reports whether Dispose has been called.
func (c *OrbitController) Disposed() bool { return c.disposed }

func (c *OrbitController) clampRadius(r Scalar) Scalar {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}

func abs(v Scalar) Scalar {
	if v < 0 {
		return -v
	}
	return v
}
