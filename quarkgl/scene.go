package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup. It shades meshes only; lines are unlit.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective camera.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar

	// Aspect is width/height. Zero means "use the target's aspect".
	Aspect Scalar

	Near Scalar
	Far  Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio from a pixel size.
func (c *Camera) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		c.Aspect = 0
		return
	}
	c.Aspect = Scalar(w) / Scalar(h)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// NewPlaneMesh builds a w×d rectangle in the XY plane at height z, with its
// corner at the origin.
func NewPlaneMesh(w, d, z Scalar) Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(0, 0, z)},
			{Pos: V3(w, 0, z)},
			{Pos: V3(w, d, z)},
			{Pos: V3(0, d, z)},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool

	lines []*LineSegments
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: Scalar(0.75),
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// MeshEnabled reports whether mesh id exists and is drawn.
func (s *Scene) MeshEnabled(id int) bool {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return false
	}
	return s.meshes[id].Enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// AddLines adds a line object. Adding the same object twice is a no-op.
func (s *Scene) AddLines(l *LineSegments) {
	if s == nil || l == nil || s.HasLines(l) {
		return
	}
	s.lines = append(s.lines, l)
}

// RemoveLines detaches a line object without releasing it.
func (s *Scene) RemoveLines(l *LineSegments) {
	if s == nil {
		return
	}
	for i, cur := range s.lines {
		if cur == l {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// HasLines reports whether l is attached to the scene.
func (s *Scene) HasLines(l *LineSegments) bool {
	for _, cur := range s.lines {
		if cur == l {
			return true
		}
	}
	return false
}

// Objects returns the number of meshes and line objects in the scene.
func (s *Scene) Objects() int {
	n := len(s.lines)
	for _, ok := range s.alive {
		if ok {
			n++
		}
	}
	return n
}

// Clear removes every object, releasing the line objects' resources.
func (s *Scene) Clear() {
	if s == nil {
		return
	}
	for _, l := range s.lines {
		l.Release()
	}
	s.lines = nil
	for i := range s.meshes {
		s.alive[i] = false
		s.meshes[i] = Mesh{}
	}
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
