package quarkgl

import "testing"

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	offsets := []Vec3{
		V3(0, -60, 100),
		V3(3, 4, 5),
		V3(-2, 1, -7),
	}
	for _, off := range offsets {
		yaw, pitch, r := Spherical(off)
		m := Mat4Mul(Mat4RotateY(yaw), Mat4RotateX(pitch))
		p := Mat4MulV4(m, Vec4{Z: r, W: 1})
		got := V3(p.X, p.Y, p.Z)
		if Len(got.Sub(off)) > 1e-3*Len(off) {
			t.Fatalf("Spherical(%v) round trip = %v", off, got)
		}
	}
}

func TestSphericalZero(t *testing.T) {
	yaw, pitch, r := Spherical(Vec3{})
	if yaw != 0 || pitch != 0 || r != 0 {
		t.Fatalf("expected zeros, got %v %v %v", yaw, pitch, r)
	}
}
