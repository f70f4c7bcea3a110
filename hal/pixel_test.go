package hal

import "testing"

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		r, g, b uint8
	}{
		{0, 0, 0},
		{0xFF, 0xFF, 0xFF},
		{0xFF, 0, 0},
		{0, 0xAA, 0xFF},
		{0x11, 0x11, 0x11},
	}
	for _, tt := range tests {
		r, g, b := RGB888From565(rgb565(tt.r, tt.g, tt.b))
		if d := diff(r, tt.r); d > 8 {
			t.Errorf("%v: r=%d", tt, r)
		}
		if d := diff(g, tt.g); d > 4 {
			t.Errorf("%v: g=%d", tt, g)
		}
		if d := diff(b, tt.b); d > 8 {
			t.Errorf("%v: b=%d", tt, b)
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
