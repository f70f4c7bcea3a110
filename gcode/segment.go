// Package gcode turns a movement program into ordered 3D line segments and
// filters them into renderable vertex lists.
//
// Everything here is pure: the functions keep no state between calls and may
// run on any goroutine.
package gcode

// Point3 is a machine position in program units.
type Point3 struct {
	X, Y, Z float64
}

// Segment is the move produced by one qualifying program line.
type Segment struct {
	Start  Point3
	End    Point3
	Travel bool // G0 (rapid); false for G1 deposition moves
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool { return s.Start == s.End }

// ParseResult is the output of Parse.
type ParseResult struct {
	Segments []Segment

	// MaxHeight is the largest Z seen on any line that set Z explicitly,
	// starting from 0.
	MaxHeight float64
}

// Counts returns the number of deposition and travel segments.
func (r ParseResult) Counts() (deposit, travel int) {
	for _, s := range r.Segments {
		if s.Travel {
			travel++
		} else {
			deposit++
		}
	}
	return deposit, travel
}
