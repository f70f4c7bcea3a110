package gcode

import "sort"

// Batch holds line-segment vertex lists as flat xyz triples. Every included
// segment contributes exactly two vertices, so the lists render as disjoint
// line primitives.
type Batch struct {
	Deposit []float32
	Travel  []float32
}

// Empty reports whether neither list holds a vertex.
func (b Batch) Empty() bool { return len(b.Deposit) == 0 && len(b.Travel) == 0 }

// Segments returns the number of deposition and travel segments in the batch.
func (b Batch) Segments() (deposit, travel int) {
	return len(b.Deposit) / 6, len(b.Travel) / 6
}

// BatchSegments keeps the segments whose start and end heights are both at or
// below cutoff and splits them by move kind. Segments crossing the cutoff are
// dropped whole, never clipped.
func BatchSegments(segments []Segment, cutoff float64) Batch {
	var b Batch
	for _, s := range segments {
		// A NaN cutoff admits nothing.
		if !(s.Start.Z <= cutoff && s.End.Z <= cutoff) {
			continue
		}
		if s.Travel {
			b.Travel = appendSegment(b.Travel, s)
		} else {
			b.Deposit = appendSegment(b.Deposit, s)
		}
	}
	return b
}

func appendSegment(dst []float32, s Segment) []float32 {
	return append(dst,
		float32(s.Start.X), float32(s.Start.Y), float32(s.Start.Z),
		float32(s.End.X), float32(s.End.Y), float32(s.End.Z),
	)
}

// Layers returns the distinct endpoint heights of segments in ascending
// order. Each value is a usable cutoff showing everything up to that layer.
func Layers(segments []Segment) []float64 {
	seen := make(map[float64]struct{})
	for _, s := range segments {
		seen[s.Start.Z] = struct{}{}
		seen[s.End.Z] = struct{}{}
	}
	out := make([]float64, 0, len(seen))
	for z := range seen {
		out = append(out, z)
	}
	sort.Float64s(out)
	return out
}

// LayerIndex returns the index of the highest layer at or below cutoff, or
// -1 when cutoff is below every layer.
func LayerIndex(layers []float64, cutoff float64) int {
	return sort.Search(len(layers), func(i int) bool { return layers[i] > cutoff }) - 1
}
