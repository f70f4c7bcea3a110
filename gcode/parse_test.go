package gcode

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	res := Parse("")
	if len(res.Segments) != 0 {
		t.Fatalf("segments=%d, want 0", len(res.Segments))
	}
	if res.MaxHeight != 0 {
		t.Fatalf("maxHeight=%v, want 0", res.MaxHeight)
	}
}

func TestParseCarriesAxesForward(t *testing.T) {
	res := Parse("G1 X10 Y20 Z5\nG0 X0")
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	want := []Segment{
		{Start: Point3{0, 0, 0}, End: Point3{10, 20, 5}, Travel: false},
		{Start: Point3{10, 20, 5}, End: Point3{0, 20, 5}, Travel: true},
	}
	for i, w := range want {
		if res.Segments[i] != w {
			t.Fatalf("segment %d = %+v, want %+v", i, res.Segments[i], w)
		}
	}
	if res.MaxHeight != 5 {
		t.Fatalf("maxHeight=%v, want 5", res.MaxHeight)
	}
}

func TestParseMaxHeightIsMaximumNotLast(t *testing.T) {
	res := Parse("G1 Z9\nG1 Z2")
	if res.MaxHeight != 9 {
		t.Fatalf("maxHeight=%v, want 9", res.MaxHeight)
	}
}

func TestParseMaxHeightIgnoresClassification(t *testing.T) {
	res := Parse("G0 Z12\nG1 Z3")
	if res.MaxHeight != 12 {
		t.Fatalf("maxHeight=%v, want 12", res.MaxHeight)
	}
}

func TestParseMalformedTokenKeepsAxis(t *testing.T) {
	res := Parse("G1 X3 Y4\nG1 XabcY5")
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	got := res.Segments[1].End
	if got != (Point3{3, 4, 0}) {
		t.Fatalf("end=%+v, want X and Y unchanged", got)
	}
}

func TestParseMalformedHeightDoesNotTouchMax(t *testing.T) {
	res := Parse("G1 Z2\nG1 Zfoo")
	if res.MaxHeight != 2 {
		t.Fatalf("maxHeight=%v, want 2", res.MaxHeight)
	}
	if res.Segments[1].End.Z != 2 {
		t.Fatalf("z=%v, want 2", res.Segments[1].End.Z)
	}
}

func TestParseOverflowIsMalformed(t *testing.T) {
	res := Parse("G1 X2 Z1\nG1 X1e400 Z-1e400")
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	if got := res.Segments[1].End; got != (Point3{X: 2, Z: 1}) {
		t.Fatalf("end=%+v, want axes unchanged", got)
	}
	if res.MaxHeight != 1 {
		t.Fatalf("maxHeight=%v, want 1", res.MaxHeight)
	}
}

func TestParseNumericPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want Point3
	}{
		{in: "G1 X-1.5", want: Point3{X: -1.5}},
		{in: "G1 X+2", want: Point3{X: 2}},
		{in: "G1 X.25", want: Point3{X: 0.25}},
		{in: "G1 X7.", want: Point3{X: 7}},
		{in: "G1 X1e2", want: Point3{X: 100}},
		{in: "G1 X10abc", want: Point3{X: 10}},
		{in: "G1 X-", want: Point3{}},
		{in: "G1 X.", want: Point3{}},
		{in: "G1 x5", want: Point3{}},
		{in: "G1 E5 F1200", want: Point3{}},
	}
	for _, tt := range tests {
		res := Parse(tt.in)
		if len(res.Segments) != 1 {
			t.Fatalf("Parse(%q) segments=%d, want 1", tt.in, len(res.Segments))
		}
		if got := res.Segments[0].End; got != tt.want {
			t.Fatalf("Parse(%q) end=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseSkipsOtherLines(t *testing.T) {
	prog := strings.Join([]string{
		"; generated",
		"",
		"M104 S200",
		"g1 X5",
		"G28",
		"  G1 X1 Y1  ",
		"G92 E0",
	}, "\n")
	res := Parse(prog)
	if len(res.Segments) != 1 {
		t.Fatalf("segments=%d, want 1", len(res.Segments))
	}
	if res.Segments[0].End != (Point3{1, 1, 0}) {
		t.Fatalf("end=%+v", res.Segments[0].End)
	}
}

func TestParsePrefixIsExact(t *testing.T) {
	// G10 and G17 start with G1 and are treated as linear moves.
	res := Parse("G10 X4\nG17")
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	if res.Segments[0].Travel || res.Segments[1].Travel {
		t.Fatalf("expected deposition moves")
	}
}

func TestParseZeroLengthSegmentKept(t *testing.T) {
	res := Parse("G1 X2\nG0\nG1 ; comment")
	if len(res.Segments) != 3 {
		t.Fatalf("segments=%d, want 3", len(res.Segments))
	}
	if !res.Segments[1].Degenerate() || !res.Segments[1].Travel {
		t.Fatalf("segment 1 = %+v, want zero-length travel", res.Segments[1])
	}
	if !res.Segments[2].Degenerate() || res.Segments[2].Travel {
		t.Fatalf("segment 2 = %+v, want zero-length deposition", res.Segments[2])
	}
}

func TestParseContinuity(t *testing.T) {
	prog := "G0 X1 Y1\nG1 X2\nM107\nG1 Y3 Z0.2\nG1 Zbad X9\nG0 Z1\nG1 X0 Y0 Z0"
	res := Parse(prog)
	for i := 0; i+1 < len(res.Segments); i++ {
		if res.Segments[i].End != res.Segments[i+1].Start {
			t.Fatalf("segment %d end %+v != segment %d start %+v", i, res.Segments[i].End, i+1, res.Segments[i+1].Start)
		}
	}
	if res.Segments[0].Start != (Point3{}) {
		t.Fatalf("first start=%+v, want origin", res.Segments[0].Start)
	}
}

func TestParseCRLF(t *testing.T) {
	res := Parse("G1 X1\r\nG1 Y2\r\n")
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	if res.Segments[1].End != (Point3{1, 2, 0}) {
		t.Fatalf("end=%+v", res.Segments[1].End)
	}
}

func TestParseReaderMatchesParse(t *testing.T) {
	prog := "G1 X10 Y20 Z5\n; layer\nG0 X0\r\nG1 Z9\nG1 Z2"
	want := Parse(prog)
	got, err := ParseReader(strings.NewReader(prog))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if got.MaxHeight != want.MaxHeight || len(got.Segments) != len(want.Segments) {
		t.Fatalf("got %d segments max %v, want %d max %v", len(got.Segments), got.MaxHeight, len(want.Segments), want.MaxHeight)
	}
	for i := range want.Segments {
		if got.Segments[i] != want.Segments[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, got.Segments[i], want.Segments[i])
		}
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestParseReaderReturnsReaderError(t *testing.T) {
	boom := errors.New("boom")
	res, err := ParseReader(&failingReader{data: "G1 X1\nG1 X2\n", err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2 parsed before the error", len(res.Segments))
	}

	if _, err := ParseReader(&failingReader{data: "G1 X1", err: io.EOF}); err != nil {
		t.Fatalf("EOF should not be an error: %v", err)
	}
}

func TestCounts(t *testing.T) {
	d, tr := Parse("G0 X1\nG1 X2\nG1 X3").Counts()
	if d != 2 || tr != 1 {
		t.Fatalf("counts=%d/%d, want 2/1", d, tr)
	}
}
