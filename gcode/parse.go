package gcode

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

const (
	rapidPrefix  = "G0"
	linearPrefix = "G1"

	maxLineBytes = 1 << 20
)

// Parse converts program text into segments. It never fails: unrecognized
// lines and malformed tokens are skipped.
func Parse(program string) ParseResult {
	var p parser
	for len(program) > 0 {
		line := program
		if i := strings.IndexByte(program, '\n'); i >= 0 {
			line, program = program[:i], program[i+1:]
		} else {
			program = ""
		}
		p.line(line)
	}
	return p.result()
}

// ParseReader is Parse over a stream. The returned error is the reader's;
// the segments parsed before it are still returned.
func ParseReader(r io.Reader) (ParseResult, error) {
	var p parser
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	sc.Split(scanLines)
	for sc.Scan() {
		p.line(sc.Text())
	}
	return p.result(), sc.Err()
}

type parser struct {
	cur       Point3
	maxHeight float64
	segs      []Segment
}

func (p *parser) result() ParseResult {
	return ParseResult{Segments: p.segs, MaxHeight: p.maxHeight}
}

func (p *parser) line(raw string) {
	s := strings.TrimSpace(raw)
	var travel bool
	switch {
	case strings.HasPrefix(s, rapidPrefix):
		travel = true
	case strings.HasPrefix(s, linearPrefix):
	default:
		return
	}

	next := p.cur
	for _, tok := range strings.Split(s, " ") {
		if len(tok) < 2 {
			continue
		}
		var axis *float64
		switch tok[0] {
		case 'X':
			axis = &next.X
		case 'Y':
			axis = &next.Y
		case 'Z':
			axis = &next.Z
		default:
			continue
		}
		v, ok := parseNumber(tok[1:])
		if !ok {
			continue
		}
		*axis = v
		if tok[0] == 'Z' && v > p.maxHeight {
			p.maxHeight = v
		}
	}

	p.segs = append(p.segs, Segment{Start: p.cur, End: next, Travel: travel})
	p.cur = next
}

// parseNumber reads the longest decimal literal at the start of s. A literal
// that overflows to infinity is malformed.
func parseNumber(s string) (float64, bool) {
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// scanLines splits on '\n' only; trailing '\r' is left to TrimSpace.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
