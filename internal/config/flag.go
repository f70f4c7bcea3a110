package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cutoff is a flag.Value for the height cutoff. Unset, empty or "all" means
// every layer and reads back as NaN.
type Cutoff struct {
	v   float64
	set bool
}

func (c *Cutoff) String() string {
	if c == nil || !c.set {
		return "all"
	}
	return strconv.FormatFloat(c.v, 'g', -1, 64)
}

func (c *Cutoff) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		c.v, c.set = 0, false
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid cutoff %q", s)
	}
	c.v, c.set = v, true
	return nil
}

// Value returns the cutoff, or NaN when every layer is wanted.
func (c *Cutoff) Value() float64 {
	if !c.set {
		return math.NaN()
	}
	return c.v
}
