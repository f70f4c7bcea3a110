package config

import (
	"flag"
	"io"
	"math"
	"testing"
)

func TestCutoffFlag(t *testing.T) {
	tests := []struct {
		args []string
		want float64
		all  bool
		ok   bool
	}{
		{nil, 0, true, true},
		{[]string{"-z", "1.2"}, 1.2, false, true},
		{[]string{"-z", "-0.5"}, -0.5, false, true},
		{[]string{"-z", "all"}, 0, true, true},
		{[]string{"-z", ""}, 0, true, true},
		{[]string{"-z", "abc"}, 0, false, false},
		{[]string{"-z", "NaN"}, 0, false, false},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		var c Cutoff
		fs.Var(&c, "z", "cutoff")
		err := fs.Parse(tt.args)
		if (err == nil) != tt.ok {
			t.Fatalf("%v: err=%v, want ok=%v", tt.args, err, tt.ok)
		}
		if !tt.ok {
			continue
		}
		if tt.all {
			if !math.IsNaN(c.Value()) || c.String() != "all" {
				t.Fatalf("%v: Value()=%v String()=%q", tt.args, c.Value(), c.String())
			}
			continue
		}
		if c.Value() != tt.want {
			t.Fatalf("%v: Value()=%v, want %v", tt.args, c.Value(), tt.want)
		}
	}
}
