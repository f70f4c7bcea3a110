// Command gcodesnap renders one frame of a g-code program to a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"

	"gcodeview/gcode"
	"gcodeview/hal"
	"gcodeview/internal/config"
	"gcodeview/view"
)

const defaultOutPath = "snapshot.png"

type options struct {
	in     string
	out    string
	width  int
	height int
	frames int
	cutoff float64
	cfg    config.Config
}

func main() {
	var o options
	var cfgPath string
	var cutoff config.Cutoff
	flag.StringVar(&o.in, "in", "", "Input g-code file (- for stdin).")
	flag.StringVar(&o.out, "out", defaultOutPath, "Output PNG path.")
	flag.IntVar(&o.width, "width", 0, "Image width (0 = profile value).")
	flag.IntVar(&o.height, "height", 0, "Image height (0 = profile value).")
	flag.IntVar(&o.frames, "frames", 1, "Frames to run before capturing.")
	flag.StringVar(&cfgPath, "config", "", "YAML view profile.")
	flag.Var(&cutoff, "z", "Height cutoff (default: all layers).")
	flag.Parse()

	if o.in == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		os.Exit(2)
	}
	o.cfg = config.Default()
	if cfgPath != "" {
		var err error
		if o.cfg, err = config.Load(cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
	}
	o.cutoff = cutoff.Value()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	var r io.Reader = os.Stdin
	if o.in != "-" {
		f, err := os.Open(o.in)
		if err != nil {
			return fmt.Errorf("open %q: %w", o.in, err)
		}
		defer f.Close()
		r = f
	}
	res, err := gcode.ParseReader(r)
	if err != nil {
		return fmt.Errorf("read %q: %w", o.in, err)
	}

	out, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create %q: %w", o.out, err)
	}
	if err := snapshot(out, res, o); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// snapshot renders res and writes the frame to w as PNG.
func snapshot(w io.Writer, res gcode.ParseResult, o options) error {
	width, height := o.width, o.height
	if width <= 0 {
		width = o.cfg.Window.Width
	}
	if height <= 0 {
		height = o.cfg.Window.Height
	}
	frames := o.frames
	if frames < 1 {
		frames = 1
	}
	cutoff := o.cutoff
	if math.IsNaN(cutoff) {
		cutoff = res.MaxHeight
		for _, z := range gcode.Layers(res.Segments) {
			cutoff = math.Max(cutoff, z)
		}
	}

	opts, err := o.cfg.ViewOptions()
	if err != nil {
		return err
	}
	log := hal.NewLogger(os.Stderr)
	opts = append(opts, view.WithLogger(log))

	fb := hal.NewFramebuffer(width, height)
	q := hal.NewFrameQueue()
	surf, err := view.New(context.Background(), fb, q, width, height, opts...)
	if err != nil {
		return err
	}
	defer surf.Dispose()

	if err := surf.Visualize(res.Segments, cutoff); err != nil {
		return err
	}
	d, t := surf.Segments()
	surf.SetStatus(fmt.Sprintf("z <= %.2f  deposit %d  travel %d", cutoff, d, t))
	for i := 0; i < frames; i++ {
		q.Flush()
	}
	if err := surf.LoopErr(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if surf.Frames() == 0 {
		return errors.New("render: no frame painted")
	}
	return png.Encode(w, fb.RGBA())
}
