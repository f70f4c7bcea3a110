package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"gcodeview/app"
	"gcodeview/gcode"
	"gcodeview/hal"
	"gcodeview/internal/buildinfo"
	"gcodeview/internal/config"

	"golang.org/x/sync/errgroup"
)

func main() {
	var headless bool
	var ticks uint64
	var hz int
	var cfgPath string
	var showVersion bool
	var cutoff config.Cutoff
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 0, "Tick rate in headless mode (0 = profile value).")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfgPath, "config", "", "YAML view profile.")
	flag.Var(&cutoff, "z", "Initial height cutoff (default: all layers).")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.gcode]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String("gcodeview"))
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
	}
	if hz > 0 {
		cfg.Hz = hz
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l := newLauncher(ctx, cfg, flag.Arg(0), cutoff.Value())
	defer l.close()

	var err error
	if headless {
		err = hal.RunHeadless(ctx, l.start, hal.HeadlessConfig{
			Hz:     cfg.Hz,
			Ticks:  ticks,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		})
	} else {
		err = hal.RunWindow(l.start, hal.WindowConfig{
			Title:  "gcodeview (" + buildinfo.Short() + ")",
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Scale:  cfg.Window.Scale,
		})
	}
	if err != nil && !errors.Is(err, app.ErrQuit) && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "error:", err)
		l.close()
		os.Exit(1)
	}
}

// launcher builds the viewer once the host is up and loads the program off
// the frame thread.
type launcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    config.Config
	path   string
	cutoff float64

	v       *app.Viewer
	g       *errgroup.Group
	loadErr error
}

func newLauncher(ctx context.Context, cfg config.Config, path string, cutoff float64) *launcher {
	ctx, cancel := context.WithCancel(ctx)
	return &launcher{ctx: ctx, cancel: cancel, cfg: cfg, path: path, cutoff: cutoff}
}

func (l *launcher) start(h hal.HAL) func() error {
	v, err := app.New(l.ctx, h, l.cfg)
	if err != nil {
		return func() error { return err }
	}
	l.v = v
	if l.path == "" {
		return v.Step
	}

	g, gctx := errgroup.WithContext(l.ctx)
	l.g = g
	g.Go(func() error {
		res, err := parseFile(gctx, l.path)
		if err != nil {
			h.Frames().Post(func() { l.loadErr = err })
			return err
		}
		name := filepath.Base(l.path)
		h.Frames().Post(func() {
			if err := v.Load(name, res, l.cutoff); err != nil {
				h.Logger().WriteLineString("app: load: " + err.Error())
			}
		})
		return nil
	})

	return func() error {
		if l.loadErr != nil {
			return l.loadErr
		}
		return v.Step()
	}
}

// close cancels and waits for the loader, then disposes the viewer.
func (l *launcher) close() {
	l.cancel()
	if l.g != nil {
		_ = l.g.Wait()
		l.g = nil
	}
	if l.v != nil {
		l.v.Close()
		l.v = nil
	}
}

// parseFile reads a program, giving up at the next read once ctx is done.
func parseFile(ctx context.Context, path string) (gcode.ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return gcode.ParseResult{}, err
	}
	defer f.Close()
	res, err := gcode.ParseReader(ctxReader{ctx: ctx, r: f})
	if err != nil {
		return gcode.ParseResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
