// Package config loads the viewer profile from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gcodeview/quarkgl"
	"gcodeview/view"

	"gopkg.in/yaml.v2"
)

var ErrInvalid = errors.New("config: invalid")

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

// Palette colors are "#rrggbb", "0xrrggbb" or bare "rrggbb".
type Palette struct {
	Background string `yaml:"background"`
	Deposit    string `yaml:"deposit"`
	Travel     string `yaml:"travel"`
	Bed        string `yaml:"bed"`
}

// Bed is the build plate. X and Y place its corner; Mode is "solid",
// "wireframe" or "shaded".
type Bed struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Mode  string  `yaml:"mode"`
}

// Config is the viewer profile.
type Config struct {
	Window  Window  `yaml:"window"`
	Hz      int     `yaml:"hz"`
	Palette Palette `yaml:"palette"`
	Axes    float64 `yaml:"axes"`
	Bed     Bed     `yaml:"bed"`
	HUD     bool    `yaml:"hud"`

	// OrbitStep is the rotation per arrow key press, in degrees.
	OrbitStep float64 `yaml:"orbitStep"`
	// ZoomStep is the fraction of the orbit distance per zoom key press.
	ZoomStep float64 `yaml:"zoomStep"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 800, Height: 600, Scale: 1},
		Hz:     60,
		Palette: Palette{
			Background: "#111111",
			Deposit:    "#ff0000",
			Travel:     "#00aaff",
			Bed:        "#2a2a2a",
		},
		Axes:      100,
		Bed:       Bed{Mode: "solid"},
		HUD:       true,
		OrbitStep: 5,
		ZoomStep:  0.1,
	}
}

// Load reads a profile file. Keys it does not set keep their defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML profile over Default and validates it. Unknown keys
// are rejected.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Scale < 1:
		return fmt.Errorf("%w: window scale %d", ErrInvalid, c.Window.Scale)
	case c.Hz <= 0 || c.Hz > 1000:
		return fmt.Errorf("%w: hz %d", ErrInvalid, c.Hz)
	case c.Axes < 0:
		return fmt.Errorf("%w: axes %v", ErrInvalid, c.Axes)
	case c.Bed.Width < 0 || c.Bed.Depth < 0:
		return fmt.Errorf("%w: bed %vx%v", ErrInvalid, c.Bed.Width, c.Bed.Depth)
	case c.Bed.Mode != "" && !validBedMode(c.Bed.Mode):
		return fmt.Errorf("%w: bed mode %q", ErrInvalid, c.Bed.Mode)
	case c.OrbitStep <= 0:
		return fmt.Errorf("%w: orbitStep %v", ErrInvalid, c.OrbitStep)
	case c.ZoomStep <= 0 || c.ZoomStep >= 1:
		return fmt.Errorf("%w: zoomStep %v", ErrInvalid, c.ZoomStep)
	}
	_, err := c.ViewPalette()
	return err
}

// ViewPalette converts the configured colors.
func (c Config) ViewPalette() (view.Palette, error) {
	var p view.Palette
	for _, f := range []struct {
		name string
		src  string
		dst  *quarkgl.Color
	}{
		{"background", c.Palette.Background, &p.Clear},
		{"deposit", c.Palette.Deposit, &p.Deposit},
		{"travel", c.Palette.Travel, &p.Travel},
		{"bed", c.Palette.Bed, &p.Bed},
	} {
		col, err := ParseColor(f.src)
		if err != nil {
			return view.Palette{}, fmt.Errorf("%w: palette %s: %v", ErrInvalid, f.name, err)
		}
		*f.dst = col
	}
	return p, nil
}

// ViewOptions returns the surface options the profile describes.
func (c Config) ViewOptions() ([]view.Option, error) {
	p, err := c.ViewPalette()
	if err != nil {
		return nil, err
	}
	mode, err := ParseBedMode(c.Bed.Mode)
	if err != nil {
		return nil, err
	}
	opts := []view.Option{
		view.WithPalette(p),
		view.WithAxes(c.Axes),
		view.WithHUD(c.HUD),
		view.WithBedMode(mode),
	}
	if c.Bed.Width > 0 && c.Bed.Depth > 0 {
		opts = append(opts,
			view.WithBed(c.Bed.Width, c.Bed.Depth),
			view.WithBedOrigin(c.Bed.X, c.Bed.Y),
		)
	}
	return opts, nil
}

var bedModes = map[string]quarkgl.RenderMode{
	"solid":     quarkgl.RenderSolidFlat,
	"wireframe": quarkgl.RenderWireframe,
	"shaded":    quarkgl.RenderSolidVertexColor,
}

func validBedMode(name string) bool {
	_, ok := bedModes[name]
	return ok
}

// ParseBedMode maps a bed mode name to its render mode. The empty name is
// "solid".
func ParseBedMode(name string) (quarkgl.RenderMode, error) {
	if name == "" {
		name = "solid"
	}
	m, ok := bedModes[name]
	if !ok {
		return 0, fmt.Errorf("%w: bed mode %q", ErrInvalid, name)
	}
	return m, nil
}

// ParseColor parses a 24-bit hex color.
func ParseColor(s string) (quarkgl.Color, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}
	if len(h) != 6 {
		return quarkgl.Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return quarkgl.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return quarkgl.Hex(uint32(v)), nil
}
