// Package config loads funcplot settings. Values are layered: built-in
// defaults, then a YAML file, then FUNCPLOT_* environment variables (a .env
// file may provide them), then command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"funcplot/hal"
	"funcplot/plot/render"
	"funcplot/tasks/plotter"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "FUNCPLOT_"

type Plot struct {
	Expr      string  `yaml:"expr"`
	XMin      float64 `yaml:"xmin"`
	XMax      float64 `yaml:"xmax"`
	Step      float64 `yaml:"step"`
	YMin      float64 `yaml:"ymin"`
	YMax      float64 `yaml:"ymax"`
	AutoY     bool    `yaml:"auto_y"`
	ShowCurve bool    `yaml:"show_curve"`
}

type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`
}

type Window struct {
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	Plot   Plot   `yaml:"plot"`
	Canvas Canvas `yaml:"canvas"`
	Window Window `yaml:"window"`
	Log    Log    `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	s := plotter.DefaultSettings()
	c := render.DefaultCanvas
	return Config{
		Plot: Plot{
			Expr:      s.Expr,
			XMin:      s.XMin,
			XMax:      s.XMax,
			Step:      s.Step,
			YMin:      s.YMin,
			YMax:      s.YMax,
			AutoY:     s.AutoY,
			ShowCurve: s.ShowCurve,
		},
		Canvas: Canvas{Width: c.Width, Height: c.Height, Margin: c.Margin},
		Window: Window{Scale: 1, TPS: 60},
		Log:    Log{Level: "info"},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// not empty) and the environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := LoadDotEnv(envFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path. Keys missing from the file
// keep their current value.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.Parse(b)
}

// Parse overlays a YAML document. Unknown keys are rejected.
func (c *Config) Parse(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays FUNCPLOT_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var errs []error
	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := cast.ToFloat64E(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := cast.ToIntE(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := cast.ToBoolE(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("EXPR", &c.Plot.Expr)
	float("XMIN", &c.Plot.XMin)
	float("XMAX", &c.Plot.XMax)
	float("STEP", &c.Plot.Step)
	float("YMIN", &c.Plot.YMin)
	float("YMAX", &c.Plot.YMax)
	boolean("AUTO_Y", &c.Plot.AutoY)
	boolean("SHOW_CURVE", &c.Plot.ShowCurve)
	integer("CANVAS_WIDTH", &c.Canvas.Width)
	integer("CANVAS_HEIGHT", &c.Canvas.Height)
	integer("CANVAS_MARGIN", &c.Canvas.Margin)
	integer("WINDOW_SCALE", &c.Window.Scale)
	integer("WINDOW_TPS", &c.Window.TPS)
	str("LOG_LEVEL", &c.Log.Level)
	return errors.Join(errs...)
}

// Validate reports the first setting the application cannot start with.
func (c Config) Validate() error {
	p := c.Plot
	if strings.TrimSpace(p.Expr) == "" {
		return fmt.Errorf("%w: plot.expr is empty", ErrInvalid)
	}
	for _, v := range []struct {
		name string
		v    float64
	}{{"xmin", p.XMin}, {"xmax", p.XMax}, {"step", p.Step}, {"ymin", p.YMin}, {"ymax", p.YMax}} {
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) {
			return fmt.Errorf("%w: plot.%s is not finite", ErrInvalid, v.name)
		}
	}
	if p.Step <= 0 {
		return fmt.Errorf("%w: plot.step must be positive", ErrInvalid)
	}
	if !p.AutoY && p.YMin >= p.YMax {
		return fmt.Errorf("%w: plot.ymin must be below plot.ymax", ErrInvalid)
	}

	cv := c.Canvas
	if cv.Margin < 0 || cv.Width <= 2*cv.Margin || cv.Height <= 2*cv.Margin {
		return fmt.Errorf("%w: canvas %dx%d with margin %d leaves no plot area", ErrInvalid, cv.Width, cv.Height, cv.Margin)
	}
	if c.Window.Scale < 1 {
		return fmt.Errorf("%w: window.scale must be at least 1", ErrInvalid)
	}
	if c.Window.TPS < 1 {
		return fmt.Errorf("%w: window.tps must be at least 1", ErrInvalid)
	}
	if _, err := hal.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Settings converts the plot section for the plotter task.
func (c Config) Settings() plotter.Settings {
	return plotter.Settings{
		Expr:      c.Plot.Expr,
		XMin:      c.Plot.XMin,
		XMax:      c.Plot.XMax,
		Step:      c.Plot.Step,
		YMin:      c.Plot.YMin,
		YMax:      c.Plot.YMax,
		AutoY:     c.Plot.AutoY,
		ShowCurve: c.Plot.ShowCurve,
	}
}

// RenderCanvas converts the canvas section.
func (c Config) RenderCanvas() render.Canvas {
	return render.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height, Margin: c.Canvas.Margin}
}

// LogLevel returns the parsed log level, info when invalid.
func (c Config) LogLevel() hal.LogLevel {
	l, _ := hal.ParseLogLevel(c.Log.Level)
	return l
}
