// Package commands implements the funcplot command line.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"funcplot/app"
	"funcplot/hal"
	"funcplot/internal/config"
	"funcplot/tasks/plotter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	envFile    string
	logLevel   string

	expr       string
	xmin, xmax float64
	step       float64
	ymin, ymax float64
	autoY      bool
	curve      bool
}

// NewRoot returns the root command with every subcommand attached. Without
// a subcommand it opens the window.
func NewRoot() *cobra.Command {
	o := &options{}
	win := &windowOptions{}

	root := &cobra.Command{
		Use:   "funcplot",
		Short: "funcplot plots y = f(x) and lets you inspect the samples",
		Long: `funcplot samples a formula in x over an evenly spaced domain, plots the
points, and shows them in a value table. Click a point or a table column
to select it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, o, win)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "YAML config file")
	f.StringVar(&o.envFile, "env-file", ".env", "file with FUNCPLOT_* variables")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVarP(&o.expr, "expr", "e", "", "formula in x, e.g. sin(x)/x")
	f.Float64Var(&o.xmin, "xmin", 0, "lower x bound")
	f.Float64Var(&o.xmax, "xmax", 0, "upper x bound")
	f.Float64Var(&o.step, "step", 0, "x step")
	f.Float64Var(&o.ymin, "ymin", 0, "lower y bound (with --auto-y=false)")
	f.Float64Var(&o.ymax, "ymax", 0, "upper y bound (with --auto-y=false)")
	f.BoolVar(&o.autoY, "auto-y", true, "derive the y range from the samples")
	f.BoolVar(&o.curve, "curve", false, "draw the continuous curve")

	addWindowFlags(root, win)

	root.AddCommand(
		windowCmd(o),
		renderCmd(o),
		tableCmd(o),
		exportCmd(o),
		versionCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// load layers the config file, the environment and the flags the user set.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		return cfg, err
	}

	fl := cmd.Flags()
	if fl.Changed("expr") {
		cfg.Plot.Expr = o.expr
	}
	if fl.Changed("xmin") {
		cfg.Plot.XMin = o.xmin
	}
	if fl.Changed("xmax") {
		cfg.Plot.XMax = o.xmax
	}
	if fl.Changed("step") {
		cfg.Plot.Step = o.step
	}
	if fl.Changed("ymin") {
		cfg.Plot.YMin = o.ymin
	}
	if fl.Changed("ymax") {
		cfg.Plot.YMax = o.ymax
	}
	if fl.Changed("auto-y") {
		cfg.Plot.AutoY = o.autoY
	}
	if fl.Changed("curve") {
		cfg.Plot.ShowCurve = o.curve
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return slog.New(hal.NewPrettyHandler(cmd.ErrOrStderr(), hal.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: hal.SlogLevel(cfg.LogLevel())},
	}))
}

func appConfig(cfg config.Config) app.Config {
	return app.Config{
		Settings: cfg.Settings(),
		Canvas:   cfg.RenderCanvas(),
		LogLevel: cfg.LogLevel(),
	}
}

func halOptions(cfg config.Config, log *slog.Logger) hal.Options {
	w, h := plotter.FrameSize(cfg.RenderCanvas())
	return hal.Options{Width: w, Height: h, Log: log}
}

// calculate runs one calculation outside the kernel, for the commands that
// do not open a window.
func calculate(cfg config.Config) (*plotter.Controller, error) {
	ctrl := plotter.NewController(nil, cfg.Settings())
	if err := ctrl.Calculate(); err != nil {
		return nil, err
	}
	return ctrl, nil
}
