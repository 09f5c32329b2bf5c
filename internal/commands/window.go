package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"funcplot/app"
	"funcplot/hal"
	"funcplot/internal/buildinfo"

	"github.com/spf13/cobra"
)

type windowOptions struct {
	headless bool
	ticks    uint64
	scale    int
}

func addWindowFlags(cmd *cobra.Command, w *windowOptions) {
	f := cmd.Flags()
	f.BoolVar(&w.headless, "headless", false, "run without a window")
	f.Uint64Var(&w.ticks, "ticks", 0, "stop after N ticks in headless mode (0 = until interrupted)")
	f.IntVar(&w.scale, "scale", 0, "window scale factor")
}

func windowCmd(o *options) *cobra.Command {
	w := &windowOptions{}
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the interactive plotter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, o, w)
		},
	}
	addWindowFlags(cmd, w)
	return cmd
}

func runWindow(cmd *cobra.Command, o *options, w *windowOptions) error {
	cfg, err := o.load(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("scale") {
		cfg.Window.Scale = w.scale
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	opts := halOptions(cfg, newLogger(cmd, cfg))
	runner := app.Runner(appConfig(cfg))

	if w.headless {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, runner, hal.HeadlessConfig{
			Options: opts,
			Hz:      cfg.Window.TPS,
			Ticks:   w.ticks,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(runner, hal.WindowConfig{
		Options: opts,
		Title:   buildinfo.Title(),
		Scale:   cfg.Window.Scale,
		TPS:     cfg.Window.TPS,
	})
}
