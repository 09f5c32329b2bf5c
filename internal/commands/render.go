package commands

import (
	"image"
	"image/png"
	"os"

	"funcplot/app"
	"funcplot/hal"

	"github.com/spf13/cobra"
)

// renderHz only paces the headless loop; nothing waits on wall time.
const renderHz = 1000

func renderCmd(o *options) *cobra.Command {
	var out string
	var ticks uint64
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the plotter screen headless and save it as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			if ticks == 0 {
				ticks = 1
			}
			log := newLogger(cmd, cfg)

			var sys *app.System
			newApp := func(h hal.HAL) func() error {
				sys = app.New(h, appConfig(cfg))
				return sys.Step
			}
			return hal.RunHeadless(cmd.Context(), newApp, hal.HeadlessConfig{
				Options: halOptions(cfg, log),
				Hz:      renderHz,
				Ticks:   ticks,
				Done: func(h hal.HAL) error {
					if err := sys.Plotter().Controller().State().LastErr; err != nil {
						return err
					}
					if err := writePNG(out, hal.Snapshot(h.Display().Framebuffer())); err != nil {
						return err
					}
					log.Info("wrote " + out)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "plot.png", "PNG file to write")
	cmd.Flags().Uint64Var(&ticks, "ticks", 1, "ticks to run before the snapshot")
	return cmd
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
