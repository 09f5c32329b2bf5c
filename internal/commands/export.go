package commands

import (
	"fmt"
	"strings"

	"funcplot/plot/export"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func exportCmd(o *options) *cobra.Command {
	var (
		out           string
		title         string
		selected      int
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the plot as a " + strings.Join(export.Formats, ", ") + " figure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			if _, err := export.FormatOf(out); err != nil {
				return err
			}
			ctrl, err := calculate(cfg)
			if err != nil {
				return err
			}
			ctrl.Select(selected)
			st := ctrl.State()

			opts := export.DefaultOptions()
			opts.Title = title
			opts.ShowCurve = st.ShowCurve
			opts.Selected = st.Selected
			opts.CurveSamples = 2 * cfg.Canvas.Width
			if width > 0 {
				opts.Width = vg.Length(width) * vg.Centimeter
			}
			if height > 0 {
				opts.Height = vg.Length(height) * vg.Centimeter
			}
			if err := export.Save(st.Set, st.Expr, opts, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", out, st.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "plot.svg", "output file; the extension picks the format")
	cmd.Flags().StringVar(&title, "title", "", "figure title (default \"y = <expr>\")")
	cmd.Flags().IntVar(&selected, "select", -1, "sample to mark")
	cmd.Flags().Float64Var(&width, "width", 0, "figure width in cm")
	cmd.Flags().Float64Var(&height, "height", 0, "figure height in cm")
	return cmd
}
