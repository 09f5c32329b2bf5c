package commands

import (
	"fmt"

	"funcplot/plot/table"

	"github.com/spf13/cobra"
)

func tableCmd(o *options) *cobra.Command {
	var selected, width int
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the sample table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			ctrl, err := calculate(cfg)
			if err != nil {
				return err
			}
			ctrl.Select(selected)
			st := ctrl.State()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "y = %s: %s, y in [%.3g, %.3g]\n", st.Expr.Source(), st.Status, st.Set.YMin, st.Set.YMax)
			fmt.Fprintln(out, table.RenderTerminal(table.Project(st.Set, st.Selected), width))
			for _, s := range st.Set.Skipped {
				fmt.Fprintf(out, "skipped x=%s: %v\n", table.Format(s.X), s.Err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&selected, "select", -1, "column to highlight")
	cmd.Flags().IntVar(&width, "width", 80, "terminal width; 0 prints one block")
	return cmd
}
