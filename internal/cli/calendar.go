package cli

import (
	"github.com/spf13/cobra"

	"github.com/and161185/wodcal/internal/calendar"
)

func addCalendar(top *cobra.Command, r *runtime) {
	var month string
	var next, prev int

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Muestra el calendario del mes",
		Example: `
wod calendar
wod calendar --month 2024-03
wod calendar --next 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			m, y, err := parseMonth(month, r.now())
			if err != nil {
				return err
			}
			v := calendar.NewView(r.now)
			v.SetMonth(m, y)
			for i := 0; i < next; i++ {
				v.Next()
			}
			for i := 0; i < prev; i++ {
				v.Prev()
			}
			v.Refresh(cmd.Context(), a.Store)
			calendar.Render(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month to show (AAAA-MM), default current")
	cmd.Flags().IntVar(&next, "next", 0, "move forward this many months")
	cmd.Flags().IntVar(&prev, "prev", 0, "move back this many months")
	top.AddCommand(cmd)
}
