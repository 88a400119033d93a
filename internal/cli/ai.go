package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/and161185/wodcal/internal/dateoptions"
	"github.com/and161185/wodcal/internal/editor"
	"github.com/and161185/wodcal/internal/errs"
)

func addAI(top *cobra.Command, r *runtime) {
	var date string

	cmd := &cobra.Command{
		Use:   "generate [petición]",
		Short: "Genera un WOD con IA",
		Example: `
wod generate "AMRAP de 20 minutos con kettlebell"
wod generate --date hoy
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			if a.Offline() {
				return &userError{msg: "La IA no está disponible sin conexión", err: errs.ErrUnauthenticated}
			}
			text, err := a.Generator().Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return &userError{msg: editor.NoticeFor(err), err: err}
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, text)
			if date == "" {
				return nil
			}

			d, err := parseDate(date, r.now())
			if err != nil {
				return err
			}
			v, err := dateoptions.Open(cmd.Context(), a.Store, a.Importer(), d, editor.WithLogger(a.Log))
			if err != nil {
				return err
			}
			ed := v.NewEntry()
			defer ed.Close()
			if err := ed.Import(cmd.Context(), text, "text/markdown"); err != nil {
				return &userError{msg: ed.Notice(), err: err}
			}
			return save(cmd.Context(), out, ed)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "also store the generated WOD on this date")
	top.AddCommand(cmd)
}
