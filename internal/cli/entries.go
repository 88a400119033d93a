package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/and161185/wodcal/internal/app"
	"github.com/and161185/wodcal/internal/dateoptions"
	"github.com/and161185/wodcal/internal/editor"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
	"github.com/and161185/wodcal/internal/tui/present"
)

// editFlags are the editing operations shared by new and edit.
type editFlags struct {
	title      string
	add        []string
	remove     []string
	importFile string
	importText string
}

func (f *editFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "title")
	cmd.Flags().StringArrayVarP(&f.add, "section", "s", nil, `append a section "TÍTULO=contenido" (repeatable)`)
	cmd.Flags().StringVar(&f.importFile, "import", "", "import sections with AI from a file (text, image or PDF)")
	cmd.Flags().StringVar(&f.importText, "import-text", "", "import sections with AI from text")
}

func (f *editFlags) apply(ctx context.Context, ed *editor.Editor) error {
	if f.title != "" {
		if err := ed.SetTitle(f.title); err != nil {
			return err
		}
	}
	for _, id := range f.remove {
		if err := ed.RemoveSection(id); err != nil {
			return err
		}
	}
	for _, s := range f.add {
		title, content, err := parseSection(s)
		if err != nil {
			return err
		}
		id, err := ed.AddSection()
		if err != nil {
			return err
		}
		if err := ed.UpdateSection(id, title, content); err != nil {
			return err
		}
	}
	if f.importText != "" {
		if err := ed.Import(ctx, f.importText, "text/plain"); err != nil {
			return &userError{msg: ed.Notice(), err: err}
		}
	}
	if f.importFile != "" {
		content, mt, err := editor.ReadImportFile(f.importFile)
		if err != nil {
			return err
		}
		if err := ed.Import(ctx, content, mt); err != nil {
			return &userError{msg: ed.Notice(), err: err}
		}
	}
	return nil
}

func save(ctx context.Context, out io.Writer, ed *editor.Editor) error {
	saved, err := ed.Save(ctx)
	if err != nil {
		return &userError{msg: fmt.Sprintf("%s (%v)", editor.NoticeSaveFailed, err), err: err}
	}
	_, _ = fmt.Fprintf(out, "Guardado %s %s\n", saved.ID, color.New(color.Faint).Sprint(saved.Date))
	return nil
}

// openEntry finds the entry with id and opens it through its date view.
func (r *runtime) openEntry(ctx context.Context, a *app.App, id string) (*editor.Editor, error) {
	e, ok := a.Store.GetByID(ctx, id)
	if !ok {
		return nil, &userError{msg: fmt.Sprintf("No existe el WOD %s", id), err: errs.ErrNotFound}
	}
	v, err := dateoptions.Open(ctx, a.Store, a.Importer(), e.Date, editor.WithLogger(a.Log))
	if err != nil {
		return nil, err
	}
	return v.EditEntry(id)
}

func addEntries(top *cobra.Command, r *runtime) {
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lista todos los WODs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), a.Store.ListAll(cmd.Context()), true)
			return nil
		},
	}

	day := &cobra.Command{
		Use:   "day [fecha]",
		Short: "WODs de un día",
		Example: `
wod day
wod day 2024-03-01
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			date, err := parseDate(firstArg(args), r.now())
			if err != nil {
				return err
			}
			v, err := dateoptions.Open(cmd.Context(), a.Store, a.Importer(), date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = color.New(color.Bold).Fprintln(out, dayHeading(v.Date()))
			if len(v.Entries()) == 0 {
				_, _ = fmt.Fprintln(out, "Sin WODs. Crea uno con: wod new", v.Date())
				return nil
			}
			printEntries(out, v.Entries(), false)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un WOD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			e, ok := a.Store.GetByID(cmd.Context(), args[0])
			if !ok {
				return &userError{msg: fmt.Sprintf("No existe el WOD %s", args[0]), err: errs.ErrNotFound}
			}
			printEntry(cmd.OutOrStdout(), e)
			return nil
		},
	}

	var nf editFlags
	newCmd := &cobra.Command{
		Use:   "new [fecha]",
		Short: "Crea un WOD",
		Example: `
wod new hoy -s "WARM UP=- Row 500m" -s "METCON=21-15-9 Thrusters"
wod new 2024-03-01 --import pizarra.jpg
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			date, err := parseDate(firstArg(args), r.now())
			if err != nil {
				return err
			}
			v, err := dateoptions.Open(cmd.Context(), a.Store, a.Importer(), date, editor.WithLogger(a.Log))
			if err != nil {
				return err
			}
			ed := v.NewEntry()
			defer ed.Close()
			if err := nf.apply(cmd.Context(), ed); err != nil {
				return err
			}
			return save(cmd.Context(), cmd.OutOrStdout(), ed)
		},
	}
	nf.bind(newCmd)

	var ef editFlags
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edita un WOD",
		Example: `
wod edit 6f1c... --title "Fran" --remove-section 9ab2... -s "COOL DOWN=stretch"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			ed, err := r.openEntry(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			defer ed.Close()
			if err := ef.apply(cmd.Context(), ed); err != nil {
				return err
			}
			return save(cmd.Context(), cmd.OutOrStdout(), ed)
		},
	}
	ef.bind(edit)
	edit.Flags().StringArrayVar(&ef.remove, "remove-section", nil, "remove the section with this id (repeatable)")

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Elimina un WOD",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			ed, err := r.openEntry(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			defer ed.Close()
			if err := ed.Delete(cmd.Context()); err != nil {
				return &userError{msg: fmt.Sprintf("%s (%v)", editor.NoticeDeleteFailed, err), err: err}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Eliminado", args[0])
			return nil
		},
	}

	presentCmd := &cobra.Command{
		Use:   "present <id>",
		Short: "Muestra un WOD a pantalla completa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			ed, err := r.openEntry(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			defer ed.Close()
			return present.Run(ed,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
		},
	}

	top.AddCommand(list, day, show, newCmd, edit, rm, presentCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func dayHeading(date string) string {
	d, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

func printEntries(out io.Writer, entries []model.Entry, withDate bool) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	if withDate {
		tbl.AddRow(bold.Sprint("FECHA"), bold.Sprint("TÍTULO"), bold.Sprint("SECCIONES"), bold.Sprint("ID"))
	} else {
		tbl.AddRow(bold.Sprint("TÍTULO"), bold.Sprint("SECCIONES"), bold.Sprint("ID"))
	}
	for _, e := range entries {
		if withDate {
			tbl.AddRow(e.Date, e.Title, len(e.Sections), e.ID)
		} else {
			tbl.AddRow(e.Title, len(e.Sections), e.ID)
		}
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func printEntry(out io.Writer, e model.Entry) {
	_, _ = color.New(color.Bold, color.FgHiYellow).Fprintln(out, strings.ToUpper(e.Title))
	_, _ = color.New(color.Faint).Fprintf(out, "%s  %s\n", dayHeading(e.Date), e.ID)
	if len(e.Sections) == 0 && e.Content != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", e.Content)
		return
	}
	head := color.New(color.Bold, color.FgCyan)
	for _, s := range e.Sections {
		_, _ = fmt.Fprintln(out)
		_, _ = head.Fprintf(out, "### %s", s.Title)
		_, _ = color.New(color.Faint).Fprintf(out, "  %s\n", s.ID)
		_, _ = fmt.Fprintln(out, s.Content)
	}
}
