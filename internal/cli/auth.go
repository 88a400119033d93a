package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/and161185/wodcal/internal/session"
)

func addAuth(top *cobra.Command, r *runtime) {
	var email string

	credentials := func(cmd *cobra.Command) (string, string, error) {
		out := cmd.ErrOrStderr()
		e := email
		if e == "" {
			var err error
			if e, err = readLine(r.in, out, "Email: "); err != nil {
				return "", "", err
			}
		}
		pw, err := r.password(cmd)
		return e, pw, err
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión",
		Example: `
wod login --email ana@box.es
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			e, pw, err := credentials(cmd)
			if err != nil {
				return err
			}
			u, err := a.Session.SignIn(cmd.Context(), e, pw)
			if err != nil {
				return &userError{msg: session.Message(session.OpSignIn, err), err: err}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s\n", color.New(color.Bold).Sprint(u.Email))
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")

	register := &cobra.Command{
		Use:   "register",
		Short: "Crea una cuenta e inicia sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			e, pw, err := credentials(cmd)
			if err != nil {
				return err
			}
			u, err := a.Session.SignUp(cmd.Context(), e, pw)
			if err != nil {
				return &userError{msg: session.Message(session.OpSignUp, err), err: err}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cuenta creada: %s\n", u.Email)
			return nil
		},
	}
	register.Flags().StringVar(&email, "email", "", "account email")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			if err := a.Session.SignOut(); err != nil {
				return &userError{msg: session.Message(session.OpSignOut, err), err: err}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			u, ok := a.Session.Current()
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Sin sesión")
				return nil
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)", u.Email, u.ID)
			if exp := a.Session.ExpiresAt(); !exp.IsZero() {
				_, _ = fmt.Fprintf(out, " hasta %s", exp.Local().Format("02/01/2006 15:04"))
			}
			_, _ = fmt.Fprintln(out)
			return nil
		},
	}

	top.AddCommand(login, register, logout, whoami)
}

// password reads a password without echo from a terminal, or a plain line otherwise.
func (r *runtime) password(cmd *cobra.Command) (string, error) {
	out := cmd.ErrOrStderr()
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(out, "Contraseña: ")
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)
		return string(b), err
	}
	return readLine(r.in, out, "Contraseña: ")
}
