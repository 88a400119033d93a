package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/and161185/wodcal/internal/cli.version=...".
var (
	version = "dev"
	commit  = "none"
)

func addMigrate(top *cobra.Command, r *runtime) {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Sube los WODs locales antiguos al servidor",
		Long: `Copia la lista local de WODs al servidor una sola vez.
Se ejecuta sola al iniciar sesión; este comando la repite a mano.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.app()
			if err != nil {
				return err
			}
			if reset {
				if err := a.State.ResetMigrated(); err != nil {
					return err
				}
			}
			n, err := a.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migración incompleta (%d guardados): %w", n, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d WODs migrados\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the completion marker first")
	top.AddCommand(cmd)
}

func addVersion(top *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Versión de wod",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			v := version
			if v == "dev" {
				if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
					v = bi.Main.Version
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wod %s (%s)\n", v, commit)
		},
	}
	top.AddCommand(cmd)
}
