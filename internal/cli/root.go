// Package cli holds the cobra commands of the wod client.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/and161185/wodcal/internal/app"
)

// Config is the resolved client configuration: flags, then WOD_* env, then
// an optional .wod.yaml in the working or home directory.
type Config struct {
	Addr      string
	StateDir  string
	Timeout   time.Duration
	Plaintext bool
	Insecure  bool
	CAFile    string
	Offline   bool
	Verbose   bool
}

// AppFactory builds the application context for a command run.
type AppFactory func(cfg Config, log *zap.Logger) (*app.App, error)

// DefaultAppFactory connects to cfg.Addr lazily.
func DefaultAppFactory(cfg Config, log *zap.Logger) (*app.App, error) {
	return app.New(app.Options{
		Addr:     cfg.Addr,
		StateDir: cfg.StateDir,
		Timeout:  cfg.Timeout,
		Transport: app.Transport{
			Plaintext:  cfg.Plaintext,
			SkipVerify: cfg.Insecure,
			CAFile:     cfg.CAFile,
		},
		Offline: cfg.Offline,
		Log:     log,
	})
}

// Option configures New.
type Option func(*runtime)

// WithAppFactory replaces DefaultAppFactory.
func WithAppFactory(f AppFactory) Option { return func(r *runtime) { r.factory = f } }

// WithClock replaces time.Now for "today" resolution.
func WithClock(now func() time.Time) Option { return func(r *runtime) { r.now = now } }

type runtime struct {
	v       *viper.Viper
	factory AppFactory
	now     func() time.Time

	cfg Config
	log *zap.Logger
	a   *app.App
	in  *bufio.Reader
}

// New returns the root command.
func New(opts ...Option) *cobra.Command {
	r := &runtime{v: viper.New(), factory: DefaultAppFactory, now: time.Now}
	for _, o := range opts {
		o(r)
	}

	cmd := &cobra.Command{
		Use:           "wod",
		Short:         "Calendario de WODs en la terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return r.teardown()
		},
	}

	f := cmd.PersistentFlags()
	f.String("config", "", "config file (default .wod.yaml in . or $HOME)")
	f.String("addr", "localhost:8443", "server address")
	f.String("state-dir", "~/.wod", "local state directory")
	f.Duration("timeout", app.DefaultTimeout, "timeout of each server call")
	f.Bool("plaintext", false, "connect without TLS")
	f.Bool("insecure", false, "skip TLS certificate verification")
	f.String("ca", "", "PEM file with the server CA")
	f.Bool("offline", false, "keep entries in the local state instead of the server")
	f.BoolP("verbose", "v", false, "log to stderr")
	_ = r.v.BindPFlags(f)

	addAuth(cmd, r)
	addCalendar(cmd, r)
	addEntries(cmd, r)
	addAI(cmd, r)
	addMigrate(cmd, r)
	addVersion(cmd)
	return cmd
}

func (r *runtime) setup(cmd *cobra.Command) error {
	r.v.SetEnvPrefix("WOD")
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()

	if file := r.v.GetString("config"); file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return err
		}
		r.v.SetConfigFile(path)
	} else {
		r.v.SetConfigName(".wod")
		r.v.SetConfigType("yaml")
		r.v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			r.v.AddConfigPath(home)
		}
	}
	if err := r.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	dir, err := homedir.Expand(r.v.GetString("state-dir"))
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	r.cfg = Config{
		Addr:      r.v.GetString("addr"),
		StateDir:  dir,
		Timeout:   r.v.GetDuration("timeout"),
		Plaintext: r.v.GetBool("plaintext"),
		Insecure:  r.v.GetBool("insecure"),
		CAFile:    r.v.GetString("ca"),
		Offline:   r.v.GetBool("offline"),
		Verbose:   r.v.GetBool("verbose"),
	}

	r.log = zap.NewNop()
	if r.cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		r.log = l
	}
	r.in = bufio.NewReader(cmd.InOrStdin())
	return nil
}

// app builds the application context on first use.
func (r *runtime) app() (*app.App, error) {
	if r.a != nil {
		return r.a, nil
	}
	a, err := r.factory(r.cfg, r.log)
	if err != nil {
		return nil, err
	}
	r.a = a
	return a, nil
}

func (r *runtime) teardown() error {
	if r.log != nil {
		_ = r.log.Sync()
	}
	if r.a == nil {
		return nil
	}
	err := r.a.Close()
	r.a = nil
	return err
}

// userError carries a message meant for the user plus the underlying cause.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func readLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
