// Package app wires the client: local state, session, entry store and the
// migration that runs when a user signs in. One App is built at startup and
// handed to every command.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/editor"
	"github.com/and161185/wodcal/internal/localstate"
	"github.com/and161185/wodcal/internal/migration"
	"github.com/and161185/wodcal/internal/session"
	"github.com/and161185/wodcal/internal/store"
)

// DefaultTimeout bounds every remote call.
const DefaultTimeout = 15 * time.Second

// Options configure New.
type Options struct {
	Addr      string
	StateDir  string
	Timeout   time.Duration
	Transport Transport
	// Offline keeps entries in the local blob instead of the server.
	Offline bool
	Log     *zap.Logger
}

// App is the application context of the CLI.
type App struct {
	Log     *zap.Logger
	State   *localstate.State
	Session *session.Manager
	Store   *store.Store

	remote  *store.Remote
	conn    *grpc.ClientConn
	offline bool
	unhook  func()
}

// New connects to opts.Addr lazily and assembles the App.
func New(opts Options) (*App, error) {
	creds, err := opts.Transport.Credentials()
	if err != nil {
		return nil, err
	}
	conn, err := grpc.NewClient(opts.Addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", opts.Addr, err)
	}
	a := Assemble(wodv1.NewWodCalendarClient(conn), localstate.Open(opts.StateDir), opts)
	a.conn = conn
	return a, nil
}

// Assemble builds an App over an existing client.
func Assemble(cl wodv1.WodCalendarClient, state *localstate.State, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	a := &App{
		Log:     log,
		State:   state,
		Session: session.NewManager(cl, state, log.Named("session")),
		offline: opts.Offline,
	}
	a.remote = store.NewRemote(cl, a.Session, timeout)
	if opts.Offline {
		a.Store = store.New(store.NewLocal(state), log.Named("store"))
	} else {
		a.Store = store.New(a.remote, log.Named("store"))
	}
	a.unhook = a.Session.OnChange(a.onAuthChange)
	if u, ok := a.Session.Current(); ok {
		a.onAuthChange(u, true)
	}
	return a
}

func (a *App) onAuthChange(u session.User, signedIn bool) {
	if !signedIn || a.offline {
		return
	}
	n, err := a.Migrate(context.Background())
	if err != nil {
		a.Log.Error("migration failed, will retry on next start or sign-in", zap.String("user", u.ID), zap.Error(err))
		return
	}
	if n > 0 {
		a.Log.Info("migrated legacy entries", zap.Int("count", n))
	}
}

// Migrate copies the legacy local blob into the remote store once.
func (a *App) Migrate(ctx context.Context) (int, error) {
	dst := store.New(a.remote, a.Log.Named("migration"))
	return migration.Run(ctx, a.State, dst, a.Log.Named("migration"))
}

// Importer is the AI import collaborator, or nil when offline.
func (a *App) Importer() editor.Importer {
	if a.offline {
		return nil
	}
	return a.remote
}

// Generator produces new WODs through the server.
func (a *App) Generator() *store.Remote { return a.remote }

// Offline reports whether entries live in the local blob.
func (a *App) Offline() bool { return a.offline }

// Close releases the connection.
func (a *App) Close() error {
	if a.unhook != nil {
		a.unhook()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}
