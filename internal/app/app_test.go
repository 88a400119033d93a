package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/localstate"
	"github.com/and161185/wodcal/internal/model"
)

type fakeServer struct {
	wodv1.WodCalendarClient

	mu      sync.Mutex
	saves   int
	entries map[string]*wodv1.Entry
	saveErr error
}

func (f *fakeServer) Login(_ context.Context, in *wodv1.LoginRequest, _ ...grpc.CallOption) (*wodv1.LoginResponse, error) {
	if in.GetPassword() != "secret1" {
		return nil, status.Error(codes.Unauthenticated, wodv1.MsgBadCredentials)
	}
	return &wodv1.LoginResponse{AccessToken: "tok", UserID: "u1", Email: in.GetEmail()}, nil
}

func (f *fakeServer) SaveEntry(_ context.Context, in *wodv1.SaveEntryRequest, _ ...grpc.CallOption) (*wodv1.SaveEntryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	e := *in.GetEntry()
	f.entries[e.ID] = &e
	return &wodv1.SaveEntryResponse{Entry: &e}, nil
}

func (f *fakeServer) ListEntries(_ context.Context, _ *wodv1.ListEntriesRequest, _ ...grpc.CallOption) (*wodv1.ListEntriesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &wodv1.ListEntriesResponse{}
	for _, e := range f.entries {
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

func seeded(t *testing.T) *localstate.State {
	st := localstate.Open(t.TempDir())
	require.NoError(t, st.SetEntries([]model.Entry{
		{ID: "a1", Date: "2024-03-01", Title: "Squat Day", Sections: []model.Section{}},
	}))
	return st
}

func TestSignInRunsMigrationOnce(t *testing.T) {
	srv := &fakeServer{entries: map[string]*wodv1.Entry{}}
	state := seeded(t)
	a := Assemble(srv, state, Options{Log: zaptest.NewLogger(t)})
	defer a.Close()
	ctx := context.Background()

	require.Empty(t, a.Store.ListAll(ctx), "signed out reads are empty")
	_, err := a.Store.Save(ctx, model.Entry{Date: "2024-03-01"})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = a.Session.SignIn(ctx, "ana@box.es", "secret1")
	require.NoError(t, err)
	require.Equal(t, 1, srv.saves)
	require.Contains(t, srv.entries, "a1")
	done, err := state.Migrated()
	require.NoError(t, err)
	require.True(t, done)

	require.NoError(t, a.Session.SignOut())
	_, err = a.Session.SignIn(ctx, "ana@box.es", "secret1")
	require.NoError(t, err)
	require.Equal(t, 1, srv.saves, "no second migration")
	require.Len(t, a.Store.ListAll(ctx), 1)
}

func TestFailedMigrationLeavesMarker(t *testing.T) {
	srv := &fakeServer{entries: map[string]*wodv1.Entry{}, saveErr: status.Error(codes.Unavailable, "down")}
	state := seeded(t)
	a := Assemble(srv, state, Options{Log: zaptest.NewLogger(t)})
	defer a.Close()

	_, err := a.Session.SignIn(context.Background(), "ana@box.es", "secret1")
	require.NoError(t, err, "sign-in succeeds even when migration fails")
	done, err := state.Migrated()
	require.NoError(t, err)
	require.False(t, done)

	srv.saveErr = nil
	n, err := a.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRestoredSessionRunsMigration(t *testing.T) {
	srv := &fakeServer{entries: map[string]*wodv1.Entry{}}
	state := seeded(t)
	require.NoError(t, state.SetSession(localstate.Session{
		UserID: "u1", Email: "ana@box.es", Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}))

	a := Assemble(srv, state, Options{Log: zaptest.NewLogger(t)})
	_, ok := a.Session.Current()
	require.True(t, ok)
	require.Equal(t, 1, srv.saves)
	require.Contains(t, srv.entries, "a1")
	done, err := state.Migrated()
	require.NoError(t, err)
	require.True(t, done)
	a.Close()

	b := Assemble(srv, state, Options{Log: zaptest.NewLogger(t)})
	defer b.Close()
	require.Equal(t, 1, srv.saves, "marker stops a second run")
}

func TestRestoredSessionOfflineSkipsMigration(t *testing.T) {
	srv := &fakeServer{entries: map[string]*wodv1.Entry{}}
	state := seeded(t)
	require.NoError(t, state.SetSession(localstate.Session{
		UserID: "u1", Email: "ana@box.es", Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}))

	a := Assemble(srv, state, Options{Offline: true})
	defer a.Close()
	require.Zero(t, srv.saves)
	done, err := state.Migrated()
	require.NoError(t, err)
	require.False(t, done)
}

func TestOffline(t *testing.T) {
	srv := &fakeServer{entries: map[string]*wodv1.Entry{}}
	state := localstate.Open(t.TempDir())
	a := Assemble(srv, state, Options{Offline: true})
	defer a.Close()
	ctx := context.Background()

	require.Nil(t, a.Importer())
	saved, err := a.Store.Save(ctx, model.Entry{Date: "2024-03-01", Title: "local"})
	require.NoError(t, err)

	blob, err := state.Entries()
	require.NoError(t, err)
	require.Len(t, blob, 1)
	require.Equal(t, saved.ID, blob[0].ID)
	require.Equal(t, "local", blob[0].Title)
	require.Zero(t, srv.saves)
}

func TestTransportCredentials(t *testing.T) {
	c, err := Transport{Plaintext: true}.Credentials()
	require.NoError(t, err)
	require.Equal(t, "insecure", c.Info().SecurityProtocol)

	c, err = Transport{SkipVerify: true}.Credentials()
	require.NoError(t, err)
	require.Equal(t, "tls", c.Info().SecurityProtocol)

	_, err = Transport{}.Credentials()
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not pem"), 0o600))
	_, err = Transport{CAFile: bad}.Credentials()
	require.Error(t, err)
}

func TestNew_LazyConnection(t *testing.T) {
	a, err := New(Options{Addr: "localhost:1", StateDir: t.TempDir(), Transport: Transport{Plaintext: true}})
	require.NoError(t, err)
	require.NoError(t, a.Close())
}
