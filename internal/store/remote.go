package store

import (
	"context"
	"time"

	"google.golang.org/grpc/metadata"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/convert"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// TokenSource yields the access token of the signed-in user.
// Implemented by *session.Manager.
type TokenSource interface {
	Token() (string, bool)
}

// Remote is the per-user collection behind the WodCalendar API.
type Remote struct {
	cl      wodv1.WodCalendarClient
	tokens  TokenSource
	timeout time.Duration
}

// NewRemote returns a Remote backend. A zero timeout leaves calls bounded only by ctx.
func NewRemote(cl wodv1.WodCalendarClient, tokens TokenSource, timeout time.Duration) *Remote {
	return &Remote{cl: cl, tokens: tokens, timeout: timeout}
}

// authed attaches the bearer token, or fails with errs.ErrUnauthenticated
// before any network call when nobody is signed in.
func (r *Remote) authed(ctx context.Context) (context.Context, context.CancelFunc, error) {
	tok, ok := r.tokens.Token()
	if !ok {
		return nil, nil, errs.ErrUnauthenticated
	}
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}

func (r *Remote) List(ctx context.Context) ([]model.Entry, error) {
	return r.list(ctx, "")
}

func (r *Remote) ListByDate(ctx context.Context, date string) ([]model.Entry, error) {
	return r.list(ctx, date)
}

func (r *Remote) list(ctx context.Context, date string) ([]model.Entry, error) {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	resp, err := r.cl.ListEntries(ctx, &wodv1.ListEntriesRequest{Date: date})
	if err != nil {
		return nil, convert.FromStatus(err)
	}
	return convert.FromWireEntries(resp.GetEntries()), nil
}

func (r *Remote) Get(ctx context.Context, id string) (model.Entry, error) {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	defer cancel()
	resp, err := r.cl.GetEntry(ctx, &wodv1.GetEntryRequest{ID: id})
	if err != nil {
		return model.Entry{}, convert.FromStatus(err)
	}
	if resp.GetEntry() == nil {
		return model.Entry{}, errs.ErrNotFound
	}
	return convert.FromWireEntry(resp.GetEntry()), nil
}

func (r *Remote) Put(ctx context.Context, e model.Entry) (model.Entry, error) {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	defer cancel()
	resp, err := r.cl.SaveEntry(ctx, &wodv1.SaveEntryRequest{Entry: convert.ToWireEntry(e)})
	if err != nil {
		return model.Entry{}, convert.FromStatus(err)
	}
	if resp.GetEntry() == nil {
		return e, nil
	}
	return convert.FromWireEntry(resp.GetEntry()), nil
}

func (r *Remote) Delete(ctx context.Context, id string) error {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	if _, err := r.cl.DeleteEntry(ctx, &wodv1.DeleteEntryRequest{ID: id}); err != nil {
		return convert.FromStatus(err)
	}
	return nil
}
