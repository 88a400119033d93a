package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

type memBlob struct {
	entries []model.Entry
	readErr error
	putErr  error
}

func (m *memBlob) Entries() ([]model.Entry, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]model.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memBlob) SetEntries(es []model.Entry) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.entries = append([]model.Entry(nil), es...)
	return nil
}

func newLocalStore(t *testing.T, blob *memBlob) *Store {
	t.Helper()
	return New(NewLocal(blob), zaptest.NewLogger(t))
}

func TestSave_AssignsIDAndContent(t *testing.T) {
	blob := &memBlob{}
	s := newLocalStore(t, blob)
	ctx := context.Background()

	saved, err := s.Save(ctx, model.Entry{
		Date:     "2024-03-01",
		Title:    "Fran",
		Sections: []model.Section{{ID: "s1", Title: "METCON", Content: "21-15-9"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "### METCON\n21-15-9", saved.Content)

	got, ok := s.GetByID(ctx, saved.ID)
	require.True(t, ok)
	require.Equal(t, saved.ID, got.ID)

	empty, err := s.Save(ctx, model.Entry{Date: "2024-03-01"})
	require.NoError(t, err)
	require.Equal(t, "", empty.Content)
	require.NotNil(t, empty.Sections)
	require.NotEqual(t, saved.ID, empty.ID)
}

func TestSave_OverwritesWholeDocument(t *testing.T) {
	blob := &memBlob{entries: []model.Entry{{ID: "a1", Date: "2024-03-01", Title: "old"}}}
	s := newLocalStore(t, blob)
	ctx := context.Background()

	_, err := s.Save(ctx, model.Entry{ID: "a1", Date: "2024-03-02", Title: "new"})
	require.NoError(t, err)
	require.Len(t, blob.entries, 1)
	require.Equal(t, "new", blob.entries[0].Title)

	require.Empty(t, s.ListByDate(ctx, "2024-03-01"))
	require.Len(t, s.ListByDate(ctx, "2024-03-02"), 1)
}

func TestListByDate_ExactMatch(t *testing.T) {
	blob := &memBlob{entries: []model.Entry{
		{ID: "a", Date: "2024-03-01"},
		{ID: "b", Date: "2024-03-01"},
		{ID: "c", Date: "2024-3-1"},
		{ID: "d", Date: "2024-03-02"},
	}}
	s := newLocalStore(t, blob)

	got := s.ListByDate(context.Background(), "2024-03-01")
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
	require.Len(t, s.ListAll(context.Background()), 4)
}

func TestReads_FailSoft(t *testing.T) {
	s := newLocalStore(t, &memBlob{readErr: errors.New("disk gone")})
	ctx := context.Background()

	all := s.ListAll(ctx)
	require.NotNil(t, all)
	require.Empty(t, all)
	require.Empty(t, s.ListByDate(ctx, "2024-03-01"))
	_, ok := s.GetByID(ctx, "x")
	require.False(t, ok)
}

func TestWrites_Propagate(t *testing.T) {
	boom := errors.New("disk full")
	s := newLocalStore(t, &memBlob{entries: []model.Entry{{ID: "a"}}, putErr: boom})
	ctx := context.Background()

	_, err := s.Save(ctx, model.Entry{Date: "2024-03-01"})
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Delete(ctx, "a"), boom)
}

func TestDelete_Idempotent(t *testing.T) {
	blob := &memBlob{entries: []model.Entry{{ID: "a"}, {ID: "b"}}}
	s := newLocalStore(t, blob)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	require.Equal(t, []model.Entry{{ID: "b"}}, blob.entries)

	_, ok := s.GetByID(ctx, "a")
	require.False(t, ok)
}

type notFoundBackend struct{ Local }

func (*notFoundBackend) Delete(context.Context, string) error { return errs.ErrNotFound }

func TestDelete_NotFoundIsSuccess(t *testing.T) {
	s := New(&notFoundBackend{}, nil)
	require.NoError(t, s.Delete(context.Background(), "x"))
}
