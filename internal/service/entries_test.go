package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
	"github.com/and161185/wodcal/internal/repository"
)

type fakeEntries struct {
	rows map[uuid.UUID]map[string]model.Entry

	err error
}

var _ repository.EntryRepository = (*fakeEntries)(nil)

func (f *fakeEntries) List(_ context.Context, userID uuid.UUID, date string) ([]model.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Entry{}
	for _, e := range f.rows[userID] {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeEntries) Get(_ context.Context, userID uuid.UUID, id string) (model.Entry, error) {
	if f.err != nil {
		return model.Entry{}, f.err
	}
	e, ok := f.rows[userID][id]
	if !ok {
		return model.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

func (f *fakeEntries) Upsert(_ context.Context, userID uuid.UUID, e model.Entry) (model.Entry, error) {
	if f.err != nil {
		return model.Entry{}, f.err
	}
	if f.rows == nil {
		f.rows = map[uuid.UUID]map[string]model.Entry{}
	}
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]model.Entry{}
	}
	e.UpdatedAt = time.Now()
	f.rows[userID][e.ID] = e
	return e, nil
}

func (f *fakeEntries) Delete(_ context.Context, userID uuid.UUID, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.rows[userID], id)
	return nil
}

func TestEntries_SaveAssignsIDsAndContent(t *testing.T) {
	t.Parallel()
	repo := &fakeEntries{}
	s := NewEntryService(repo)
	uid := uuid.Must(uuid.NewV4())

	saved, err := s.Save(context.Background(), uid, model.Entry{
		Date:     "2024-03-01",
		Title:    "Fran",
		Content:  "stale",
		Sections: []model.Section{{Title: "METCON", Content: "21-15-9"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.NotEmpty(t, saved.Sections[0].ID)
	require.Equal(t, "### METCON\n21-15-9", saved.Content)
	require.False(t, saved.UpdatedAt.IsZero())

	again, err := s.Save(context.Background(), uid, model.Entry{ID: saved.ID, Date: "2024-03-02", Title: "Fran v2"})
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)
	require.Equal(t, "", again.Content)
	require.NotNil(t, again.Sections)

	got, err := s.Get(context.Background(), uid, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Fran v2", got.Title)
}

func TestEntries_Validation(t *testing.T) {
	t.Parallel()
	s := NewEntryService(&fakeEntries{})
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	_, err := s.ListAll(ctx, uuid.Nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	_, err = s.ListByDate(ctx, uid, "")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	_, err = s.Get(ctx, uid, "")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	_, err = s.Save(ctx, uid, model.Entry{Title: "no date"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	require.ErrorIs(t, s.Delete(ctx, uid, ""), errs.ErrInvalidArgument)
}

func TestEntries_ListAndDelete(t *testing.T) {
	t.Parallel()
	repo := &fakeEntries{}
	s := NewEntryService(repo)
	ctx := context.Background()
	alice := uuid.Must(uuid.NewV4())
	bob := uuid.Must(uuid.NewV4())

	for _, d := range []string{"2024-03-01", "2024-03-05", "2024-03-01"} {
		_, err := s.Save(ctx, alice, model.Entry{Date: d})
		require.NoError(t, err)
	}
	_, err := s.Save(ctx, bob, model.Entry{Date: "2024-03-01"})
	require.NoError(t, err)

	all, err := s.ListAll(ctx, alice)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "2024-03-05", all[0].Date)

	day, err := s.ListByDate(ctx, alice, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, day, 2)

	require.NoError(t, s.Delete(ctx, alice, day[0].ID))
	require.NoError(t, s.Delete(ctx, alice, day[0].ID))
	day, err = s.ListByDate(ctx, alice, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, day, 1)

	_, err = s.Get(ctx, bob, day[0].ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	repo.err = errors.New("db down")
	require.Error(t, s.Delete(ctx, alice, "x"))
}
