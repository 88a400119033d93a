package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

var entryColNames = []string{"id", "date", "title", "content", "sections", "updated_at"}

func TestEntryRepo_List_All(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEntryRepo(db)
	uid := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`SELECT id, date, title, content, sections, updated_at FROM wods WHERE user_id=\$1 ORDER BY date DESC`).
		WithArgs(uid).
		WillReturnRows(pgxmock.NewRows(entryColNames).
			AddRow("b", "2024-03-02", "B", "### A\nx", []byte(`[{"id":"s1","title":"A","content":"x"}]`), now).
			AddRow("a", "2024-03-01", "A", "", []byte(`[]`), now))

	out, err := r.List(context.Background(), uid, "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "b", out[0].ID)
	require.Equal(t, []model.Section{{ID: "s1", Title: "A", Content: "x"}}, out[0].Sections)
	require.NotNil(t, out[1].Sections)
	require.Empty(t, out[1].Sections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_List_ByDate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEntryRepo(db)
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM wods WHERE user_id=\$1 AND date=\$2`).
		WithArgs(uid, "2024-03-01").
		WillReturnRows(pgxmock.NewRows(entryColNames))

	out, err := r.List(context.Background(), uid, "2024-03-01")
	require.NoError(t, err)
	require.Empty(t, out)

	mock.ExpectQuery(`FROM wods WHERE user_id=\$1 AND date=\$2`).
		WithArgs(uid, "2024-03-01").
		WillReturnError(errors.New("db down"))
	_, err = r.List(context.Background(), uid, "2024-03-01")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEntryRepo(db)
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM wods WHERE user_id=\$1 AND id=\$2`).
		WithArgs(uid, "a1").
		WillReturnRows(pgxmock.NewRows(entryColNames).
			AddRow("a1", "2024-03-01", "Fran", "", []byte(`[]`), time.Now()))
	e, err := r.Get(context.Background(), uid, "a1")
	require.NoError(t, err)
	require.Equal(t, "Fran", e.Title)

	mock.ExpectQuery(`FROM wods WHERE user_id=\$1 AND id=\$2`).
		WithArgs(uid, "zz").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(context.Background(), uid, "zz")
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`FROM wods WHERE user_id=\$1 AND id=\$2`).
		WithArgs(uid, "bad").
		WillReturnRows(pgxmock.NewRows(entryColNames).
			AddRow("bad", "2024-03-01", "", "", []byte(`{not json`), time.Now()))
	_, err = r.Get(context.Background(), uid, "bad")
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEntryRepo(db)
	uid := uuid.Must(uuid.NewV4())
	now := time.Now()

	in := model.Entry{ID: "a1", Date: "2024-03-01", Title: "T"}
	mock.ExpectQuery(`INSERT INTO wods .* ON CONFLICT \(user_id, id\) DO UPDATE .* RETURNING updated_at`).
		WithArgs(uid, "a1", "2024-03-01", "T", "", []byte(`[]`)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	out, err := r.Upsert(context.Background(), uid, in)
	require.NoError(t, err)
	require.Equal(t, now, out.UpdatedAt)
	require.NotNil(t, out.Sections)

	mock.ExpectQuery(`INSERT INTO wods`).
		WithArgs(uid, "a1", "2024-03-01", "T", "", []byte(`[]`)).
		WillReturnError(errors.New("write failed"))
	_, err = r.Upsert(context.Background(), uid, in)
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewEntryRepo(db)
	uid := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM wods WHERE user_id=\$1 AND id=\$2`).
		WithArgs(uid, "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, r.Delete(context.Background(), uid, "missing"))
	require.NoError(t, mock.ExpectationsWereMet())
}
