package localstate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/wodcal/internal/model"
)

func TestEntries_MissingIsEmpty(t *testing.T) {
	st := Open(t.TempDir())

	got, err := st.Entries()
	require.NoError(t, err)
	require.Empty(t, got)

	in := []model.Entry{{ID: "a1", Date: "2024-03-01", Content: "old"}, {ID: "a2", Date: "2024-03-02"}}
	require.NoError(t, st.SetEntries(in))

	got, err = st.Entries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a1", got[0].ID)
	require.Equal(t, "old", got[0].Content)
}

func TestEntries_ReadsLegacyBlob(t *testing.T) {
	dir := t.TempDir()
	blob := `[{"id":"a1","date":"2024-03-01","title":"T","content":"5 rounds","sections":[]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyEntries), []byte(blob), 0o600))

	got, err := Open(dir).Entries()
	require.NoError(t, err)
	require.Equal(t, []model.Entry{{ID: "a1", Date: "2024-03-01", Title: "T", Content: "5 rounds", Sections: []model.Section{}}}, got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyEntries), []byte("{broken"), 0o600))
	_, err = Open(dir).Entries()
	require.Error(t, err)
}

func TestMigratedMarker(t *testing.T) {
	st := Open(t.TempDir())

	ok, err := st.Migrated()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.MarkMigrated())
	ok, err = st.Migrated()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.ResetMigrated())
	require.NoError(t, st.ResetMigrated())
	ok, _ = st.Migrated()
	require.False(t, ok)
}

func TestSession(t *testing.T) {
	st := Open(t.TempDir())

	_, ok, err := st.Session()
	require.NoError(t, err)
	require.False(t, ok)

	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, st.SetSession(Session{UserID: "u1", Email: "a@box.com", Token: "t", ExpiresAt: exp}))

	got, ok, err := st.Session()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a@box.com", got.Email)
	require.True(t, exp.Equal(got.ExpiresAt))
	require.True(t, got.Valid(time.Now()))
	require.False(t, got.Valid(exp.Add(time.Second)))
	require.False(t, Session{}.Valid(time.Now()))

	require.NoError(t, st.ClearSession())
	_, ok, _ = st.Session()
	require.False(t, ok)
}
