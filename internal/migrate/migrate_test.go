package migrate

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/wodcal/migrations"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_users.sql", "00002_wods.sql"}, names)

	for _, n := range names {
		b, err := fs.ReadFile(migrations.FS, n)
		require.NoError(t, err)
		require.Contains(t, string(b), "-- +goose Up")
		require.Contains(t, string(b), "-- +goose Down")
	}
}
