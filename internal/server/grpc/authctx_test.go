package grpcserver

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func TestOwnerContext(t *testing.T) {
	t.Parallel()

	_, ok := OwnerFrom(context.Background())
	require.False(t, ok)

	want := uuid.Must(uuid.NewV4())
	got, ok := OwnerFrom(WithOwner(context.Background(), want))
	require.True(t, ok)
	require.Equal(t, want, got)

	_, ok = OwnerFrom(WithOwner(context.Background(), uuid.Nil))
	require.False(t, ok, "nil id counts as anonymous")

	bad := context.WithValue(context.Background(), ownerKey{}, "not-a-uuid")
	_, ok = OwnerFrom(bad)
	require.False(t, ok)
}
