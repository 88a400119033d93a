package grpcserver

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// ownerKey marks the account that owns every entry touched by a call.
type ownerKey struct{}

// WithOwner scopes ctx to the calendar of account id.
func WithOwner(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, id)
}

// OwnerFrom returns the account the call was authenticated as.
// Anonymous calls (public methods, uuid.Nil) report false.
func OwnerFrom(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(ownerKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}
