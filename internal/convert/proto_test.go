package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

func TestEntryRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e := model.Entry{
		ID:    "a1",
		Date:  "2024-03-01",
		Title: "Fran",
		Sections: []model.Section{
			{ID: "s1", Title: "WARM UP", Content: "row"},
			{ID: "s2", Title: "METCON", Content: "21-15-9"},
		},
		UpdatedAt: now,
	}
	e = e.WithLegacyContent()

	w := ToWireEntry(e)
	require.Equal(t, "a1", w.ID)
	require.Len(t, w.Sections, 2)
	require.NotNil(t, w.UpdatedAt)

	back := FromWireEntry(w)
	require.Equal(t, e.ID, back.ID)
	require.Equal(t, e.Content, back.Content)
	require.Equal(t, e.Sections, back.Sections)
	require.True(t, now.Equal(back.UpdatedAt))
}

func TestToWireEntry_ZeroTimeIsNil(t *testing.T) {
	w := ToWireEntry(model.Entry{ID: "x"})
	require.Nil(t, w.UpdatedAt)
	require.NotNil(t, w.Sections)
	require.True(t, FromWireEntry(w).UpdatedAt.IsZero())
}

func TestFromWireEntries_SkipsNil(t *testing.T) {
	out := FromWireEntries([]*wodv1.Entry{nil, {ID: "b"}, nil})
	require.Len(t, out, 1)
	require.Equal(t, "b", out[0].ID)
	require.Equal(t, model.Entry{}, FromWireEntry(nil))
}

func TestFromWireImport_KeepsMissingSectionsNil(t *testing.T) {
	r := FromWireImport(&wodv1.ParseContentResponse{Title: "T"})
	require.Equal(t, "T", r.Title)
	require.Nil(t, r.Sections)

	r = FromWireImport(&wodv1.ParseContentResponse{Sections: []*wodv1.ImportSection{{Title: "A", Content: "x"}, nil}})
	require.Equal(t, []model.ImportSection{{Title: "A", Content: "x"}}, r.Sections)

	w := ToWireImport(model.ImportResult{Title: "T", Sections: []model.ImportSection{{Title: "A"}}})
	require.Len(t, w.Sections, 1)
}

func TestFromStatus(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"bad creds", status.Error(codes.Unauthenticated, wodv1.MsgBadCredentials), errs.ErrUnauthorized},
		{"no auth", status.Error(codes.Unauthenticated, wodv1.MsgNoAuth), errs.ErrUnauthenticated},
		{"rate", status.Error(codes.ResourceExhausted, wodv1.MsgRateLimited), errs.ErrRateLimited},
		{"quota", status.Error(codes.ResourceExhausted, wodv1.MsgQuotaExceeded), errs.ErrQuotaExceeded},
		{"exists", status.Error(codes.AlreadyExists, wodv1.MsgAlreadyExists), errs.ErrAlreadyExists},
		{"email", status.Error(codes.InvalidArgument, wodv1.MsgInvalidEmail), errs.ErrInvalidEmail},
		{"weak", status.Error(codes.InvalidArgument, wodv1.MsgWeakPassword), errs.ErrWeakPassword},
		{"not found", status.Error(codes.NotFound, wodv1.MsgNotFound), errs.ErrNotFound},
		{"import", status.Error(codes.FailedPrecondition, wodv1.MsgInvalidImport), errs.ErrInvalidImport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, FromStatus(tc.in), tc.want)
		})
	}

	require.NoError(t, FromStatus(nil))

	internal := status.Error(codes.Internal, "boom")
	require.Equal(t, internal, FromStatus(internal))

	plain := errors.New("plain")
	require.Equal(t, plain, FromStatus(plain))
}
