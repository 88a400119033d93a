package limiter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRow struct{ scan func(dest ...any) error }

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakePool struct {
	qrErr         error
	qrBlockedTill *time.Time
	qrFailsRet    int

	execSQL []string
	execErr error
}

func (f *fakePool) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakePool) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	switch {
	case strings.Contains(sql, "SELECT blocked_until"):
		return fakeRow{scan: func(dest ...any) error {
			if f.qrErr != nil {
				return f.qrErr
			}
			*(dest[0].(*time.Time)) = time.Time{}
			if f.qrBlockedTill != nil {
				*(dest[0].(*time.Time)) = *f.qrBlockedTill
			}
			*(dest[1].(*time.Time)) = time.Now()
			return nil
		}}
	case strings.Contains(sql, "RETURNING fail_count"):
		return fakeRow{scan: func(dest ...any) error {
			if f.qrErr != nil {
				return f.qrErr
			}
			*(dest[0].(*int)) = f.qrFailsRet
			return nil
		}}
	default:
		return fakeRow{scan: func(...any) error { return errors.New("unexpected query") }}
	}
}

func newPG(fp *fakePool) *PG { return NewPGWithQuerier(fp, 15*time.Minute, 5, 10*time.Minute) }

func TestAllow(t *testing.T) {
	ctx := context.Background()

	ok, dur, err := newPG(&fakePool{qrErr: pgx.ErrNoRows}).Allow(ctx, "a@b.c", []byte("h"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, dur)

	past := time.Now().Add(-time.Minute)
	ok, _, err = newPG(&fakePool{qrBlockedTill: &past}).Allow(ctx, "a@b.c", []byte("h"))
	require.NoError(t, err)
	require.True(t, ok)

	future := time.Now().Add(5 * time.Minute)
	ok, dur, err = newPG(&fakePool{qrBlockedTill: &future}).Allow(ctx, "a@b.c", []byte("h"))
	require.NoError(t, err)
	require.False(t, ok)
	require.Greater(t, dur, 4*time.Minute)

	ok, _, err = newPG(&fakePool{qrErr: errors.New("db boom")}).Allow(ctx, "a@b.c", []byte("h"))
	require.Error(t, err)
	require.False(t, ok)
}

func TestSuccess(t *testing.T) {
	fp := &fakePool{}
	require.NoError(t, newPG(fp).Success(context.Background(), "a@b.c", []byte("h")))
	require.Len(t, fp.execSQL, 1)
	require.Contains(t, fp.execSQL[0], "INSERT INTO login_attempts")

	fp = &fakePool{execErr: errors.New("exec fail")}
	require.Error(t, newPG(fp).Success(context.Background(), "a@b.c", []byte("h")))
}

func TestFailure(t *testing.T) {
	ctx := context.Background()

	fp := &fakePool{qrFailsRet: 2}
	blocked, dur, err := newPG(fp).Failure(ctx, "a@b.c", []byte("h"))
	require.NoError(t, err)
	require.False(t, blocked)
	require.Zero(t, dur)
	require.Empty(t, fp.execSQL)

	fp = &fakePool{qrFailsRet: 5}
	blocked, dur, err = newPG(fp).Failure(ctx, "a@b.c", []byte("h"))
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, 10*time.Minute, dur)
	require.Len(t, fp.execSQL, 1)
	require.Contains(t, fp.execSQL[0], "UPDATE login_attempts SET blocked_until")

	_, _, err = newPG(&fakePool{qrErr: errors.New("query error")}).Failure(ctx, "a@b.c", []byte("h"))
	require.Error(t, err)
}

func TestHashIP_IgnoresPort(t *testing.T) {
	a := HashIP("1.2.3.4:123")
	b := HashIP("1.2.3.4:999")
	c := HashIP("5.6.7.8:123")
	require.Len(t, a, 32)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Equal(t, HashIP("bufconn"), HashIP("bufconn"))
}

func TestNop(t *testing.T) {
	var l Limiter = Nop{}
	ok, _, err := l.Allow(context.Background(), "x", nil)
	require.NoError(t, err)
	require.True(t, ok)
	blocked, _, err := l.Failure(context.Background(), "x", nil)
	require.NoError(t, err)
	require.False(t, blocked)
}
