package convert

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/errs"
)

// FromStatus maps a gRPC status error returned by the server back to the
// matching errs sentinel. Errors without a known mapping are returned as is.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == wodv1.MsgBadCredentials {
			sentinel = errs.ErrUnauthorized
		} else {
			sentinel = errs.ErrUnauthenticated
		}
	case codes.ResourceExhausted:
		if st.Message() == wodv1.MsgQuotaExceeded {
			sentinel = errs.ErrQuotaExceeded
		} else {
			sentinel = errs.ErrRateLimited
		}
	case codes.AlreadyExists:
		sentinel = errs.ErrAlreadyExists
	case codes.NotFound:
		sentinel = errs.ErrNotFound
	case codes.InvalidArgument:
		switch st.Message() {
		case wodv1.MsgInvalidEmail:
			sentinel = errs.ErrInvalidEmail
		case wodv1.MsgWeakPassword:
			sentinel = errs.ErrWeakPassword
		}
	case codes.FailedPrecondition:
		if st.Message() == wodv1.MsgInvalidImport {
			sentinel = errs.ErrInvalidImport
		}
	}
	if sentinel == nil {
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
