package grpcserver

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
)

// LoggingUnary returns a unary server interceptor for structured logging.
// Payloads are never logged, only call metadata.
func LoggingUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", remoteIP(ctx)),
		}
		if id, ok := OwnerFrom(ctx); ok {
			fields = append(fields, zap.String("user", id.String()))
		}
		log.Info("grpc", fields...)
		return resp, err
	}
}

// RecoverUnary returns a unary server interceptor that recovers from panics.
func RecoverUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("method", info.FullMethod),
				)
				err = status.Error(codes.Internal, "internal")
			}
		}()
		return next(ctx, req)
	}
}

// protected reports whether method belongs to the calendar service and needs
// a bearer token. Health and reflection are served to anyone.
func protected(method string) bool {
	return strings.HasPrefix(method, "/"+wodv1.ServiceName+"/") && !wodv1.PublicMethods[method]
}

// AuthUnary resolves the bearer token of every protected calendar method into
// the request context. Calls without a valid token fail with Unauthenticated.
func AuthUnary(signKey []byte) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !protected(info.FullMethod) {
			return next(ctx, req)
		}
		id, err := userIDFromMD(ctx, signKey)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, wodv1.MsgNoAuth)
		}
		return next(WithOwner(ctx, id), req)
	}
}
