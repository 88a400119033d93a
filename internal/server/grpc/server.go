// Package grpcserver exposes the WodCalendar gRPC API handlers.
package grpcserver

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/convert"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/service"
)

// Server wires services into gRPC handlers.
type Server struct {
	wodv1.UnimplementedWodCalendarServer
	auth    service.AuthService
	entries service.EntryService
	imports service.ImportService
	signKey []byte
}

// New constructs a gRPC server with injected services. imports may be nil
// when no AI provider is configured; the import methods then answer Unavailable.
func New(auth service.AuthService, entries service.EntryService, imports service.ImportService, signKey []byte) *Server {
	return &Server{auth: auth, entries: entries, imports: imports, signKey: signKey}
}

func remoteIP(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

// userID prefers the id resolved by AuthUnary and falls back to the raw
// metadata, so handlers stay safe when mounted without the interceptor.
func (s *Server) userID(ctx context.Context) (uuid.UUID, error) {
	if id, ok := OwnerFrom(ctx); ok {
		return id, nil
	}
	id, err := userIDFromMD(ctx, s.signKey)
	if err != nil {
		return uuid.Nil, status.Error(codes.Unauthenticated, wodv1.MsgNoAuth)
	}
	return id, nil
}

// toStatus maps service errors to gRPC status errors.
func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, wodv1.MsgBadCredentials)
	case errors.Is(err, errs.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, wodv1.MsgNoAuth)
	case errors.Is(err, errs.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, wodv1.MsgRateLimited)
	case errors.Is(err, errs.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, wodv1.MsgQuotaExceeded)
	case errors.Is(err, errs.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, wodv1.MsgAlreadyExists)
	case errors.Is(err, errs.ErrInvalidEmail):
		return status.Error(codes.InvalidArgument, wodv1.MsgInvalidEmail)
	case errors.Is(err, errs.ErrWeakPassword):
		return status.Error(codes.InvalidArgument, wodv1.MsgWeakPassword)
	case errors.Is(err, errs.ErrNotFound):
		return status.Error(codes.NotFound, wodv1.MsgNotFound)
	case errors.Is(err, errs.ErrInvalidImport):
		return status.Error(codes.FailedPrecondition, wodv1.MsgInvalidImport)
	case errors.Is(err, errs.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, op+": canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op+": deadline exceeded")
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// --- Auth ---

// Register creates a new user account.
func (s *Server) Register(ctx context.Context, req *wodv1.RegisterRequest) (*wodv1.RegisterResponse, error) {
	if req.GetEmail() == "" || req.GetPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty email/password")
	}
	userID, err := s.auth.Register(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, toStatus("register", err)
	}
	return &wodv1.RegisterResponse{UserID: userID}, nil
}

// Login authenticates a user and returns an access token.
func (s *Server) Login(ctx context.Context, req *wodv1.LoginRequest) (*wodv1.LoginResponse, error) {
	if req.GetEmail() == "" || req.GetPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty email/password")
	}
	tok, u, err := s.auth.LoginWithIP(ctx, req.GetEmail(), req.GetPassword(), remoteIP(ctx))
	if err != nil {
		return nil, toStatus("login", err)
	}
	return convert.ToWireLogin(tok, u), nil
}

// --- Entries ---

// ListEntries returns all entries of the caller, or those on req.Date.
func (s *Server) ListEntries(ctx context.Context, req *wodv1.ListEntriesRequest) (*wodv1.ListEntriesResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	var out []*wodv1.Entry
	if d := req.GetDate(); d != "" {
		es, err := s.entries.ListByDate(ctx, userID, d)
		if err != nil {
			return nil, toStatus("list entries", err)
		}
		out = convert.ToWireEntries(es)
	} else {
		es, err := s.entries.ListAll(ctx, userID)
		if err != nil {
			return nil, toStatus("list entries", err)
		}
		out = convert.ToWireEntries(es)
	}
	return &wodv1.ListEntriesResponse{Entries: out}, nil
}

// GetEntry returns a single entry by id.
func (s *Server) GetEntry(ctx context.Context, req *wodv1.GetEntryRequest) (*wodv1.GetEntryResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetID() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty id")
	}
	e, err := s.entries.Get(ctx, userID, req.GetID())
	if err != nil {
		return nil, toStatus("get entry", err)
	}
	return &wodv1.GetEntryResponse{Entry: convert.ToWireEntry(e)}, nil
}

// SaveEntry creates or overwrites an entry.
func (s *Server) SaveEntry(ctx context.Context, req *wodv1.SaveEntryRequest) (*wodv1.SaveEntryResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetEntry() == nil {
		return nil, status.Error(codes.InvalidArgument, "empty entry")
	}
	saved, err := s.entries.Save(ctx, userID, convert.FromWireEntry(req.GetEntry()))
	if err != nil {
		return nil, toStatus("save entry", err)
	}
	return &wodv1.SaveEntryResponse{Entry: convert.ToWireEntry(saved)}, nil
}

// DeleteEntry removes an entry. Deleting a missing entry succeeds.
func (s *Server) DeleteEntry(ctx context.Context, req *wodv1.DeleteEntryRequest) (*wodv1.DeleteEntryResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetID() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty id")
	}
	if err := s.entries.Delete(ctx, userID, req.GetID()); err != nil {
		return nil, toStatus("delete entry", err)
	}
	return &wodv1.DeleteEntryResponse{}, nil
}

// --- AI import ---

// ParseContent converts raw content into sections through the AI importer.
func (s *Server) ParseContent(ctx context.Context, req *wodv1.ParseContentRequest) (*wodv1.ParseContentResponse, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}
	if s.imports == nil {
		return nil, status.Error(codes.Unavailable, "ai import not configured")
	}
	res, err := s.imports.Parse(ctx, req.GetContent(), req.GetMediaType())
	if err != nil {
		return nil, toStatus("parse content", err)
	}
	return convert.ToWireImport(res), nil
}

// GenerateWod writes a new workout from an optional prompt.
func (s *Server) GenerateWod(ctx context.Context, req *wodv1.GenerateWodRequest) (*wodv1.GenerateWodResponse, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}
	if s.imports == nil {
		return nil, status.Error(codes.Unavailable, "ai import not configured")
	}
	txt, err := s.imports.Generate(ctx, req.GetPrompt())
	if err != nil {
		return nil, toStatus("generate wod", err)
	}
	return &wodv1.GenerateWodResponse{Text: txt}, nil
}
