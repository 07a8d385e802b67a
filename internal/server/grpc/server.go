// Package grpcserver exposes the PassGen gRPC API handlers.
package grpcserver

import (
	"context"
	"errors"
	"net"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/and161185/goph-passgen/internal/api"
	"github.com/and161185/goph-passgen/internal/convert"
	"github.com/and161185/goph-passgen/internal/errs"
	"github.com/and161185/goph-passgen/internal/rpc"
	"github.com/and161185/goph-passgen/internal/service"
)

var errNoBearer = errors.New("no bearer token")

// Server wires the pass service into gRPC handlers.
type Server struct {
	rpc.UnimplementedPassGenServer
	svc service.PassService
}

// New constructs a gRPC server with an injected service.
func New(svc service.PassService) *Server {
	return &Server{svc: svc}
}

// Generate creates a credential; it is recorded when the call carries a session.
func (s *Server) Generate(ctx context.Context, req *api.GenerateRequest) (*api.GenerateResponse, error) {
	cfg, err := convert.FromGenerateRequest(*req)
	if err != nil {
		return nil, toStatus(err, "generate")
	}
	sid, _ := SessionIDFromCtx(ctx)
	g, err := s.svc.Generate(ctx, sid, cfg)
	if err != nil {
		return nil, toStatus(err, "generate")
	}
	resp := convert.ToGenerateResponse(g)
	return &resp, nil
}

// Evaluate scores a caller-supplied password.
func (s *Server) Evaluate(ctx context.Context, req *api.EvaluateRequest) (*api.StrengthReport, error) {
	r := convert.ToStrengthReport(s.svc.Evaluate(ctx, req.Password))
	return &r, nil
}

// NewSession issues a session token.
func (s *Server) NewSession(ctx context.Context, _ *api.SessionRequest) (*api.SessionResponse, error) {
	tok, err := s.svc.NewSession(ctx)
	if err != nil {
		return nil, toStatus(err, "new session")
	}
	resp := convert.ToSessionResponse(tok)
	return &resp, nil
}

// ListHistory returns the caller's history, newest first.
func (s *Server) ListHistory(ctx context.Context, _ *api.HistoryRequest) (*api.HistoryResponse, error) {
	sid, ok := SessionIDFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	items, err := s.svc.History(ctx, sid)
	if err != nil {
		return nil, toStatus(err, "history")
	}
	resp := convert.ToHistoryResponse(items)
	return &resp, nil
}

// ClearHistory empties the caller's history.
func (s *Server) ClearHistory(ctx context.Context, _ *api.HistoryRequest) (*api.ClearHistoryResponse, error) {
	sid, ok := SessionIDFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	if err := s.svc.ClearHistory(ctx, sid); err != nil {
		return nil, toStatus(err, "clear history")
	}
	return &api.ClearHistoryResponse{}, nil
}

func toStatus(err error, op string) error {
	var ce *errs.ConfigError
	switch {
	case errors.As(err, &ce):
		return status.Errorf(codes.InvalidArgument, "%s: %s", ce.Kind, ce.Msg)
	case errors.Is(err, errs.ErrInvalidConfig):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, errs.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "rate limited")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

func remoteIP(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

// peerHost is remoteIP without the port.
func peerHost(ctx context.Context) string {
	addr := remoteIP(ctx)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func bearerTokenFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errNoBearer
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", errNoBearer
	}
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
			t := strings.TrimSpace(v[7:])
			if t != "" {
				return t, nil
			}
		}
	}
	return "", errors.New("malformed authorization")
}

var _ rpc.PassGenServer = (*Server)(nil)
