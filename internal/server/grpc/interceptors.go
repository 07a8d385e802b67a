package grpcserver

import (
	"context"
	"errors"
	"math"
	"runtime/debug"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/and161185/goph-passgen/internal/limiter"
	"github.com/and161185/goph-passgen/internal/metrics"
	"github.com/and161185/goph-passgen/internal/session"
)

// UnaryChain is the server interceptor chain: recover, logging, rate limit, session.
// Logging sits outside the rejecting interceptors so refused calls are logged too.
func UnaryChain(log *zap.Logger, lim limiter.Limiter, iss *session.Issuer) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		RecoverUnary(log),
		LoggingUnary(log),
		RateLimitUnary(lim, log),
		SessionUnary(iss),
	)
}

// LoggingUnary returns a unary server interceptor for structured logging.
func LoggingUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)

		// metadata only, never payloads: they carry credentials
		log.Info("grpc",
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", remoteIP(ctx)),
		)
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

// RateLimitUnary rejects calls over the per-peer budget with ResourceExhausted.
func RateLimitUnary(lim limiter.Limiter, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		ok, retry, err := lim.Allow(ctx, limiter.HashIP(peerHost(ctx)))
		if err != nil {
			log.Warn("rate limiter failed", zap.Error(err))
			return next(ctx, req)
		}
		if !ok {
			metrics.RateLimitedTotal.WithLabelValues("grpc").Inc()
			_ = grpc.SetHeader(ctx, metadata.Pairs("retry-after", strconv.Itoa(int(math.Ceil(retry.Seconds())))))
			return nil, status.Error(codes.ResourceExhausted, "rate limited")
		}
		return next(ctx, req)
	}
}

// SessionUnary resolves an optional bearer session token into the context.
// A present but invalid token is rejected with Unauthenticated.
func SessionUnary(iss *session.Issuer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		tok, err := bearerTokenFromMD(ctx)
		if errors.Is(err, errNoBearer) {
			return next(ctx, req)
		}
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad authorization")
		}
		id, err := iss.Parse(tok)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid session")
		}
		return next(WithSessionID(ctx, id), req)
	}
}
