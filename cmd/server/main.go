// Command pg-server serves the PassGen API over HTTP and gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/and161185/goph-passgen/internal/config"
	"github.com/and161185/goph-passgen/internal/crypto"
	"github.com/and161185/goph-passgen/internal/generator"
	"github.com/and161185/goph-passgen/internal/history"
	"github.com/and161185/goph-passgen/internal/limiter"
	"github.com/and161185/goph-passgen/internal/metrics"
	"github.com/and161185/goph-passgen/internal/rpc"
	grpcserver "github.com/and161185/goph-passgen/internal/server/grpc"
	httpserver "github.com/and161185/goph-passgen/internal/server/http"
	"github.com/and161185/goph-passgen/internal/service"
	"github.com/and161185/goph-passgen/internal/session"
	"github.com/and161185/goph-passgen/internal/strength"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// limiterIdle drops per-client buckets nobody touched for this long.
const limiterIdle = 10 * time.Minute

// main loads configuration, wires the service and runs both transports until a signal arrives.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	// Flags override env
	flag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (empty disables)")
	flag.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address (empty disables)")
	flag.StringVar(&cfg.SessionKey, "session-key", cfg.SessionKey, "HS256 session signing key (random when empty)")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session token TTL")
	flag.StringVar(&cfg.TLSCert, "tls-cert", cfg.TLSCert, "TLS certificate (PEM)")
	flag.StringVar(&cfg.TLSKey, "tls-key", cfg.TLSKey, "TLS private key (PEM)")
	flag.Float64Var(&cfg.RatePerSec, "rate", cfg.RatePerSec, "requests per second per client")
	flag.IntVar(&cfg.RateBurst, "burst", cfg.RateBurst, "rate limiter burst")
	flag.BoolVar(&cfg.HistoryDedup, "history-dedup", cfg.HistoryDedup, "drop duplicate history entries")
	flag.DurationVar(&cfg.HistoryIdleTTL, "history-idle", cfg.HistoryIdleTTL, "drop histories idle for this long")
	flag.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "take client IPs from X-Forwarded-For (behind a proxy only)")
	flag.BoolVar(&cfg.Dev, "dev", cfg.Dev, "enable server reflection (dev only)")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("http", cfg.HTTPAddr),
		zap.String("grpc", cfg.GRPCAddr),
		zap.Bool("tls", cfg.TLSEnabled()),
	)

	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		if sessionKey, err = crypto.RandBytes(32); err != nil {
			logger.Fatal("session key", zap.Error(err))
		}
		logger.Warn("no session key configured; sessions will not survive a restart")
	}
	fpKey, err := crypto.RandBytes(32)
	if err != nil {
		logger.Fatal("fingerprint key", zap.Error(err))
	}

	iss, err := session.NewIssuer(sessionKey, cfg.SessionTTL)
	if err != nil {
		logger.Fatal("session issuer", zap.Error(err))
	}
	lim := limiter.NewMemory(cfg.RatePerSec, cfg.RateBurst, limiterIdle)

	hist := history.NewRegistry(cfg.HistoryIdleTTL, history.WithDedup(cfg.HistoryDedup))
	metrics.TrackSessions(hist.Len)

	// Services
	svc := service.NewPassService(
		generator.New(),
		strength.Default(),
		iss,
		hist,
		crypto.NewFingerprinter(fpKey),
		logger,
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	var shutdowns []func(context.Context)

	if cfg.GRPCAddr != "" {
		opts := []grpc.ServerOption{grpcserver.UnaryChain(logger, lim, iss)}
		if cfg.TLSEnabled() {
			creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
			if err != nil {
				logger.Fatal("failed to load TLS cert/key", zap.Error(err))
			}
			opts = append(opts, grpc.Creds(creds))
		}
		s := grpc.NewServer(opts...)
		rpc.RegisterPassGenServer(s, grpcserver.New(svc))

		// Health & reflection (dev)
		hs := health.NewServer()
		hs.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(s, hs)
		if cfg.Dev {
			reflection.Register(s)
		}

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatal("listen grpc", zap.Error(err))
		}
		go func() {
			logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr), zap.Bool("tls", cfg.TLSEnabled()))
			errCh <- s.Serve(lis)
		}()
		shutdowns = append(shutdowns, func(ctx context.Context) {
			hs.Shutdown()
			done := make(chan struct{})
			go func() {
				s.GracefulStop()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				s.Stop()
			}
		})
	}

	if cfg.HTTPAddr != "" {
		hsrv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpserver.New(svc, iss, lim, logger, httpserver.WithTrustProxy(cfg.TrustProxy)),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		go func() {
			logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
			if err := hsrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		shutdowns = append(shutdowns, func(ctx context.Context) {
			if err := hsrv.Shutdown(ctx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		})
	}

	// Wait for stop
	failed := false
	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		failed = true
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	var wg sync.WaitGroup
	for _, fn := range shutdowns {
		wg.Add(1)
		go func(fn func(context.Context)) {
			defer wg.Done()
			fn(sctx)
		}(fn)
	}
	wg.Wait()
	logger.Info("shutdown complete")
	if failed {
		_ = logger.Sync()
		os.Exit(1)
	}
}
