// Command wodcal-server starts the WodCalendar gRPC server.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/config"
	"github.com/and161185/wodcal/internal/importer"
	"github.com/and161185/wodcal/internal/limiter"
	"github.com/and161185/wodcal/internal/migrate"
	"github.com/and161185/wodcal/internal/repository/postgres"
	grpcserver "github.com/and161185/wodcal/internal/server/grpc"
	"github.com/and161185/wodcal/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the gRPC API until signalled.
func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.Bool("dev", cfg.Dev),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var opts []grpc.ServerOption
	if cfg.UseTLS() {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLS.Cert, cfg.TLS.Key)
		if err != nil {
			return err
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		logger.Warn("serving without TLS (dev mode)")
	}

	if err := migrate.Up(ctx, cfg.DSN); err != nil {
		return err
	}
	if cfg.MigrateStatus {
		return migrate.Status(ctx, cfg.DSN)
	}

	db, err := postgres.Open(ctx, cfg.DSN, cfg.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	entryRepo := postgres.NewEntryRepo(db)
	lim := limiter.NewPG(db.Raw(), cfg.Limiter.Window, cfg.Limiter.MaxFails, cfg.Limiter.BlockFor)

	signKey := []byte(cfg.JWTKey)
	authSvc := service.NewAuthService(userRepo, signKey, cfg.AccessTTL, lim)
	entrySvc := service.NewEntryService(entryRepo)

	var importSvc service.ImportService
	if cfg.AI.APIKey != "" {
		ai, err := importer.New(ctx, cfg.AI.APIKey, cfg.AI.Model, logger.Named("importer"))
		if err != nil {
			return err
		}
		importSvc = service.NewImportService(ai)
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI import disabled")
	}

	opts = append(opts, grpc.ChainUnaryInterceptor(
		grpcserver.RecoverUnary(logger),
		grpcserver.AuthUnary(signKey),
		grpcserver.LoggingUnary(logger),
	))
	s := grpc.NewServer(opts...)
	wodv1.RegisterWodCalendarServer(s, grpcserver.New(authSvc, entrySvc, importSvc, signKey))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(wodv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	if cfg.Dev {
		reflection.Register(s)
	}

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.UseTLS()))
		if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		hs.Shutdown()
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.Stop()
		}
		return nil
	})
	return g.Wait()
}
