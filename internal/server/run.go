package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

// NewGRPCServer builds a gRPC server carrying ReportService, health and
// reflection.
func NewGRPCServer(parser Parser, reader repository.ReportReader, logger *slog.Logger) (*grpc.Server, *health.Server) {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(RequestIDInterceptor(logger)))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(gs)

	RegisterReportServiceServer(gs, NewReportService(parser, reader, logger))
	return gs, hs
}

// Run serves gRPC and HTTP until ctx is done, then stops both gracefully.
func Run(ctx context.Context, cfg common.ServerConfig, parser Parser, reader repository.ReportReader, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	gs, hs := NewGRPCServer(parser, reader, logger)
	hsrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(parser, reader, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return common.WrapError(err, "grpc listen")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC serving", "addr", cfg.GRPCAddr)
		return gs.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("HTTP serving", "addr", cfg.HTTPAddr)
		if err := hsrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		hs.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hsrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful http shutdown failed", "error", err)
			_ = hsrv.Close()
		}
		gs.GracefulStop()
		return nil
	})
	return g.Wait()
}
