package main

import (
	"context"
	"log/slog"
	"net"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	redisclient "github.com/KirkDiggler/pokeduel/internal/redis"
)

// storeService is the health entry tracking the backing store.
const storeService = "pokeduel.Store"

func newGRPCServer(healthServer *health.Server) *grpc.Server {
	logger := grpc_logging.LoggerFunc(logFunc)
	recoverPanic := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "Recovered from panic", "panic", p)
		return errors.Internal("internal error")
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recoverPanic),
			unaryErrorInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recoverPanic),
			streamErrorInterceptor,
		),
	)

	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)
	return srv
}

// serveGRPC serves on addr until ctx is done, then stops gracefully.
func serveGRPC(ctx context.Context, srv *grpc.Server, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen for health checks")
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Health server starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve health checks")
		}
	}()

	select {
	case <-ctx.Done():
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(30 * time.Second):
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Health server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// watchStore reports the store as not serving while pings fail.
func watchStore(ctx context.Context, client redisclient.Client, healthServer *health.Server, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, every/2)
		err := redisclient.Ping(pingCtx, client)
		cancel()

		status := grpc_health_v1.HealthCheckResponse_SERVING
		if err != nil && ctx.Err() == nil {
			slog.Warn("Store ping failed", "error", err)
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		healthServer.SetServingStatus(storeService, status)
		healthServer.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func unaryErrorInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	logInternal(ctx, err)
	return resp, errors.ToGRPCError(err)
}

func streamErrorInterceptor(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	logInternal(ss.Context(), err)
	return errors.ToGRPCError(err)
}

// logInternal records failures the client only sees as a bare status.
func logInternal(ctx context.Context, err error) {
	if errors.IsInternal(err) {
		slog.ErrorContext(ctx, "Request failed", "error", err)
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
