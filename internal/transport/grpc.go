package transport

import (
	"context"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/goodnatureofminers/farmmarket-backend/internal/clock"
)

// ServiceName is the gRPC health service name reported next to the server-wide status.
const ServiceName = "farmmarket.API"

// NewGRPCServer builds a gRPC server carrying the standard health service and
// reflection, instrumented with recovery, tags, metrics and logging.
func NewGRPCServer(logger *zap.Logger) (*grpc.Server, *health.Server) {
	unary := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcRecovery.StreamServerInterceptor(),
		grpcCtxTags.StreamServerInterceptor(),
		grpcPrometheus.StreamServerInterceptor,
		grpcZap.StreamServerInterceptor(logger),
	}
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(stream...)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(server)

	return server, hs
}

type HealthStatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// HealthReporter drives the gRPC serving status from database pings.
type HealthReporter struct {
	checker     HealthChecker
	status      HealthStatusSetter
	interval    time.Duration
	pingTimeout time.Duration
	sleep       func(context.Context, time.Duration) error
	logger      *zap.Logger
}

func NewHealthReporter(checker HealthChecker, status HealthStatusSetter, interval time.Duration, logger *zap.Logger) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthReporter{
		checker:     checker,
		status:      status,
		interval:    interval,
		pingTimeout: interval,
		sleep:       clock.SleepWithContext,
		logger:      logger,
	}
}

// Run reports health until ctx is cancelled and then marks the server as not serving.
func (r *HealthReporter) Run(ctx context.Context) error {
	defer r.set(healthpb.HealthCheckResponse_NOT_SERVING)

	serving := false
	for {
		ok := r.check(ctx)
		if ok != serving {
			r.logger.Info("health status changed", zap.Bool("serving", ok))
			serving = ok
		}
		if err := r.sleep(ctx, r.interval); err != nil {
			return err
		}
	}
}

func (r *HealthReporter) check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, r.pingTimeout)
	defer cancel()

	if err := r.checker.Ping(pingCtx); err != nil {
		r.logger.Warn("database ping failed", zap.Error(err))
		r.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}
	r.set(healthpb.HealthCheckResponse_SERVING)
	return true
}

func (r *HealthReporter) set(status healthpb.HealthCheckResponse_ServingStatus) {
	r.status.SetServingStatus("", status)
	r.status.SetServingStatus(ServiceName, status)
}
