package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/catalog"
	"github.com/goodnatureofminers/farmmarket-backend/internal/logging"
	"github.com/goodnatureofminers/farmmarket-backend/internal/metrics"
	"github.com/goodnatureofminers/farmmarket-backend/internal/repository/postgres"
	"github.com/goodnatureofminers/farmmarket-backend/internal/service"
	"github.com/goodnatureofminers/farmmarket-backend/internal/solana"
	"github.com/goodnatureofminers/farmmarket-backend/internal/transport"
	"github.com/goodnatureofminers/farmmarket-backend/pkg/keylock"
)

type config struct {
	PostgresDSN       string         `long:"postgres-dsn" env:"API_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	PostgresMaxOpen   int            `long:"postgres-max-open-conns" env:"API_POSTGRES_MAX_OPEN_CONNS" description:"max open connections" default:"20"`
	PostgresMaxIdle   int            `long:"postgres-max-idle-conns" env:"API_POSTGRES_MAX_IDLE_CONNS" description:"max idle connections" default:"5"`
	PostgresMaxLife   time.Duration  `long:"postgres-conn-max-lifetime" env:"API_POSTGRES_CONN_MAX_LIFETIME" description:"connection lifetime" default:"30m"`
	Addr              string         `long:"addr" env:"API_ADDR" description:"REST listen address" default:":5000"`
	GRPCAddr          string         `long:"grpc-addr" env:"API_GRPC_ADDR" description:"gRPC health listen address" default:":5001"`
	RequestTimeout    time.Duration  `long:"request-timeout" env:"API_REQUEST_TIMEOUT" description:"per request deadline" default:"15s"`
	RateLimitRPS      float64        `long:"rate-limit-rps" env:"API_RATE_LIMIT_RPS" description:"requests per second per client, 0 disables" default:"20"`
	RateLimitBurst    int            `long:"rate-limit-burst" env:"API_RATE_LIMIT_BURST" description:"rate limiter burst" default:"40"`
	AdminJWTSecret    string         `long:"admin-jwt-secret" env:"API_ADMIN_JWT_SECRET" description:"HS256 secret for admin tokens, empty disables admin routes"`
	RejectOutOfStock  bool           `long:"reject-out-of-stock" env:"API_REJECT_OUT_OF_STOCK" description:"reject orders for products without stock"`
	HealthInterval    time.Duration  `long:"health-interval" env:"API_HEALTH_INTERVAL" description:"gRPC health check interval" default:"10s"`
	SolanaRPCURL      string         `long:"solana-rpc-url" env:"API_SOLANA_RPC_URL" description:"Solana JSON-RPC URL, empty accepts payments unverified"`
	SolanaCluster     string         `long:"solana-cluster" env:"API_SOLANA_CLUSTER" description:"cluster label for metrics" default:"mainnet-beta"`
	SolanaCommitment  string         `long:"solana-commitment" env:"API_SOLANA_COMMITMENT" description:"commitment treated as confirmed" default:"confirmed"`
	SolanaRPS         int            `long:"solana-rps" env:"API_SOLANA_RPS" description:"outbound RPC requests per second" default:"10"`
	SolanaMaxAttempts int            `long:"solana-max-attempts" env:"API_SOLANA_MAX_ATTEMPTS" description:"attempts per RPC call" default:"3"`
	SolanaBackoff     time.Duration  `long:"solana-backoff" env:"API_SOLANA_BACKOFF" description:"initial retry backoff" default:"200ms"`
	SolanaTimeout     time.Duration  `long:"solana-timeout" env:"API_SOLANA_TIMEOUT" description:"HTTP timeout for RPC requests" default:"5s"`
	Log               logging.Config `group:"logging"`
}

func main() {
	// Storefront clients read prices and revenue as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := postgres.NewRepository(cfg.PostgresDSN, postgres.PoolConfig{
		MaxOpenConns:    cfg.PostgresMaxOpen,
		MaxIdleConns:    cfg.PostgresMaxIdle,
		ConnMaxLifetime: cfg.PostgresMaxLife,
	}, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	verifier, err := newVerifier(cfg, logger)
	if err != nil {
		return fmt.Errorf("init payment verifier: %w", err)
	}
	defaults, err := catalog.Defaults()
	if err != nil {
		return fmt.Errorf("load default catalog: %w", err)
	}

	handler := transport.NewHandler(transport.Services{
		Products: service.NewProductService(repo, defaults, logger),
		Orders:   service.NewOrderService(repo, verifier, cfg.RejectOutOfStock, logger),
		Users:    service.NewUserService(repo, repo, logger),
		Rewards:  service.NewRewardService(repo, keylock.New(), metrics.NewRewards(), logger),
		Stats:    service.NewStatsService(repo, repo),
		Health:   repo,
	}, logger)
	router := transport.NewRouter(handler, transport.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AdminJWTSecret: cfg.AdminJWTSecret,
	}, metrics.NewHTTP(), logger)
	if cfg.AdminJWTSecret == "" {
		logger.Warn("admin secret not set, admin routes are disabled")
	}

	if err := startGRPCServer(ctx, cfg, repo, logger); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func startGRPCServer(ctx context.Context, cfg config, checker transport.HealthChecker, logger *zap.Logger) error {
	grpcServer, healthServer := transport.NewGRPCServer(logger.Named("grpc"))

	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		logger.Info("starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server failed", zap.Error(serveErr))
		}
	}()

	reporter := transport.NewHealthReporter(checker, healthServer, cfg.HealthInterval, logger.Named("health"))
	go func() {
		if err := reporter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("health reporter stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return nil
}

func newVerifier(cfg config, logger *zap.Logger) (service.PaymentVerifier, error) {
	if cfg.SolanaRPCURL == "" {
		logger.Warn("solana rpc url not set, payments are accepted without verification")
		return solana.NoopVerifier{}, nil
	}

	client, err := solana.NewClient(solana.ClientConfig{
		URL:         cfg.SolanaRPCURL,
		RPS:         cfg.SolanaRPS,
		MaxAttempts: cfg.SolanaMaxAttempts,
		Backoff:     cfg.SolanaBackoff,
		Timeout:     cfg.SolanaTimeout,
	})
	if err != nil {
		return nil, err
	}
	rpcMetrics := metrics.NewRPCClient(cfg.SolanaCluster)
	return solana.NewVerifier(solana.NewObservedClient(client, rpcMetrics), solana.Commitment(cfg.SolanaCommitment), rpcMetrics)
}
