package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/logging"
	"github.com/goodnatureofminers/farmmarket-backend/internal/metrics"
	"github.com/goodnatureofminers/farmmarket-backend/internal/repository/postgres"
	"github.com/goodnatureofminers/farmmarket-backend/internal/service/reconciler"
	"github.com/goodnatureofminers/farmmarket-backend/internal/solana"
)

type config struct {
	PostgresDSN       string         `long:"postgres-dsn" env:"RECONCILER_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	SolanaRPCURL      string         `long:"solana-rpc-url" env:"RECONCILER_SOLANA_RPC_URL" description:"Solana JSON-RPC URL" required:"true"`
	SolanaCluster     string         `long:"solana-cluster" env:"RECONCILER_SOLANA_CLUSTER" description:"cluster label for metrics" default:"mainnet-beta"`
	SolanaCommitment  string         `long:"solana-commitment" env:"RECONCILER_SOLANA_COMMITMENT" description:"commitment treated as confirmed" default:"confirmed"`
	SolanaRPS         int            `long:"solana-rps" env:"RECONCILER_SOLANA_RPS" description:"outbound RPC requests per second" default:"10"`
	SolanaMaxAttempts int            `long:"solana-max-attempts" env:"RECONCILER_SOLANA_MAX_ATTEMPTS" description:"attempts per RPC call" default:"3"`
	SolanaBackoff     time.Duration  `long:"solana-backoff" env:"RECONCILER_SOLANA_BACKOFF" description:"initial retry backoff" default:"200ms"`
	SolanaTimeout     time.Duration  `long:"solana-timeout" env:"RECONCILER_SOLANA_TIMEOUT" description:"HTTP timeout for RPC requests" default:"10s"`
	Workers           int            `long:"workers" env:"RECONCILER_WORKERS" description:"concurrent verifications" default:"8"`
	BatchLimit        int            `long:"batch-limit" env:"RECONCILER_BATCH_LIMIT" description:"pending orders per pass" default:"256"`
	GracePeriod       time.Duration  `long:"grace-period" env:"RECONCILER_GRACE_PERIOD" description:"minimum order age before re-verification" default:"30s"`
	MaxAge            time.Duration  `long:"max-age" env:"RECONCILER_MAX_AGE" description:"pending orders older than this are failed" default:"24h"`
	IdleSleep         time.Duration  `long:"idle-sleep" env:"RECONCILER_IDLE_SLEEP" description:"pause when nothing is pending" default:"30s"`
	MetricsAddr       string         `long:"metrics-addr" env:"RECONCILER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	Log               logging.Config `group:"logging"`
}

func main() {
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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("payment reconciler failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := postgres.NewRepository(cfg.PostgresDSN, postgres.PoolConfig{
		MaxOpenConns: cfg.Workers + 2,
	}, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	client, err := solana.NewClient(solana.ClientConfig{
		URL:         cfg.SolanaRPCURL,
		RPS:         cfg.SolanaRPS,
		MaxAttempts: cfg.SolanaMaxAttempts,
		Backoff:     cfg.SolanaBackoff,
		Timeout:     cfg.SolanaTimeout,
	})
	if err != nil {
		return fmt.Errorf("init solana rpc client: %w", err)
	}
	rpcMetrics := metrics.NewRPCClient(cfg.SolanaCluster)
	verifier, err := solana.NewVerifier(
		solana.NewObservedClient(client, rpcMetrics),
		solana.Commitment(cfg.SolanaCommitment),
		rpcMetrics,
	)
	if err != nil {
		return fmt.Errorf("init payment verifier: %w", err)
	}

	svc, err := reconciler.NewPaymentReconciler(
		repo,
		verifier,
		metrics.NewPaymentReconciler(),
		reconciler.Config{
			Workers:     cfg.Workers,
			BatchLimit:  cfg.BatchLimit,
			GracePeriod: cfg.GracePeriod,
			MaxAge:      cfg.MaxAge,
			IdleSleep:   cfg.IdleSleep,
		},
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
