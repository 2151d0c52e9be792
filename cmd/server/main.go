package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"visitorid/internal/audit"
	auditstore "visitorid/internal/audit/store"
	"visitorid/internal/ledger"
	ledgermetrics "visitorid/internal/ledger/metrics"
	"visitorid/internal/platform/config"
	"visitorid/internal/platform/httpserver"
	"visitorid/internal/platform/logger"
	"visitorid/internal/platform/metrics"
	"visitorid/internal/platform/redis"
	systemhandler "visitorid/internal/system/handler"
	httptransport "visitorid/internal/transport/http"
	visitorhandler "visitorid/internal/visitor/handler"
	"visitorid/internal/visitor/service"
)

const shutdownTimeout = 10 * time.Second

// main wires the gateway, the audit sink and the HTTP server. A ledger that
// cannot be reached at startup is fatal.
func main() {
	startedAt := time.Now()
	cfg := config.Load()
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSigner() {
		log.Warn("using the public development signer key; set LEDGER_SIGNER_KEY outside local networks")
	}

	gateway := ledger.New(ledger.Config{
		RPCURL:          cfg.Ledger.RPCURL,
		ContractAddress: cfg.Ledger.ContractAddress,
		SignerKey:       cfg.Ledger.SignerKey,
		NetworkName:     cfg.Ledger.NetworkName,
		CallTimeout:     cfg.Ledger.CallTimeout,
		ConfirmTimeout:  cfg.Ledger.ConfirmTimeout,
	},
		ledger.WithLogger(log),
		ledger.WithMetrics(ledgermetrics.New()),
	)
	if err := gateway.Connect(ctx); err != nil {
		log.Error("failed to connect to ledger",
			"rpc_url", cfg.Ledger.RPCURL,
			"reason", string(ledger.ReasonOf(err)),
			"error", err,
		)
		os.Exit(1)
	}
	defer gateway.Close()

	sink, closeSink, err := newAuditStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize audit sink", "sink", cfg.Audit.Sink, "error", err)
		os.Exit(1)
	}
	defer closeSink()

	queue := make(chan audit.Event, cfg.Audit.QueueSize)
	worker := audit.NewWorker(sink, queue, log)
	publisher := audit.NewQueuedPublisher(queue)

	appMetrics := metrics.New()
	visitors := service.New(gateway,
		service.WithLogger(log),
		service.WithMetrics(appMetrics),
		service.WithAuditPublisher(publisher),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        appMetrics,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Handlers: []httptransport.RouteRegistrar{
			visitorhandler.New(visitors, log, cfg.Server.MaxBodyBytes),
			systemhandler.New(gateway, log, startedAt),
		},
	})
	// Writes block until mined, so the write timeout must outlast confirmation.
	writeTimeout := cfg.Ledger.ConfirmTimeout + cfg.Ledger.CallTimeout + 5*time.Second
	srv := httpserver.New(cfg.Server.Addr, router, writeTimeout)

	var g errgroup.Group
	g.Go(func() error {
		return worker.Run(context.Background())
	})
	g.Go(func() error {
		log.Info("starting visitor registry",
			"addr", cfg.Server.Addr,
			"network", cfg.Ledger.NetworkName,
			"contract", cfg.Ledger.ContractAddress,
			"audit_sink", cfg.Audit.Sink,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stop()
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), max(shutdownTimeout, writeTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	// Handlers still running after a failed shutdown get ErrPublisherClosed.
	publisher.Close()

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// newAuditStore builds the configured audit sink and a func releasing it.
func newAuditStore(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Store, func(), error) {
	switch cfg.Audit.Sink {
	case config.AuditSinkRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return auditstore.NewRedisStreamStore(client.Client, auditstore.WithStream(cfg.Redis.Stream)),
			func() { _ = client.Close() }, nil
	case config.AuditSinkKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			return nil, nil, errors.New("KAFKA_BROKERS is required for the kafka audit sink")
		}
		client, err := auditstore.NewKafkaClient(cfg.Kafka.Brokers)
		if err != nil {
			return nil, nil, err
		}
		if err := auditstore.EnsureTopic(ctx, client, cfg.Kafka.Topic); err != nil {
			client.Close()
			return nil, nil, err
		}
		return auditstore.NewKafkaStore(client, cfg.Kafka.Topic), client.Close, nil
	case config.AuditSinkMemory:
		log.Info("audit events are kept in memory only")
		return auditstore.NewInMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown audit sink %q", cfg.Audit.Sink)
	}
}
