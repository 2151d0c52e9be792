package service

import (
	"context"
	"log/slog"

	"visitorid/internal/audit"
	"visitorid/internal/ledger"
	"visitorid/internal/platform/metrics"
	"visitorid/internal/visitor/models"
)

// Gateway is the ledger surface the engine depends on.
type Gateway interface {
	Write(ctx context.Context, rec *models.Record) (*ledger.Receipt, error)
	ReadByKey(ctx context.Context, address string) (*models.LedgerTuple, error)
	ResolveSecondaryKey(ctx context.Context, document string) (string, bool, error)
	IsCurrentlyActive(ctx context.Context, address string) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service registers visitors and answers lookups. It holds no record state;
// every answer is read from the ledger and recomputed against request time.
type Service struct {
	gateway        Gateway
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(gateway Gateway, opts ...Option) *Service {
	s := &Service{gateway: gateway, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
