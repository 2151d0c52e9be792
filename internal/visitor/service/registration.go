package service

import (
	"context"
	"errors"
	"time"

	"visitorid/internal/audit"
	"visitorid/internal/ledger"
	"visitorid/internal/visitor/models"
	"visitorid/pkg/requestcontext"
)

// Registration is the outcome of a confirmed write.
type Registration struct {
	Record  *models.Record
	Receipt *ledger.Receipt
}

// Register validates sub, writes it to the ledger and waits for
// confirmation. Invalid submissions never reach the gateway.
func (s *Service) Register(ctx context.Context, sub models.Submission) (*Registration, error) {
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	rec, err := models.Build(sub, requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncrementRegistration("invalid")
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.logger.InfoContext(ctx, "registration rejected",
				"request_id", requestID,
				"fields", verr.Fields,
			)
		}
		return nil, err
	}

	receipt, err := s.gateway.Write(ctx, rec)
	if err != nil {
		s.metrics.IncrementRegistration("ledger_error")
		s.logger.ErrorContext(ctx, "registration write failed",
			"request_id", requestID,
			"reason", string(ledger.ReasonOf(err)),
			"error", err,
		)
		return nil, err
	}
	s.metrics.IncrementRegistration("confirmed")

	s.logger.InfoContext(ctx, "visitor registered",
		"request_id", requestID,
		"tx_hash", receipt.TxHash,
		"block_number", receipt.BlockNumber,
		"valid_until", rec.ValidUntil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.emitRegistered(ctx, rec, receipt)

	return &Registration{Record: rec, Receipt: receipt}, nil
}

// emitRegistered records the write in the audit trail. Failures are logged
// and never surface to the caller: the ledger write has already happened.
func (s *Service) emitRegistered(ctx context.Context, rec *models.Record, receipt *ledger.Receipt) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		Action:        audit.ActionRegistrationSubmitted,
		SubjectIDHash: audit.HashIdentifier(rec.Identity.Passport),
		TxHash:        receipt.TxHash,
		UserType:      rec.UserType,
		RequestID:     requestcontext.RequestID(ctx),
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"request_id", event.RequestID,
			"action", string(event.Action),
			"tx_hash", receipt.TxHash,
			"error", err,
		)
	}
}
