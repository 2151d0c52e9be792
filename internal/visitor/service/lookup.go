package service

import (
	"context"
	"time"

	"visitorid/internal/visitor/models"
	"visitorid/pkg/requestcontext"
)

// StatusLabel is the human-readable registration state.
type StatusLabel string

const (
	StatusNotRegistered StatusLabel = "Not Registered"
	StatusActive        StatusLabel = "Active"
	StatusExpired       StatusLabel = "Expired"
)

// Status combines two validity signals: IsValid is the ledger's own answer,
// DerivedValid is recomputed from the stored tuple at request time. Status
// follows the derived signal.
type Status struct {
	Address       string
	IsRegistered  bool
	IsValid       bool
	DerivedValid  bool
	Status        StatusLabel
	ValidUntil    time.Time
	DaysRemaining int64
}

// FindByPrimaryKey reads the record stored under key. A nil view with a nil
// error means no record exists.
func (s *Service) FindByPrimaryKey(ctx context.Context, key string) (*models.View, error) {
	view, err := s.findByPrimaryKey(ctx, key)
	s.metrics.IncrementLookup("address", lookupResult(view != nil, err))
	return view, err
}

func (s *Service) findByPrimaryKey(ctx context.Context, key string) (*models.View, error) {
	if err := models.ValidatePrimaryKey(key); err != nil {
		return nil, err
	}
	tuple, err := s.gateway.ReadByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if tuple == nil {
		return nil, nil
	}
	view := models.DeriveView(*tuple, requestcontext.Now(ctx))
	return &view, nil
}

// FindBySecondaryKey resolves a document number to its account and reads the
// record there. It returns the resolved address alongside the view.
func (s *Service) FindBySecondaryKey(ctx context.Context, document string) (*models.View, string, error) {
	view, address, err := s.findBySecondaryKey(ctx, document)
	s.metrics.IncrementLookup("passport", lookupResult(view != nil, err))
	return view, address, err
}

func (s *Service) findBySecondaryKey(ctx context.Context, document string) (*models.View, string, error) {
	if err := models.ValidateDocumentNumber(document); err != nil {
		return nil, "", err
	}
	address, found, err := s.gateway.ResolveSecondaryKey(ctx, models.NormalizeDocumentNumber(document))
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", nil
	}
	view, err := s.findByPrimaryKey(ctx, address)
	if err != nil || view == nil {
		return nil, "", err
	}
	return view, address, nil
}

// Status reports whether key is registered and currently valid.
func (s *Service) Status(ctx context.Context, key string) (*Status, error) {
	view, err := s.findByPrimaryKey(ctx, key)
	if err != nil {
		s.metrics.IncrementLookup("status", lookupResult(false, err))
		return nil, err
	}
	valid, err := s.gateway.IsCurrentlyActive(ctx, key)
	if err != nil {
		s.metrics.IncrementLookup("status", lookupResult(false, err))
		return nil, err
	}
	s.metrics.IncrementLookup("status", lookupResult(view != nil, nil))

	status := &Status{Address: key, IsValid: valid, Status: StatusNotRegistered}
	if view == nil {
		return status, nil
	}
	status.IsRegistered = true
	status.DerivedValid = view.IsValid
	status.ValidUntil = time.Unix(view.ValidUntil, 0).UTC()
	status.DaysRemaining = view.DaysRemaining
	if view.IsValid {
		status.Status = StatusActive
	} else {
		status.Status = StatusExpired
	}
	return status, nil
}

func lookupResult(found bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case found:
		return "found"
	default:
		return "not_found"
	}
}
