package handler

import (
	"errors"

	"visitorid/internal/ledger"
	"visitorid/internal/visitor/models"
	dErrors "visitorid/pkg/domain-errors"
)

// toDomainError maps engine failures onto transport codes. Ledger messages
// are replaced by fixed descriptions so node internals never reach clients.
func toDomainError(err error) *dErrors.Error {
	if de, ok := dErrors.As(err); ok {
		return de
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return dErrors.Wrap(err, dErrors.CodeValidation, verr.Error()).WithDetails(verr.Problems...)
	}

	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		switch lerr.Reason {
		case ledger.ReasonRejected:
			return dErrors.Wrap(err, dErrors.CodeRejected, "transaction reverted by smart contract")
		case ledger.ReasonInsufficientFunds:
			return dErrors.Wrap(err, dErrors.CodeRejected, "insufficient gas or funds for transaction")
		case ledger.ReasonUnreachable:
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "unable to connect to the ledger network")
		}
	}

	return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
}
