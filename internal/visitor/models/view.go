package models

import "time"

// View is a ledger tuple with validity recomputed against a point in time.
// It is never cached: the same tuple yields a different view tomorrow.
type View struct {
	LedgerTuple
	IsValid       bool  `json:"isValid"`
	DaysRemaining int64 `json:"daysRemaining"`
}

// DeriveView computes the time-dependent fields of a stored tuple. It is a
// pure function of its inputs and works in whole epoch seconds, matching the
// ledger's representation.
func DeriveView(t LedgerTuple, now time.Time) View {
	nowSec := now.Unix()
	return View{
		LedgerTuple:   t,
		IsValid:       t.Active && t.ValidUntil > nowSec,
		DaysRemaining: daysRemaining(t.ValidUntil, nowSec),
	}
}

// daysRemaining is max(0, ceil((validUntil-now)/86400)).
func daysRemaining(validUntil, now int64) int64 {
	remaining := validUntil - now
	if remaining <= 0 {
		return 0
	}
	return (remaining + secondsPerDay - 1) / secondsPerDay
}
