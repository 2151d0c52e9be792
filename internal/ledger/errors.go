package ledger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Op identifies which class of ledger operation failed.
type Op string

const (
	OpConnect Op = "connect"
	OpRead    Op = "read"
	OpWrite   Op = "write"
)

// Reason is the normalized failure taxonomy shared by every Op.
type Reason string

const (
	// ReasonUnreachable covers deadlines, refused connections and a gateway
	// that was never connected.
	ReasonUnreachable Reason = "unreachable"

	// ReasonRejected means the contract reverted or the receipt reported failure.
	ReasonRejected Reason = "rejected-by-contract"

	// ReasonInsufficientFunds means the signer cannot pay for gas.
	ReasonInsufficientFunds Reason = "insufficient-funds"

	ReasonUnknown Reason = "unknown"
)

var (
	// ErrNotConnected is returned by every operation invoked before Connect.
	ErrNotConnected = errors.New("ledger gateway is not connected")
	// ErrTransactionFailed marks a mined transaction whose receipt status is failed.
	ErrTransactionFailed = errors.New("transaction receipt reported failure")
)

// Error is a classified ledger failure. Message is safe to show to callers;
// the transport error is only reachable through Unwrap.
type Error struct {
	Op      Op
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger %s [%s]: %s", e.Op, e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason, or ReasonUnknown for foreign errors.
func ReasonOf(err error) Reason {
	var le *Error
	if errors.As(err, &le) {
		return le.Reason
	}
	return ReasonUnknown
}

// IsOp reports whether err is a ledger error raised by op.
func IsOp(err error, op Op) bool {
	var le *Error
	return errors.As(err, &le) && le.Op == op
}

var reasonMessages = map[Reason]string{
	ReasonUnreachable:       "unable to reach the ledger network",
	ReasonRejected:          "transaction reverted by smart contract",
	ReasonInsufficientFunds: "insufficient gas or funds for transaction",
	ReasonUnknown:           "unexpected ledger failure",
}

// classify maps a raw node or contract error onto the taxonomy. An *Error is
// returned unchanged so classification happens once per failure.
func classify(op Op, err error) *Error {
	var le *Error
	if errors.As(err, &le) {
		return le
	}
	reason := reasonFor(err)
	return &Error{Op: op, Reason: reason, Message: reasonMessages[reason], Err: err}
}

func reasonFor(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrNotConnected) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonUnreachable
	}
	if errors.Is(err, ErrTransactionFailed) {
		return ReasonRejected
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ReasonUnreachable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return ReasonInsufficientFunds
	case strings.Contains(msg, "revert"):
		return ReasonRejected
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "i/o timeout"):
		return ReasonUnreachable
	}
	return ReasonUnknown
}
