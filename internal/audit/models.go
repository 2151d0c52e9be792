package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Action names an audited operation.
type Action string

const (
	ActionRegistrationSubmitted Action = "registration_submitted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	// Subject is the ledger account the event concerns, when known.
	Subject string `json:"subject,omitempty"`
	// SubjectIDHash is a SHA-256 hash of the document number. The raw number
	// is never stored.
	SubjectIDHash string `json:"subjectIdHash,omitempty"`
	TxHash        string `json:"txHash,omitempty"`
	UserType      string `json:"userType,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
}

// HashIdentifier returns the hex SHA-256 of an identifier.
func HashIdentifier(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
