package models

import (
	"regexp"
	"strings"
)

// PrimaryKeyLength is the length of a 0x-prefixed account identifier.
const PrimaryKeyLength = 42

var primaryKeyPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidatePrimaryKey checks the shape of an account identifier before any
// ledger call is made.
func ValidatePrimaryKey(key string) error {
	if len(key) != PrimaryKeyLength || !strings.HasPrefix(key, "0x") || !primaryKeyPattern.MatchString(key) {
		return newFieldError("address", "address must be a 42-character 0x-prefixed account identifier")
	}
	return nil
}

// NormalizeDocumentNumber trims and upper-cases a passport or national ID so
// lookups and registrations agree on the secondary key.
func NormalizeDocumentNumber(document string) string {
	return strings.ToUpper(strings.TrimSpace(document))
}

// ValidateDocumentNumber rejects blank secondary keys.
func ValidateDocumentNumber(document string) error {
	if NormalizeDocumentNumber(document) == "" {
		return newFieldError(FieldPassport, "passport is required")
	}
	return nil
}
