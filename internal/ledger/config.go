package ledger

import "time"

// Config holds everything the gateway needs to reach the node, sign writes and
// address the TouristID contract.
type Config struct {
	RPCURL          string
	ContractAddress string
	// SignerKey is a hex-encoded secp256k1 private key, with or without 0x.
	SignerKey   string
	NetworkName string

	// CallTimeout bounds every read and the submission of a write.
	CallTimeout time.Duration
	// ConfirmTimeout bounds the wait for a write to be mined.
	ConfirmTimeout time.Duration
}

const (
	defaultCallTimeout    = 10 * time.Second
	defaultConfirmTimeout = 60 * time.Second
)

func (c Config) withDefaults() Config {
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = defaultConfirmTimeout
	}
	return c
}
