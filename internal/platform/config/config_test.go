package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"VISITORID_ADDR", "LOG_LEVEL", "CORS_ALLOWED_ORIGIN", "MAX_BODY_BYTES",
		"LEDGER_RPC_URL", "LEDGER_CONTRACT_ADDRESS", "LEDGER_SIGNER_KEY", "LEDGER_NETWORK_NAME",
		"LEDGER_CALL_TIMEOUT", "LEDGER_CONFIRM_TIMEOUT", "AUDIT_SINK", "KAFKA_BROKERS",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.Ledger.RPCURL)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", cfg.Ledger.ContractAddress)
	assert.Equal(t, "Hardhat Local", cfg.Ledger.NetworkName)
	assert.Equal(t, 10*time.Second, cfg.Ledger.CallTimeout)
	assert.Equal(t, 60*time.Second, cfg.Ledger.ConfirmTimeout)
	assert.Equal(t, AuditSinkMemory, cfg.Audit.Sink)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.UsesDevSigner())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("VISITORID_ADDR", ":9000")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://a.example, https://b.example ,")
	t.Setenv("LEDGER_CALL_TIMEOUT", "3s")
	t.Setenv("LEDGER_CONFIRM_TIMEOUT", "not-a-duration")
	t.Setenv("LEDGER_SIGNER_KEY", "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	t.Setenv("AUDIT_SINK", "KAFKA")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MAX_BODY_BYTES", "-5")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Ledger.CallTimeout)
	assert.Equal(t, 60*time.Second, cfg.Ledger.ConfirmTimeout)
	assert.Equal(t, AuditSinkKafka, cfg.Audit.Sink)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.UsesDevSigner())
}
