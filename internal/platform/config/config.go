package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevSignerKey is the publicly known private key of Hardhat development
// account #0. It only holds value on a local development chain.
const DevSignerKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// Audit sink names accepted by AUDIT_SINK.
const (
	AuditSinkMemory = "memory"
	AuditSinkRedis  = "redis"
	AuditSinkKafka  = "kafka"
)

// Config is the full process configuration.
type Config struct {
	Server Server
	Ledger Ledger
	Audit  Audit
	Redis  RedisConfig
	Kafka  KafkaConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string
	LogLevel           string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

// Ledger holds node, contract and signer settings.
type Ledger struct {
	RPCURL          string
	ContractAddress string
	SignerKey       string
	NetworkName     string
	CallTimeout     time.Duration
	ConfirmTimeout  time.Duration
}

// Audit selects where audit events go.
type Audit struct {
	Sink      string
	QueueSize int
}

// RedisConfig configures the Redis client used by the stream audit sink.
type RedisConfig struct {
	URL          string
	Stream       string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the Kafka audit sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads a .env file when present and then builds the config from the
// environment. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:               getEnv("VISITORID_ADDR", ":5000"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGIN", []string{"http://localhost:5173"}),
			MaxBodyBytes:       getInt64("MAX_BODY_BYTES", 1<<20),
		},
		Ledger: Ledger{
			RPCURL:          getEnv("LEDGER_RPC_URL", "http://127.0.0.1:8545"),
			ContractAddress: getEnv("LEDGER_CONTRACT_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3"),
			SignerKey:       getEnv("LEDGER_SIGNER_KEY", DevSignerKey),
			NetworkName:     getEnv("LEDGER_NETWORK_NAME", "Hardhat Local"),
			CallTimeout:     getDuration("LEDGER_CALL_TIMEOUT", 10*time.Second),
			ConfirmTimeout:  getDuration("LEDGER_CONFIRM_TIMEOUT", 60*time.Second),
		},
		Audit: Audit{
			Sink:      strings.ToLower(getEnv("AUDIT_SINK", AuditSinkMemory)),
			QueueSize: int(getInt64("AUDIT_QUEUE_SIZE", 256)),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			Stream:       getEnv("REDIS_AUDIT_STREAM", "visitorid:audit"),
			PoolSize:     int(getInt64("REDIS_POOL_SIZE", 10)),
			MinIdleConns: int(getInt64("REDIS_MIN_IDLE_CONNS", 2)),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_AUDIT_TOPIC", "visitorid.audit"),
		},
	}
}

// UsesDevSigner reports whether the well-known development key is in use.
func (c Config) UsesDevSigner() bool {
	return strings.EqualFold(strings.TrimPrefix(c.Ledger.SignerKey, "0x"), strings.TrimPrefix(DevSignerKey, "0x"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// getList splits a comma-separated variable, dropping blanks.
func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
