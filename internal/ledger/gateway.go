package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"visitorid/internal/ledger/metrics"
	"visitorid/internal/visitor/models"
)

const tracerName = "visitorid/internal/ledger"

// Receipt describes a mined registration transaction.
type Receipt struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// Gateway is the only component that talks to the ledger. It owns the node
// connection and the signing key; both are established once by Connect and
// are read-only afterwards.
type Gateway struct {
	cfg     Config
	dial    Dialer
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	group singleflight.Group
	mu    sync.RWMutex
	conn  *connection
}

type connection struct {
	node     Node
	contract Contract
	address  common.Address
	signer   common.Address
	chainID  *big.Int
	auth     *bind.TransactOpts
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// WithDialer replaces the RPC dialer, mainly for tests.
func WithDialer(d Dialer) Option {
	return func(g *Gateway) {
		g.dial = d
	}
}

// New constructs a Gateway. No network activity happens until Connect.
func New(cfg Config, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:    cfg.withDefaults(),
		dial:   DialEthereum,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Connect dials the node, reads the chain id, derives the signer and binds the
// contract. Calls after a successful connect are no-ops and concurrent first
// calls share one dial.
func (g *Gateway) Connect(ctx context.Context) error {
	if g.current() != nil {
		return nil
	}
	_, err, _ := g.group.Do("connect", func() (interface{}, error) {
		if g.current() != nil {
			return nil, nil
		}
		conn, err := g.open(ctx)
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.conn = conn
		g.mu.Unlock()
		return nil, nil
	})
	return err
}

func (g *Gateway) open(ctx context.Context) (*connection, error) {
	ctx, span := g.tracer.Start(ctx, "ledger.connect")
	defer span.End()
	start := time.Now()

	conn, err := g.dialAndBind(ctx)
	g.metrics.ObserveCall("connect", time.Since(start))
	if err != nil {
		lerr := classify(OpConnect, err)
		g.recordFailure(ctx, span, "connect", lerr)
		return nil, lerr
	}

	g.logger.InfoContext(ctx, "ledger connected",
		"network", g.cfg.NetworkName,
		"chain_id", conn.chainID.String(),
		"contract", conn.address.Hex(),
		"signer", conn.signer.Hex(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return conn, nil
}

func (g *Gateway) dialAndBind(ctx context.Context) (*connection, error) {
	if !common.IsHexAddress(g.cfg.ContractAddress) {
		return nil, &Error{Op: OpConnect, Reason: ReasonUnknown, Message: "invalid contract address"}
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(g.cfg.SignerKey, "0x"))
	if err != nil {
		return nil, &Error{Op: OpConnect, Reason: ReasonUnknown, Message: "invalid signer key", Err: err}
	}
	parsed, err := parseABI()
	if err != nil {
		return nil, &Error{Op: OpConnect, Reason: ReasonUnknown, Message: "invalid contract ABI", Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
	defer cancel()

	address := common.HexToAddress(g.cfg.ContractAddress)
	node, contract, err := g.dial(callCtx, g.cfg.RPCURL, address, parsed)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", g.cfg.RPCURL, err)
	}
	chainID, err := node.ChainID(callCtx)
	if err != nil {
		node.Close()
		return nil, fmt.Errorf("read chain id: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		node.Close()
		return nil, &Error{Op: OpConnect, Reason: ReasonUnknown, Message: "cannot build transactor", Err: err}
	}

	return &connection{
		node:     node,
		contract: contract,
		address:  address,
		signer:   crypto.PubkeyToAddress(key.PublicKey),
		chainID:  chainID,
		auth:     auth,
	}, nil
}

func (g *Gateway) current() *connection {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.conn
}

// Close releases the node connection. The gateway can be connected again.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn != nil {
		g.conn.node.Close()
		g.conn = nil
	}
}

// Write submits registerTourist for rec and waits for the transaction to be
// mined. A failed receipt is reported as ReasonRejected.
func (g *Gateway) Write(ctx context.Context, rec *models.Record) (*Receipt, error) {
	var receipt *Receipt
	err := g.run(ctx, OpWrite, methodRegister, g.cfg.ConfirmTimeout, func(ctx context.Context, conn *connection) error {
		txCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
		defer cancel()

		opts := *conn.auth
		opts.Context = txCtx
		args := newRegisterArgs(rec)
		tx, err := conn.contract.Transact(&opts, methodRegister, args.Kyc, args.Trip, args.Emergency, args.UserType, args.ValidUntil)
		if err != nil {
			return err
		}

		mined, err := conn.node.WaitMined(ctx, tx)
		if err != nil {
			return fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
		}
		if mined.Status == types.ReceiptStatusFailed {
			g.metrics.IncrementTransaction("failed")
			return fmt.Errorf("%s: %w", tx.Hash().Hex(), ErrTransactionFailed)
		}
		g.metrics.IncrementTransaction("success")

		receipt = &Receipt{TxHash: tx.Hash().Hex(), GasUsed: mined.GasUsed}
		if mined.BlockNumber != nil {
			receipt.BlockNumber = mined.BlockNumber.Uint64()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "ledger write confirmed",
		"tx_hash", receipt.TxHash,
		"block_number", receipt.BlockNumber,
		"gas_used", receipt.GasUsed,
	)
	return receipt, nil
}

// ReadByKey returns the tuple stored under address, or nil when the ledger
// holds no record for it.
func (g *Gateway) ReadByKey(ctx context.Context, address string) (*models.LedgerTuple, error) {
	if err := models.ValidatePrimaryKey(address); err != nil {
		return nil, err
	}
	var found *models.LedgerTuple
	err := g.run(ctx, OpRead, methodGetTourist, g.cfg.CallTimeout, func(ctx context.Context, conn *connection) error {
		var out []interface{}
		if err := conn.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodGetTourist, common.HexToAddress(address)); err != nil {
			return err
		}
		t, err := tupleAt(out, 0)
		if err != nil {
			return err
		}
		if tupleExists(t) {
			found = t.toModel()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ResolveSecondaryKey maps a document number to the address registered
// with it. The zero address means no registration uses the document.
func (g *Gateway) ResolveSecondaryKey(ctx context.Context, document string) (string, bool, error) {
	var resolved common.Address
	err := g.run(ctx, OpRead, methodGetByPassport, g.cfg.CallTimeout, func(ctx context.Context, conn *connection) error {
		var out []interface{}
		if err := conn.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodGetByPassport, document); err != nil {
			return err
		}
		if len(out) == 0 {
			return errMalformedOutput(methodGetByPassport)
		}
		resolved = *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if resolved == (common.Address{}) {
		return "", false, nil
	}
	return resolved.Hex(), true, nil
}

// CountRegistered returns the number of registrations the contract reports.
func (g *Gateway) CountRegistered(ctx context.Context) (uint64, error) {
	var count uint64
	err := g.run(ctx, OpRead, methodTouristCount, g.cfg.CallTimeout, func(ctx context.Context, conn *connection) error {
		var err error
		count, err = g.countRegistered(ctx, conn)
		return err
	})
	return count, err
}

func (g *Gateway) countRegistered(ctx context.Context, conn *connection) (uint64, error) {
	var out []interface{}
	if err := conn.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodTouristCount); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, errMalformedOutput(methodTouristCount)
	}
	n := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if n == nil {
		return 0, nil
	}
	return n.Uint64(), nil
}

// IsCurrentlyActive asks the contract whether address is valid right now.
// It is independent of the validity derived from a read tuple.
func (g *Gateway) IsCurrentlyActive(ctx context.Context, address string) (bool, error) {
	if err := models.ValidatePrimaryKey(address); err != nil {
		return false, err
	}
	var valid bool
	err := g.run(ctx, OpRead, methodIsValid, g.cfg.CallTimeout, func(ctx context.Context, conn *connection) error {
		var out []interface{}
		if err := conn.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodIsValid, common.HexToAddress(address)); err != nil {
			return err
		}
		if len(out) == 0 {
			return errMalformedOutput(methodIsValid)
		}
		valid = *abi.ConvertType(out[0], new(bool)).(*bool)
		return nil
	})
	return valid, err
}

// run executes fn against the live connection under a deadline, with a span,
// latency metrics and failure classification.
func (g *Gateway) run(ctx context.Context, op Op, method string, timeout time.Duration, fn func(context.Context, *connection) error) error {
	ctx, span := g.tracer.Start(ctx, "ledger."+method,
		trace.WithAttributes(attribute.String("ledger.op", string(op))))
	defer span.End()

	start := time.Now()
	err := g.call(ctx, timeout, fn)
	g.metrics.ObserveCall(method, time.Since(start))
	if err == nil {
		return nil
	}
	lerr := classify(op, err)
	g.recordFailure(ctx, span, method, lerr)
	return lerr
}

func (g *Gateway) call(ctx context.Context, timeout time.Duration, fn func(context.Context, *connection) error) error {
	conn := g.current()
	if conn == nil {
		return ErrNotConnected
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(callCtx, conn)
}

func (g *Gateway) recordFailure(ctx context.Context, span trace.Span, method string, lerr *Error) {
	g.metrics.IncrementFailure(string(lerr.Op), string(lerr.Reason))
	span.RecordError(lerr)
	span.SetStatus(codes.Error, string(lerr.Reason))
	g.logger.ErrorContext(ctx, "ledger call failed",
		"method", method,
		"op", string(lerr.Op),
		"reason", string(lerr.Reason),
		"error", lerr.Err,
	)
}

func tupleAt(out []interface{}, i int) (touristTuple, error) {
	if len(out) <= i {
		return touristTuple{}, errMalformedOutput("tourist tuple")
	}
	return *abi.ConvertType(out[i], new(touristTuple)).(*touristTuple), nil
}

func errMalformedOutput(what string) error {
	return fmt.Errorf("malformed %s output", what)
}
