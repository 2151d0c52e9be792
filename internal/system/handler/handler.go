// Package handler serves the operational endpoints: system statistics, the
// signer wallet and a ledger-backed health check.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"visitorid/internal/ledger"
	dErrors "visitorid/pkg/domain-errors"
	"visitorid/pkg/platform/httputil"
	"visitorid/pkg/requestcontext"
)

const (
	SystemName    = "Digital Tourist ID Generation Platform"
	SystemVersion = "2.0.0"
)

// InfoSource reports the gateway's view of the ledger.
type InfoSource interface {
	SystemInfo(ctx context.Context) (*ledger.SystemInfo, error)
}

type Handler struct {
	logger    *slog.Logger
	info      InfoSource
	startedAt time.Time
}

// New creates a system Handler. startedAt anchors the reported uptime.
func New(info InfoSource, logger *slog.Logger, startedAt time.Time) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, info: info, startedAt: startedAt}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/stats", h.handleStats)
	r.Get("/wallet", h.handleWallet)
	r.Get("/health", h.handleHealth)
}

type statsData struct {
	System     string             `json:"system"`
	Version    string             `json:"version"`
	Status     string             `json:"status"`
	Blockchain *ledger.SystemInfo `json:"blockchain"`
	Timestamp  time.Time          `json:"timestamp"`
}

type walletData struct {
	Address         string         `json:"address"`
	Balance         string         `json:"balance"`
	Network         ledger.Network `json:"network"`
	ContractAddress string         `json:"contractAddress"`
}

type healthServices struct {
	API        string `json:"api"`
	Blockchain string `json:"blockchain"`
	Contract   string `json:"contract"`
}

type healthData struct {
	ContractAddress string         `json:"contractAddress"`
	SignerAddress   string         `json:"signerAddress"`
	Network         ledger.Network `json:"network"`
	TouristCount    uint64         `json:"touristCount"`
	UptimeSeconds   float64        `json:"uptime"`
	Timestamp       time.Time      `json:"timestamp"`
}

// HealthResponse is written for both healthy and unhealthy checks.
type HealthResponse struct {
	Success    bool           `json:"success"`
	Status     string         `json:"status"`
	Services   healthServices `json:"services"`
	Data       *healthData    `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	info, err := h.info.SystemInfo(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to read system stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: statsData{
		System:     SystemName,
		Version:    SystemVersion,
		Status:     "Active",
		Blockchain: info,
		Timestamp:  requestcontext.Now(ctx).UTC(),
	}})
}

func (h *Handler) handleWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	info, err := h.info.SystemInfo(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to read wallet info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: walletData{
		Address:         info.SignerAddress,
		Balance:         info.Balance + " ETH",
		Network:         info.Network,
		ContractAddress: info.ContractAddress,
	}})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := requestcontext.Now(ctx).UTC()

	info, err := h.info.SystemInfo(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "health check failed",
			"request_id", requestcontext.RequestID(ctx),
			"reason", string(ledger.ReasonOf(err)),
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, unhealthy(err, now))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Success:  true,
		Status:   "Healthy",
		Services: healthServices{API: "OK", Blockchain: "Connected", Contract: "Accessible"},
		Data: &healthData{
			ContractAddress: info.ContractAddress,
			SignerAddress:   info.SignerAddress,
			Network:         info.Network,
			TouristCount:    info.RegisteredCount,
			UptimeSeconds:   now.Sub(h.startedAt).Seconds(),
			Timestamp:       now,
		},
		Timestamp: now,
	})
}

// unhealthy diagnoses a failed ledger probe. Only unreachable nodes get a
// specific hint; everything else points at the contract binding.
func unhealthy(err error, now time.Time) HealthResponse {
	resp := HealthResponse{
		Success:    false,
		Status:     "Unhealthy",
		Services:   healthServices{API: "OK", Blockchain: "Error", Contract: "Inaccessible"},
		Error:      string(ledger.ReasonOf(err)),
		Suggestion: "Check the contract address and ABI configuration",
		Timestamp:  now,
	}
	if ledger.ReasonOf(err) == ledger.ReasonUnreachable {
		resp.Services.Blockchain = "Network Unreachable"
		resp.Suggestion = "Ensure the ledger node is running and LEDGER_RPC_URL points at it"
	}
	return resp
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	code := dErrors.CodeInternal
	if ledger.ReasonOf(err) == ledger.ReasonUnreachable {
		code = dErrors.CodeUnavailable
	}
	httputil.WriteError(w, dErrors.Wrap(err, code, msg))
}
