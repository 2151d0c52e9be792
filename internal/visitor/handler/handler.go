package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"visitorid/internal/visitor/models"
	"visitorid/internal/visitor/service"
	dErrors "visitorid/pkg/domain-errors"
	"visitorid/pkg/platform/httputil"
	"visitorid/pkg/requestcontext"
)

// Service defines the visitor operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, sub models.Submission) (*service.Registration, error)
	FindByPrimaryKey(ctx context.Context, key string) (*models.View, error)
	FindBySecondaryKey(ctx context.Context, document string) (*models.View, string, error)
	Status(ctx context.Context, key string) (*service.Status, error)
}

// Handler serves the /tourist routes.
type Handler struct {
	logger       *slog.Logger
	visitors     Service
	maxBodyBytes int64
}

// New creates a visitor Handler. maxBodyBytes caps registration payloads; zero
// disables the limit.
func New(visitors Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:       logger,
		visitors:     visitors,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register registers the visitor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tourist", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Get("/passport/{passport}", h.handleGetByPassport)
		r.Get("/{address}", h.handleGetByAddress)
		r.Get("/{address}/validate", h.handleValidate)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	sub, err := req.Submission()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.DebugContext(ctx, "registration request",
		"request_id", requestID,
		"body", sub.Redacted(),
	)

	reg, err := h.visitors.Register(ctx, sub)
	if err != nil {
		h.writeServiceError(ctx, w, "registration failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, newRegisterResponse(reg))
}

func (h *Handler) handleGetByAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := chi.URLParam(r, "address")

	view, err := h.visitors.FindByPrimaryKey(ctx, address)
	if err != nil {
		h.writeServiceError(ctx, w, "lookup by address failed", err)
		return
	}
	if view == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no visitor registration found for this address"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    addressLookupData{Address: address, Tourist: view},
	})
}

func (h *Handler) handleGetByPassport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	document := chi.URLParam(r, "passport")

	view, address, err := h.visitors.FindBySecondaryKey(ctx, document)
	if err != nil {
		h.writeServiceError(ctx, w, "lookup by passport failed", err)
		return
	}
	if view == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no visitor registration found for this passport or national ID"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: passportLookupData{
			Passport: models.NormalizeDocumentNumber(document),
			Address:  address,
			Tourist:  view,
		},
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.visitors.Status(ctx, chi.URLParam(r, "address"))
	if err != nil {
		h.writeServiceError(ctx, w, "status check failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope{Success: true, Data: newStatusResponse(status)})
}

// writeServiceError logs err at a level matching its class and writes the
// mapped envelope. Validation problems are the caller's fault and logged at
// warn; everything else is an error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	mapped := toDomainError(err)
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"code", string(mapped.Code),
		"error", err.Error(),
	}
	if mapped.Code == dErrors.CodeValidation {
		h.logger.WarnContext(ctx, msg, attrs...)
	} else {
		h.logger.ErrorContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, mapped)
}
