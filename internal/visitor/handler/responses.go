package handler

import (
	"time"

	"visitorid/internal/ledger"
	"visitorid/internal/visitor/models"
	"visitorid/internal/visitor/service"
)

const registeredMessage = "Digital Tourist ID registered successfully"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type registerData struct {
	Tourist    *models.Record  `json:"tourist"`
	Blockchain *ledger.Receipt `json:"blockchain"`
}

func newRegisterResponse(reg *service.Registration) envelope {
	return envelope{
		Success: true,
		Message: registeredMessage,
		Data:    registerData{Tourist: reg.Record, Blockchain: reg.Receipt},
	}
}

type addressLookupData struct {
	Address string       `json:"address"`
	Tourist *models.View `json:"tourist"`
}

type passportLookupData struct {
	Passport string       `json:"passport"`
	Address  string       `json:"address"`
	Tourist  *models.View `json:"tourist"`
}

// StatusResponse is the validity document for one account. ValidUntil and
// DaysRemaining are omitted for unregistered accounts.
type StatusResponse struct {
	Address       string `json:"address"`
	IsRegistered  bool   `json:"isRegistered"`
	IsValid       bool   `json:"isValid"`
	DerivedValid  bool   `json:"derivedValid"`
	Status        string `json:"status"`
	ValidUntil    string `json:"validUntil,omitempty"`
	DaysRemaining *int64 `json:"daysRemaining,omitempty"`
}

func newStatusResponse(s *service.Status) StatusResponse {
	resp := StatusResponse{
		Address:      s.Address,
		IsRegistered: s.IsRegistered,
		IsValid:      s.IsValid,
		DerivedValid: s.DerivedValid,
		Status:       string(s.Status),
	}
	if s.IsRegistered {
		resp.ValidUntil = s.ValidUntil.UTC().Format(time.RFC3339)
		days := s.DaysRemaining
		resp.DaysRemaining = &days
	}
	return resp
}
