package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"visitorid/internal/audit"
	"visitorid/internal/ledger"
	"visitorid/internal/visitor/models"
)

func submission() models.Submission {
	return models.Submission{
		models.FieldName:                     "Ada Lovelace",
		models.FieldPassport:                 "p1234567",
		models.FieldDateOfBirth:              "1990-05-15",
		models.FieldNationality:              "British",
		models.FieldPhoneNumber:              "+44 20 7946 0000",
		models.FieldEntryPoint:               "airport",
		models.FieldArrivalDate:              "2025-03-10",
		models.FieldDepartureDate:            "2025-03-15",
		models.FieldPrimaryDestination:       "Jaipur",
		models.FieldPurposeOfVisit:           "tourism",
		models.FieldEmergencyContactName:     "Charles Babbage",
		models.FieldEmergencyContactPhone:    "+44 20 7946 0001",
		models.FieldEmergencyContactRelation: "friend",
		models.FieldEmergencyContactAddress:  "1 Dorset Street, London",
	}
}

func (s *ServiceSuite) TestRegister() {
	s.Run("invalid submission never reaches the ledger", func() {
		sub := submission()
		delete(sub, models.FieldNationality)
		sub[models.FieldDepartureDate] = "2025-03-01"

		reg, err := s.service.Register(s.ctx, sub)
		s.Nil(reg)
		var verr *models.ValidationError
		s.Require().ErrorAs(err, &verr)
		s.ElementsMatch([]string{models.FieldNationality, models.FieldDepartureDate}, verr.Fields)
	})

	s.Run("confirmed write emits hashed audit event", func() {
		receipt := &ledger.Receipt{TxHash: "0xabc", BlockNumber: 7, GasUsed: 300000}
		s.gateway.EXPECT().Write(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *models.Record) (*ledger.Receipt, error) {
				s.Equal("P1234567", rec.Identity.Passport)
				s.Equal(int64(1742083200), rec.ValidUntil)
				return receipt, nil
			})
		s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event audit.Event) error {
				s.Equal(audit.ActionRegistrationSubmitted, event.Action)
				s.Equal("0xabc", event.TxHash)
				s.Equal(audit.HashIdentifier("P1234567"), event.SubjectIDHash)
				s.Equal("req-1", event.RequestID)
				s.Equal(requestTime, event.Timestamp)
				return nil
			})

		reg, err := s.service.Register(s.ctx, submission())
		s.Require().NoError(err)
		s.Same(receipt, reg.Receipt)
		s.Equal("tourist", reg.Record.UserType)
	})

	s.Run("revert surfaces as write error without audit", func() {
		s.gateway.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil, rejected(ledger.OpWrite))

		reg, err := s.service.Register(s.ctx, submission())
		s.Nil(reg)
		s.True(ledger.IsOp(err, ledger.OpWrite))
		s.Equal(ledger.ReasonRejected, ledger.ReasonOf(err))
	})

	s.Run("audit failure does not fail registration", func() {
		s.gateway.EXPECT().Write(gomock.Any(), gomock.Any()).Return(&ledger.Receipt{TxHash: "0xdef"}, nil)
		s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("queue full"))

		reg, err := s.service.Register(s.ctx, submission())
		s.NoError(err)
		s.Equal("0xdef", reg.Receipt.TxHash)
	})
}

func (s *ServiceSuite) TestRegister_WithoutAuditPublisher() {
	svc := New(s.gateway)
	s.gateway.EXPECT().Write(gomock.Any(), gomock.Any()).Return(&ledger.Receipt{TxHash: "0x1"}, nil)

	reg, err := svc.Register(s.ctx, submission())
	s.Require().NoError(err)
	s.Equal("0x1", reg.Receipt.TxHash)
}
