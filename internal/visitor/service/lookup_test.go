package service

import (
	"time"

	"go.uber.org/mock/gomock"

	"visitorid/internal/ledger"
	"visitorid/internal/visitor/models"
)

func (s *ServiceSuite) TestFindByPrimaryKey() {
	s.Run("malformed key is rejected before the ledger", func() {
		view, err := s.service.FindByPrimaryKey(s.ctx, "0xnot-an-address")
		s.Nil(view)
		var verr *models.ValidationError
		s.ErrorAs(err, &verr)
	})

	s.Run("absent record is nil without error", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(nil, nil)

		view, err := s.service.FindByPrimaryKey(s.ctx, visitorAddress)
		s.NoError(err)
		s.Nil(view)
	})

	s.Run("view is derived at request time", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).
			Return(tupleValidUntil(requestTime.Add(30*time.Hour), true), nil)

		view, err := s.service.FindByPrimaryKey(s.ctx, visitorAddress)
		s.Require().NoError(err)
		s.True(view.IsValid)
		s.Equal(int64(2), view.DaysRemaining)
		s.Equal("Ada Lovelace", view.Identity.Name)
	})

	s.Run("ledger errors propagate unchanged", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(nil, unreachable(ledger.OpRead))

		_, err := s.service.FindByPrimaryKey(s.ctx, visitorAddress)
		s.True(ledger.IsOp(err, ledger.OpRead))
		s.Equal(ledger.ReasonUnreachable, ledger.ReasonOf(err))
	})
}

func (s *ServiceSuite) TestFindBySecondaryKey() {
	s.Run("blank document is rejected", func() {
		_, _, err := s.service.FindBySecondaryKey(s.ctx, "   ")
		var verr *models.ValidationError
		s.ErrorAs(err, &verr)
	})

	s.Run("zero sentinel yields no view and no read", func() {
		s.gateway.EXPECT().ResolveSecondaryKey(gomock.Any(), "P0000000").Return("", false, nil)

		view, address, err := s.service.FindBySecondaryKey(s.ctx, "p0000000")
		s.NoError(err)
		s.Nil(view)
		s.Empty(address)
	})

	s.Run("document is normalized and resolved", func() {
		s.gateway.EXPECT().ResolveSecondaryKey(gomock.Any(), "P1234567").Return(visitorAddress, true, nil)
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).
			Return(tupleValidUntil(requestTime.Add(72*time.Hour), true), nil)

		view, address, err := s.service.FindBySecondaryKey(s.ctx, "  p1234567 ")
		s.Require().NoError(err)
		s.Equal(visitorAddress, address)
		s.Equal("P1234567", view.Identity.Passport)
	})

	s.Run("resolved address without a record", func() {
		s.gateway.EXPECT().ResolveSecondaryKey(gomock.Any(), "P7654321").Return(visitorAddress, true, nil)
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(nil, nil)

		view, address, err := s.service.FindBySecondaryKey(s.ctx, "P7654321")
		s.NoError(err)
		s.Nil(view)
		s.Empty(address)
	})
}

func (s *ServiceSuite) TestStatus() {
	s.Run("not registered", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(nil, nil)
		s.gateway.EXPECT().IsCurrentlyActive(gomock.Any(), visitorAddress).Return(false, nil)

		status, err := s.service.Status(s.ctx, visitorAddress)
		s.Require().NoError(err)
		s.False(status.IsRegistered)
		s.False(status.IsValid)
		s.Equal(StatusNotRegistered, status.Status)
		s.True(status.ValidUntil.IsZero())
	})

	s.Run("expired", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).
			Return(tupleValidUntil(requestTime.Add(-24*time.Hour), true), nil)
		s.gateway.EXPECT().IsCurrentlyActive(gomock.Any(), visitorAddress).Return(false, nil)

		status, err := s.service.Status(s.ctx, visitorAddress)
		s.Require().NoError(err)
		s.True(status.IsRegistered)
		s.Equal(StatusExpired, status.Status)
		s.Equal(int64(0), status.DaysRemaining)
	})

	s.Run("active", func() {
		validUntil := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(tupleValidUntil(validUntil, true), nil)
		s.gateway.EXPECT().IsCurrentlyActive(gomock.Any(), visitorAddress).Return(true, nil)

		status, err := s.service.Status(s.ctx, visitorAddress)
		s.Require().NoError(err)
		s.True(status.IsValid)
		s.True(status.DerivedValid)
		s.Equal(StatusActive, status.Status)
		s.Equal(validUntil, status.ValidUntil)
		s.Equal(int64(15), status.DaysRemaining)
	})

	s.Run("ledger signal is reported independently", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).
			Return(tupleValidUntil(requestTime.Add(24*time.Hour), true), nil)
		s.gateway.EXPECT().IsCurrentlyActive(gomock.Any(), visitorAddress).Return(false, nil)

		status, err := s.service.Status(s.ctx, visitorAddress)
		s.Require().NoError(err)
		s.False(status.IsValid)
		s.True(status.DerivedValid)
		s.Equal(StatusActive, status.Status)
	})

	s.Run("validity read failure", func() {
		s.gateway.EXPECT().ReadByKey(gomock.Any(), visitorAddress).Return(nil, nil)
		s.gateway.EXPECT().IsCurrentlyActive(gomock.Any(), visitorAddress).Return(false, unreachable(ledger.OpRead))

		_, err := s.service.Status(s.ctx, visitorAddress)
		s.Equal(ledger.ReasonUnreachable, ledger.ReasonOf(err))
	})
}
