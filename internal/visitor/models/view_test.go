package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitorid/pkg/testutil"
)

func storedTuple(validUntil int64, active bool) LedgerTuple {
	return LedgerTuple{
		Identity:     Identity{Name: "Ada Lovelace", Passport: "P1234567"},
		UserType:     DefaultUserType,
		ValidUntil:   validUntil,
		RegisteredAt: fixedNow.Add(-time.Hour).Unix(),
		Active:       active,
	}
}

func TestDeriveView(t *testing.T) {
	now := fixedNow

	testutil.Given(t, "an active record expiring in 36 hours", func(t *testing.T) {
		tuple := storedTuple(now.Add(36*time.Hour).Unix(), true)

		testutil.Then(t, "it is valid with two days remaining", func(t *testing.T) {
			view := DeriveView(tuple, now)
			assert.True(t, view.IsValid)
			assert.Equal(t, int64(2), view.DaysRemaining)
		})
	})

	testutil.Given(t, "an active record expiring exactly in one day", func(t *testing.T) {
		tuple := storedTuple(now.Add(24*time.Hour).Unix(), true)

		testutil.Then(t, "one day remains", func(t *testing.T) {
			assert.Equal(t, int64(1), DeriveView(tuple, now).DaysRemaining)
		})
	})

	testutil.Given(t, "a record whose validity ends now", func(t *testing.T) {
		tuple := storedTuple(now.Unix(), true)

		testutil.Then(t, "it is no longer valid", func(t *testing.T) {
			view := DeriveView(tuple, now)
			assert.False(t, view.IsValid)
			assert.Equal(t, int64(0), view.DaysRemaining)
		})
	})

	testutil.Given(t, "an expired record", func(t *testing.T) {
		tuple := storedTuple(now.Add(-72*time.Hour).Unix(), true)

		testutil.Then(t, "days remaining is clamped at zero", func(t *testing.T) {
			view := DeriveView(tuple, now)
			assert.False(t, view.IsValid)
			assert.Equal(t, int64(0), view.DaysRemaining)
		})
	})

	testutil.Given(t, "a deactivated record with time left", func(t *testing.T) {
		tuple := storedTuple(now.Add(48*time.Hour).Unix(), false)

		testutil.Then(t, "it is invalid but still reports the remaining window", func(t *testing.T) {
			view := DeriveView(tuple, now)
			assert.False(t, view.IsValid)
			assert.Equal(t, int64(2), view.DaysRemaining)
		})
	})
}

func TestDeriveView_IsPure(t *testing.T) {
	tuple := storedTuple(fixedNow.Add(100*time.Hour).Unix(), true)
	first := DeriveView(tuple, fixedNow)
	second := DeriveView(tuple, fixedNow)
	assert.Equal(t, first, second)
}

func TestRecordRoundTripThroughTuple(t *testing.T) {
	sub := validSubmission()
	sub[FieldItinerary] = "Jaipur, Udaipur"
	rec, err := Build(sub, fixedNow)
	require.NoError(t, err)

	stored := rec.ToTuple()
	stored.Active = true
	stored.RegisteredAt = fixedNow.Unix()

	view := DeriveView(stored, fixedNow)
	assert.Equal(t, rec.Identity, view.Identity)
	assert.Equal(t, rec.Trip, view.Trip)
	assert.Equal(t, rec.Emergency, view.Emergency)
	assert.Equal(t, rec.ValidUntil, view.ValidUntil)
	assert.True(t, view.IsValid)
}

func TestValidatePrimaryKey(t *testing.T) {
	assert.NoError(t, ValidatePrimaryKey("0x5FbDB2315678afecb367f032d93F642f64180aa3"))

	for _, bad := range []string{
		"",
		"5FbDB2315678afecb367f032d93F642f64180aa3",
		"0x5FbDB2315678afecb367f032d93F642f64180aa",
		"0xZZbDB2315678afecb367f032d93F642f64180aa3",
		"1x5FbDB2315678afecb367f032d93F642f64180aa3",
	} {
		err := ValidatePrimaryKey(bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, bad)
		assert.Equal(t, []string{"address"}, verr.Fields)
	}
}

func TestDocumentNumber(t *testing.T) {
	assert.Equal(t, "AB123", NormalizeDocumentNumber("  ab123 "))
	assert.Error(t, ValidateDocumentNumber("   "))
	assert.NoError(t, ValidateDocumentNumber("ab123"))
}
