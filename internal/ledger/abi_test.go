package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTouristOutput_DecodesIntoLedgerTuple(t *testing.T) {
	parsed, err := parseABI()
	require.NoError(t, err)

	stored := touristTuple{
		Kyc: kycInfo{
			Name:        "Ada Lovelace",
			Passport:    "P1234567",
			DateOfBirth: "1990-05-15",
			Nationality: "British",
			PhoneNumber: "+44 20 7946 0000",
			EntryPoint:  "Delhi Airport",
		},
		Trip: tripInfo{
			ArrivalDate:          "2025-03-01",
			DepartureDate:        "2025-03-15",
			PrimaryDestination:   "Jaipur",
			PurposeOfVisit:       "Tourism",
			AccommodationDetails: "Hotel Pearl",
			Itinerary:            "Jaipur, Agra",
		},
		Emergency: emergencyInfo{
			EmergencyContactName:     "Charles Babbage",
			EmergencyContactPhone:    "+44 20 7946 0001",
			EmergencyContactRelation: "Friend",
			EmergencyContactAddress:  "London",
			LocalEmergencyContact:    "",
		},
		UserType:              "foreign",
		ValidUntil:            big.NewInt(1742083200),
		RegistrationTimestamp: big.NewInt(1740825000),
		IsActive:              true,
	}

	packed, err := parsed.Methods[methodGetTourist].Outputs.Pack(stored)
	require.NoError(t, err)
	out, err := parsed.Unpack(methodGetTourist, packed)
	require.NoError(t, err)
	require.Len(t, out, 1)

	decoded, err := tupleAt(out, 0)
	require.NoError(t, err)
	require.True(t, tupleExists(decoded))

	got := decoded.toModel()
	assert.Equal(t, "Ada Lovelace", got.Identity.Name)
	assert.Equal(t, "P1234567", got.Identity.Passport)
	assert.Equal(t, "Delhi Airport", got.Identity.EntryPoint)
	assert.Equal(t, "2025-03-15", got.Trip.DepartureDate)
	assert.Equal(t, "Jaipur, Agra", got.Trip.Itinerary)
	assert.Equal(t, "Charles Babbage", got.Emergency.ContactName)
	assert.Equal(t, "", got.Emergency.LocalContact)
	assert.Equal(t, "foreign", got.UserType)
	assert.Equal(t, int64(1742083200), got.ValidUntil)
	assert.Equal(t, int64(1740825000), got.RegisteredAt)
	assert.True(t, got.Active)
}

func TestGetTouristOutput_ZeroTupleReadsAsAbsent(t *testing.T) {
	parsed, err := parseABI()
	require.NoError(t, err)

	packed, err := parsed.Methods[methodGetTourist].Outputs.Pack(touristTuple{
		ValidUntil:            new(big.Int),
		RegistrationTimestamp: new(big.Int),
	})
	require.NoError(t, err)
	out, err := parsed.Unpack(methodGetTourist, packed)
	require.NoError(t, err)

	decoded, err := tupleAt(out, 0)
	require.NoError(t, err)
	assert.False(t, tupleExists(decoded))
	assert.Equal(t, int64(0), decoded.toModel().ValidUntil)
}

func TestTupleAt_MissingOutput(t *testing.T) {
	_, err := tupleAt(nil, 0)
	assert.Error(t, err)
}
