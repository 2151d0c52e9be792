package ledger

import (
	_ "embed"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"visitorid/internal/visitor/models"
)

//go:embed touristid.abi.json
var touristIDABI string

// Contract method names.
const (
	methodRegister      = "registerTourist"
	methodGetTourist    = "getTourist"
	methodGetByPassport = "getTouristByPassport"
	methodIsValid       = "isValidTourist"
	methodTouristCount  = "getTouristCount"
)

func parseABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(touristIDABI))
}

// The structs below mirror the contract tuples. Field names are the
// CamelCase form of the ABI component names so the abi package can pack and
// convert them by reflection.

type kycInfo struct {
	Name        string
	Passport    string
	DateOfBirth string
	Nationality string
	PhoneNumber string
	EntryPoint  string
}

type tripInfo struct {
	ArrivalDate          string
	DepartureDate        string
	PrimaryDestination   string
	PurposeOfVisit       string
	AccommodationDetails string
	Itinerary            string
}

type emergencyInfo struct {
	EmergencyContactName     string
	EmergencyContactPhone    string
	EmergencyContactRelation string
	EmergencyContactAddress  string
	LocalEmergencyContact    string
}

type touristTuple struct {
	Kyc                   kycInfo
	Trip                  tripInfo
	Emergency             emergencyInfo
	UserType              string
	ValidUntil            *big.Int
	RegistrationTimestamp *big.Int
	IsActive              bool
}

// registerArgs are the positional arguments of registerTourist.
type registerArgs struct {
	Kyc        kycInfo
	Trip       tripInfo
	Emergency  emergencyInfo
	UserType   string
	ValidUntil *big.Int
}

func newRegisterArgs(rec *models.Record) registerArgs {
	return registerArgs{
		Kyc: kycInfo{
			Name:        rec.Identity.Name,
			Passport:    rec.Identity.Passport,
			DateOfBirth: rec.Identity.DateOfBirth,
			Nationality: rec.Identity.Nationality,
			PhoneNumber: rec.Identity.PhoneNumber,
			EntryPoint:  rec.Identity.EntryPoint,
		},
		Trip: tripInfo{
			ArrivalDate:          rec.Trip.ArrivalDate,
			DepartureDate:        rec.Trip.DepartureDate,
			PrimaryDestination:   rec.Trip.PrimaryDestination,
			PurposeOfVisit:       rec.Trip.PurposeOfVisit,
			AccommodationDetails: rec.Trip.AccommodationDetails,
			Itinerary:            rec.Trip.Itinerary,
		},
		Emergency: emergencyInfo{
			EmergencyContactName:     rec.Emergency.ContactName,
			EmergencyContactPhone:    rec.Emergency.ContactPhone,
			EmergencyContactRelation: rec.Emergency.ContactRelation,
			EmergencyContactAddress:  rec.Emergency.ContactAddress,
			LocalEmergencyContact:    rec.Emergency.LocalContact,
		},
		UserType:   rec.UserType,
		ValidUntil: big.NewInt(rec.ValidUntil),
	}
}

// tupleExists is the single place that knows the contract's absence
// convention: an unregistered address reads back as a zero-valued tuple.
func tupleExists(t touristTuple) bool {
	return t.Kyc.Name != ""
}

func (t touristTuple) toModel() *models.LedgerTuple {
	return &models.LedgerTuple{
		Identity: models.Identity{
			Name:        t.Kyc.Name,
			Passport:    t.Kyc.Passport,
			DateOfBirth: t.Kyc.DateOfBirth,
			Nationality: t.Kyc.Nationality,
			PhoneNumber: t.Kyc.PhoneNumber,
			EntryPoint:  t.Kyc.EntryPoint,
		},
		Trip: models.Trip{
			ArrivalDate:          t.Trip.ArrivalDate,
			DepartureDate:        t.Trip.DepartureDate,
			PrimaryDestination:   t.Trip.PrimaryDestination,
			PurposeOfVisit:       t.Trip.PurposeOfVisit,
			AccommodationDetails: t.Trip.AccommodationDetails,
			Itinerary:            t.Trip.Itinerary,
		},
		Emergency: models.Emergency{
			ContactName:     t.Emergency.EmergencyContactName,
			ContactPhone:    t.Emergency.EmergencyContactPhone,
			ContactRelation: t.Emergency.EmergencyContactRelation,
			ContactAddress:  t.Emergency.EmergencyContactAddress,
			LocalContact:    t.Emergency.LocalEmergencyContact,
		},
		UserType:     t.UserType,
		ValidUntil:   bigToInt64(t.ValidUntil),
		RegisteredAt: bigToInt64(t.RegistrationTimestamp),
		Active:       t.IsActive,
	}
}

func bigToInt64(v *big.Int) int64 {
	if v == nil || !v.IsInt64() {
		return 0
	}
	return v.Int64()
}
