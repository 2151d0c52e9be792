package models

// Identity is the KYC group of a record.
type Identity struct {
	Name        string `json:"name"`
	Passport    string `json:"passport"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	PhoneNumber string `json:"phoneNumber"`
	EntryPoint  string `json:"entryPoint"`
}

// Trip describes the visit itself.
type Trip struct {
	ArrivalDate          string `json:"arrivalDate"`
	DepartureDate        string `json:"departureDate"`
	PrimaryDestination   string `json:"primaryDestination"`
	PurposeOfVisit       string `json:"purposeOfVisit"`
	AccommodationDetails string `json:"accommodationDetails"`
	Itinerary            string `json:"itinerary"`
}

// Emergency holds the visitor's emergency contact.
type Emergency struct {
	ContactName     string `json:"emergencyContactName"`
	ContactPhone    string `json:"emergencyContactPhone"`
	ContactRelation string `json:"emergencyContactRelation"`
	ContactAddress  string `json:"emergencyContactAddress"`
	LocalContact    string `json:"localEmergencyContact"`
}

// Record is a validated, normalized registration ready to be written to the
// ledger.
//
// Invariants:
//   - Every required field is non-blank and trimmed
//   - Identity.Passport is upper case
//   - Trip.DepartureDate is strictly after Trip.ArrivalDate
//   - ValidUntil is UTC midnight of the day after departure, in epoch seconds
//
// Registration time and the active flag are owned by the ledger and only
// appear on LedgerTuple.
type Record struct {
	Identity   Identity  `json:"kyc"`
	Trip       Trip      `json:"trip"`
	Emergency  Emergency `json:"emergency"`
	UserType   string    `json:"userType"`
	ValidUntil int64     `json:"validUntil"`
}

// LedgerTuple is the stored shape read back from the ledger.
type LedgerTuple struct {
	Identity     Identity  `json:"kyc"`
	Trip         Trip      `json:"trip"`
	Emergency    Emergency `json:"emergency"`
	UserType     string    `json:"userType"`
	ValidUntil   int64     `json:"validUntil"`
	RegisteredAt int64     `json:"registrationTimestamp"`
	Active       bool      `json:"isActive"`
}

// ToTuple returns the tuple written to the ledger. RegisteredAt and Active
// are left zero; the ledger assigns them.
func (r *Record) ToTuple() LedgerTuple {
	return LedgerTuple{
		Identity:   r.Identity,
		Trip:       r.Trip,
		Emergency:  r.Emergency,
		UserType:   r.UserType,
		ValidUntil: r.ValidUntil,
	}
}
