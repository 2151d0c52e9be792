package models

// Submission is a raw registration payload keyed by wire field name. Values
// are untrusted and untrimmed; Build turns them into a Record.
type Submission map[string]string

// Wire field names of a submission.
const (
	FieldName        = "name"
	FieldPassport    = "passport"
	FieldDateOfBirth = "dateOfBirth"
	FieldNationality = "nationality"
	FieldPhoneNumber = "phoneNumber"
	FieldEntryPoint  = "entryPoint"

	FieldArrivalDate          = "arrivalDate"
	FieldDepartureDate        = "departureDate"
	FieldPrimaryDestination   = "primaryDestination"
	FieldPurposeOfVisit       = "purposeOfVisit"
	FieldAccommodationDetails = "accommodationDetails"
	FieldItinerary            = "itinerary"

	FieldEmergencyContactName     = "emergencyContactName"
	FieldEmergencyContactPhone    = "emergencyContactPhone"
	FieldEmergencyContactRelation = "emergencyContactRelation"
	FieldEmergencyContactAddress  = "emergencyContactAddress"
	FieldLocalEmergencyContact    = "localEmergencyContact"

	FieldUserType = "userType"
)

// DefaultUserType is applied when a submission carries no visitor category.
const DefaultUserType = "tourist"

// requiredFields lists mandatory fields in report order, grouped identity,
// trip, emergency.
var requiredFields = []string{
	FieldName, FieldPassport, FieldDateOfBirth, FieldNationality, FieldPhoneNumber, FieldEntryPoint,
	FieldArrivalDate, FieldDepartureDate, FieldPrimaryDestination, FieldPurposeOfVisit,
	FieldEmergencyContactName, FieldEmergencyContactPhone, FieldEmergencyContactRelation, FieldEmergencyContactAddress,
}

// RequiredFields returns a copy of the mandatory field names.
func RequiredFields() []string {
	return append([]string(nil), requiredFields...)
}

// SensitiveFields are never written to logs.
var SensitiveFields = map[string]struct{}{
	FieldPassport:              {},
	FieldPhoneNumber:           {},
	FieldEmergencyContactPhone: {},
}

// Redacted returns a copy with sensitive values masked, for request logging.
func (s Submission) Redacted() map[string]string {
	out := make(map[string]string, len(s))
	for k, v := range s {
		if _, ok := SensitiveFields[k]; ok && v != "" {
			out[k] = "***HIDDEN***"
			continue
		}
		out[k] = v
	}
	return out
}
