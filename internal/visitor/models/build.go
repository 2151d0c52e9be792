package models

import (
	"fmt"
	"strings"
	"time"
)

// Build validates and normalizes a submission into a Record. It never stops
// at the first problem: all missing fields, malformed dates, unknown enum
// values and date-ordering violations are collected into one
// *ValidationError. now fixes "today" for the arrival check.
func Build(sub Submission, now time.Time) (*Record, error) {
	verr := &ValidationError{}

	for _, field := range requiredFields {
		if strings.TrimSpace(sub[field]) == "" {
			verr.add(field, fmt.Sprintf("%s is required", field))
		}
	}

	checkDate(verr, sub, FieldDateOfBirth)
	arrival, arrivalOK := checkDate(verr, sub, FieldArrivalDate)
	departure, departureOK := checkDate(verr, sub, FieldDepartureDate)

	for _, field := range []string{FieldEntryPoint, FieldPurposeOfVisit, FieldEmergencyContactRelation} {
		v := normalizeEnum(sub[field])
		if v == "" {
			continue
		}
		if allowed := enumFields[field]; !oneOf(v, allowed) {
			verr.add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
		}
	}

	if arrivalOK && departureOK && !departure.After(arrival) {
		verr.add(FieldDepartureDate, "departureDate must be after arrivalDate")
	}
	if arrivalOK && arrival.Before(startOfDay(now)) {
		verr.add(FieldArrivalDate, "arrivalDate cannot be in the past")
	}

	if err := verr.result(); err != nil {
		return nil, err
	}

	userType := strings.TrimSpace(sub[FieldUserType])
	if userType == "" {
		userType = DefaultUserType
	}

	return &Record{
		Identity: Identity{
			Name:        trimmed(sub, FieldName),
			Passport:    NormalizeDocumentNumber(sub[FieldPassport]),
			DateOfBirth: trimmed(sub, FieldDateOfBirth),
			Nationality: trimmed(sub, FieldNationality),
			PhoneNumber: trimmed(sub, FieldPhoneNumber),
			EntryPoint:  normalizeEnum(sub[FieldEntryPoint]),
		},
		Trip: Trip{
			ArrivalDate:          trimmed(sub, FieldArrivalDate),
			DepartureDate:        trimmed(sub, FieldDepartureDate),
			PrimaryDestination:   trimmed(sub, FieldPrimaryDestination),
			PurposeOfVisit:       normalizeEnum(sub[FieldPurposeOfVisit]),
			AccommodationDetails: trimmed(sub, FieldAccommodationDetails),
			Itinerary:            trimmed(sub, FieldItinerary),
		},
		Emergency: Emergency{
			ContactName:     trimmed(sub, FieldEmergencyContactName),
			ContactPhone:    trimmed(sub, FieldEmergencyContactPhone),
			ContactRelation: normalizeEnum(sub[FieldEmergencyContactRelation]),
			ContactAddress:  trimmed(sub, FieldEmergencyContactAddress),
			LocalContact:    trimmed(sub, FieldLocalEmergencyContact),
		},
		UserType:   userType,
		ValidUntil: validUntilFrom(departure),
	}, nil
}

// checkDate records a format problem for a present-but-malformed date.
// Blank values were already reported as missing.
func checkDate(verr *ValidationError, sub Submission, field string) (time.Time, bool) {
	v := strings.TrimSpace(sub[field])
	if v == "" {
		return time.Time{}, false
	}
	t, ok := ParseDate(v)
	if !ok {
		verr.add(field, fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", field))
	}
	return t, ok
}

func trimmed(sub Submission, field string) string {
	return strings.TrimSpace(sub[field])
}
