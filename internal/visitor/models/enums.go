package models

import "strings"

// EntryPoint is where the visitor entered the country.
type EntryPoint string

const (
	EntryAirport   EntryPoint = "airport"
	EntryHotel     EntryPoint = "hotel"
	EntryCheckpost EntryPoint = "checkpost"
	EntryRailway   EntryPoint = "railway"
	EntrySeaport   EntryPoint = "seaport"
)

// Purpose is the declared reason for the visit.
type Purpose string

const (
	PurposeTourism    Purpose = "tourism"
	PurposeBusiness   Purpose = "business"
	PurposeMedical    Purpose = "medical"
	PurposeEducation  Purpose = "education"
	PurposePilgrimage Purpose = "pilgrimage"
	PurposeFamily     Purpose = "family"
	PurposeOther      Purpose = "other"
)

// Relationship links the emergency contact to the visitor.
type Relationship string

const (
	RelationParent    Relationship = "parent"
	RelationSpouse    Relationship = "spouse"
	RelationSibling   Relationship = "sibling"
	RelationFriend    Relationship = "friend"
	RelationColleague Relationship = "colleague"
	RelationOther     Relationship = "other"
)

var (
	entryPoints   = []string{string(EntryAirport), string(EntryHotel), string(EntryCheckpost), string(EntryRailway), string(EntrySeaport)}
	purposes      = []string{string(PurposeTourism), string(PurposeBusiness), string(PurposeMedical), string(PurposeEducation), string(PurposePilgrimage), string(PurposeFamily), string(PurposeOther)}
	relationships = []string{string(RelationParent), string(RelationSpouse), string(RelationSibling), string(RelationFriend), string(RelationColleague), string(RelationOther)}
)

// enumFields maps an enumerated submission field to its allowed values.
var enumFields = map[string][]string{
	FieldEntryPoint:               entryPoints,
	FieldPurposeOfVisit:           purposes,
	FieldEmergencyContactRelation: relationships,
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func normalizeEnum(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
