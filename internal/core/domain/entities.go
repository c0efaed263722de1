package domain

import "time"

// Declaration status values
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Declaration variants
const (
	VariantArrivalCard = "ARRIVAL_CARD"
	VariantTDAC        = "TDAC"
)

// Mode of travel values (shared by both variants)
const (
	ModeAir  = "AIR"
	ModeLand = "LAND"
	ModeSea  = "SEA"
	ModeBus  = "BUS"
)

// ValidStatuses lists the allowed workflow statuses.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// IsValidStatus reports whether s is one of the workflow statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Descriptor describes one submission variant: which fields are always
// required and which enum sets apply. The two variants shipped with
// slightly different enum spellings (OTHER vs OTHERS, UNDEFINED vs OTHER),
// so the sets stay per-variant instead of being unified.
type Descriptor struct {
	Variant        string
	RequiredFields []string
	Genders        []string
	Purposes       []string
	// Occupations is checked only when non-empty.
	Occupations   []string
	ModesOfTravel []string
}

// ArrivalCardDescriptor is the descriptor for the public arrival-card form.
func ArrivalCardDescriptor() Descriptor {
	return Descriptor{
		Variant: VariantArrivalCard,
		RequiredFields: []string{
			"firstName", "lastName", "occupation", "nationality",
			"passportNo", "dateOfBirth", "gender", "countryOfResidence",
			"cityOfResidence", "phoneNo", "dateOfArrival",
			"countryOfBoarded", "purposeOfTravel", "modeOfTravel",
		},
		Genders:       []string{"MALE", "FEMALE", "OTHER"},
		Purposes:      []string{"TOURISM", "BUSINESS", "TRANSIT", "STUDY", "WORK", "MEDICAL", "OTHER"},
		ModesOfTravel: []string{ModeBus, ModeAir, ModeLand, ModeSea},
	}
}

// TDACDescriptor is the descriptor for the TDAC registration form, which
// additionally restricts occupation and requires a flight/vehicle number.
func TDACDescriptor() Descriptor {
	return Descriptor{
		Variant: VariantTDAC,
		RequiredFields: []string{
			"firstName", "lastName", "occupation", "nationality",
			"passportNo", "dateOfBirth", "gender", "countryOfResidence",
			"cityOfResidence", "phoneNo", "dateOfArrival",
			"countryOfBoarded", "purposeOfTravel", "modeOfTravel",
			"flightVehicleNo",
		},
		Genders: []string{"MALE", "FEMALE", "UNDEFINED"},
		Purposes: []string{
			"HOLIDAY", "MEETING", "SPORTS", "BUSINESS", "INCENTIVE",
			"MEDICAL & WELLNESS", "EDUCATION", "CONVENTION", "EMPLOYMENT",
			"EXHIBITION", "TRAVEL", "OTHERS",
		},
		Occupations:   []string{"freelancer", "employee", "seller"},
		ModesOfTravel: []string{ModeBus, ModeAir, ModeLand, ModeSea},
	}
}

// DeclarationInput is a normalized, typed creation record produced by the
// field validator. Pointer fields are nil when the value is absent or was
// forced to null by the transit/bus rules.
type DeclarationInput struct {
	Variant string

	FirstName          string
	LastName           string
	Occupation         string
	Nationality        string
	PassportNo         string
	DateOfBirth        time.Time
	Gender             string
	CountryOfResidence string
	CityOfResidence    string
	PhoneNo            string
	VisaNo             *string

	DateOfArrival    time.Time
	CountryOfBoarded string
	PurposeOfTravel  string
	ModeOfTravel     string
	ModeOfTransport  *string
	FlightVehicleNo  *string

	IsTransit           bool
	TypeOfAccommodation *string
	Province            *string
	Address             *string

	PassportPhotoURL *string
	PaymentSlipURL   *string
}
