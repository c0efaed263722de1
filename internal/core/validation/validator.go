// Package validation checks raw submission payloads against a variant
// descriptor and produces a normalized creation record or a batch of
// field-level errors.
package validation

import (
	"fmt"
	"strings"
	"time"

	"tdac-backend/internal/core/domain"
)

// DateLayout is the calendar-date wire format for dateOfBirth/dateOfArrival.
const DateLayout = "2006-01-02"

// Errors maps a field name to a human-readable message. Validation never
// fails fast; all problems are reported in one batch.
type Errors map[string]string

func (e Errors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Messages renders the collected errors as "field: message" lines, used by
// the HTTP layer for warning logs.
func (e Errors) Messages() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate checks a raw key-value payload (values are strings or JSON
// primitives as received over the wire) against desc and returns either a
// normalized DeclarationInput or a non-empty error map. The rules run in a
// fixed order: always-required fields, conditional accommodation fields,
// conditional transport field, enum membership, date parsing. Fields
// disallowed by the transit/bus branches are forced to nil in the
// normalized record even when the client supplied them.
func Validate(payload map[string]any, desc domain.Descriptor) (*domain.DeclarationInput, Errors) {
	errs := Errors{}

	for _, field := range desc.RequiredFields {
		if stringField(payload, field) == "" {
			errs.add(field, field+" is required")
		}
	}

	isTransit := boolField(payload, "isTransit")
	if !isTransit {
		for _, field := range []string{"typeOfAccommodation", "province", "address"} {
			if stringField(payload, field) == "" {
				errs.add(field, field+" is required for non-transit passengers")
			}
		}
	}

	// Exact match against the enum value, deliberately case-sensitive:
	// "bus" does not qualify for the exemption.
	modeOfTravel := stringField(payload, "modeOfTravel")
	if modeOfTravel != domain.ModeBus {
		if stringField(payload, "modeOfTransport") == "" {
			errs.add("modeOfTransport", "modeOfTransport is required")
		}
	}

	checkEnum(errs, payload, "gender", desc.Genders)
	checkEnum(errs, payload, "purposeOfTravel", desc.Purposes)
	checkEnum(errs, payload, "modeOfTravel", desc.ModesOfTravel)
	if len(desc.Occupations) > 0 {
		checkEnum(errs, payload, "occupation", desc.Occupations)
	}

	dateOfBirth := dateField(errs, payload, "dateOfBirth")
	dateOfArrival := dateField(errs, payload, "dateOfArrival")

	if len(errs) > 0 {
		return nil, errs
	}

	input := &domain.DeclarationInput{
		Variant:            desc.Variant,
		FirstName:          stringField(payload, "firstName"),
		LastName:           stringField(payload, "lastName"),
		Occupation:         stringField(payload, "occupation"),
		Nationality:        stringField(payload, "nationality"),
		PassportNo:         stringField(payload, "passportNo"),
		DateOfBirth:        dateOfBirth,
		Gender:             stringField(payload, "gender"),
		CountryOfResidence: stringField(payload, "countryOfResidence"),
		CityOfResidence:    stringField(payload, "cityOfResidence"),
		PhoneNo:            stringField(payload, "phoneNo"),
		VisaNo:             optionalField(payload, "visaNo"),
		DateOfArrival:      dateOfArrival,
		CountryOfBoarded:   stringField(payload, "countryOfBoarded"),
		PurposeOfTravel:    stringField(payload, "purposeOfTravel"),
		ModeOfTravel:       modeOfTravel,
		FlightVehicleNo:    optionalField(payload, "flightVehicleNo"),
		IsTransit:          isTransit,
		PassportPhotoURL:   optionalField(payload, "passportPhotoUrl"),
		PaymentSlipURL:     optionalField(payload, "paymentSlipUrl"),
	}

	// Derived nulling: drop values the branch rules disallow even if the
	// client sent them.
	if modeOfTravel != domain.ModeBus {
		input.ModeOfTransport = optionalField(payload, "modeOfTransport")
	}
	if !isTransit {
		input.TypeOfAccommodation = optionalField(payload, "typeOfAccommodation")
		input.Province = optionalField(payload, "province")
		input.Address = optionalField(payload, "address")
	}

	return input, nil
}

func checkEnum(errs Errors, payload map[string]any, field string, allowed []string) {
	value := stringField(payload, field)
	if value == "" {
		return // missing is reported by the required pass
	}
	for _, v := range allowed {
		if value == v {
			return
		}
	}
	errs.add(field, "Invalid "+field+" value")
}

func dateField(errs Errors, payload map[string]any, field string) time.Time {
	value := stringField(payload, field)
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		errs.add(field, field+" must be a valid date (YYYY-MM-DD)")
		return time.Time{}
	}
	return t
}

// stringField extracts a trimmed string for field. Non-string JSON
// primitives are stringified; nil and absent keys yield "".
func stringField(payload map[string]any, field string) string {
	v, ok := payload[field]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// boolField accepts a native true or the literal string "true"; everything
// else is false.
func boolField(payload map[string]any, field string) bool {
	switch v := payload[field].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func optionalField(payload map[string]any, field string) *string {
	value := stringField(payload, field)
	if value == "" {
		return nil
	}
	return &value
}
