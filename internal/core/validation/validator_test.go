package validation

import (
	"strings"
	"testing"
	"time"

	"tdac-backend/internal/core/domain"
)

func arrivalCardPayload() map[string]any {
	return map[string]any{
		"firstName":           "Somchai",
		"lastName":            "Jaidee",
		"occupation":          "engineer",
		"nationality":         "Thai",
		"passportNo":          "AB1234567",
		"dateOfBirth":         "1990-05-20",
		"gender":              "MALE",
		"countryOfResidence":  "Thailand",
		"cityOfResidence":     "Bangkok",
		"phoneNo":             "+66812345678",
		"dateOfArrival":       "2026-09-15",
		"countryOfBoarded":    "Singapore",
		"purposeOfTravel":     "TOURISM",
		"modeOfTravel":        "AIR",
		"modeOfTransport":     "TG410",
		"typeOfAccommodation": "HOTEL",
		"province":            "Bangkok",
		"address":             "123 Sukhumvit Road",
	}
}

func tdacPayload() map[string]any {
	p := arrivalCardPayload()
	p["occupation"] = "employee"
	p["purposeOfTravel"] = "HOLIDAY"
	p["flightVehicleNo"] = "TG410"
	return p
}

func TestValidateAcceptsCompletePayload(t *testing.T) {
	input, errs := Validate(arrivalCardPayload(), domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if input.Variant != domain.VariantArrivalCard {
		t.Errorf("variant = %q, want %q", input.Variant, domain.VariantArrivalCard)
	}
	if input.FirstName != "Somchai" {
		t.Errorf("firstName = %q", input.FirstName)
	}
	if input.DateOfBirth != time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC) {
		t.Errorf("dateOfBirth = %v", input.DateOfBirth)
	}
	if input.ModeOfTransport == nil || *input.ModeOfTransport != "TG410" {
		t.Errorf("modeOfTransport = %v", input.ModeOfTransport)
	}
	if input.TypeOfAccommodation == nil || *input.TypeOfAccommodation != "HOTEL" {
		t.Errorf("typeOfAccommodation = %v", input.TypeOfAccommodation)
	}
	if input.IsTransit {
		t.Error("isTransit should default to false")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	input, errs := Validate(map[string]any{}, domain.ArrivalCardDescriptor())
	if input != nil {
		t.Fatal("expected nil input for empty payload")
	}

	// Every required field, the three accommodation fields, and
	// modeOfTransport must all be reported in one batch.
	desc := domain.ArrivalCardDescriptor()
	for _, field := range desc.RequiredFields {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for required field %q", field)
		}
	}
	for _, field := range []string{"typeOfAccommodation", "province", "address", "modeOfTransport"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for conditional field %q", field)
		}
	}
}

func TestValidateRequiredMessage(t *testing.T) {
	p := arrivalCardPayload()
	delete(p, "firstName")

	_, errs := Validate(p, domain.ArrivalCardDescriptor())
	if got := errs["firstName"]; got != "firstName is required" {
		t.Errorf("firstName error = %q", got)
	}
}

func TestValidateWhitespaceOnlyIsMissing(t *testing.T) {
	p := arrivalCardPayload()
	p["lastName"] = "   "

	_, errs := Validate(p, domain.ArrivalCardDescriptor())
	if _, ok := errs["lastName"]; !ok {
		t.Error("whitespace-only lastName should be treated as missing")
	}
}

func TestValidateTransitSkipsAccommodation(t *testing.T) {
	p := arrivalCardPayload()
	p["isTransit"] = true
	delete(p, "typeOfAccommodation")
	delete(p, "province")
	delete(p, "address")

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !input.IsTransit {
		t.Error("isTransit not carried through")
	}
}

func TestValidateTransitStringCoercion(t *testing.T) {
	p := arrivalCardPayload()
	p["isTransit"] = "true" // multipart form value
	delete(p, "typeOfAccommodation")
	delete(p, "province")
	delete(p, "address")

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !input.IsTransit {
		t.Error(`"true" string should coerce to transit`)
	}

	// Anything else is false.
	p2 := arrivalCardPayload()
	p2["isTransit"] = "TRUE"
	input2, errs2 := Validate(p2, domain.ArrivalCardDescriptor())
	if len(errs2) > 0 {
		t.Fatalf("unexpected errors: %v", errs2)
	}
	if input2.IsTransit {
		t.Error(`"TRUE" must not coerce to transit`)
	}
}

func TestValidateTransitNullsAccommodation(t *testing.T) {
	p := arrivalCardPayload()
	p["isTransit"] = true
	// Client supplied accommodation anyway; it must be dropped.

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.TypeOfAccommodation != nil || input.Province != nil || input.Address != nil {
		t.Error("accommodation fields must be nil for transit passengers")
	}
}

func TestValidateBusSkipsTransport(t *testing.T) {
	p := arrivalCardPayload()
	p["modeOfTravel"] = "BUS"
	delete(p, "modeOfTransport")

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.ModeOfTransport != nil {
		t.Error("modeOfTransport must be nil for BUS travel")
	}
}

func TestValidateBusNullsSuppliedTransport(t *testing.T) {
	p := arrivalCardPayload()
	p["modeOfTravel"] = "BUS"
	// modeOfTransport still present in the payload

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.ModeOfTransport != nil {
		t.Error("supplied modeOfTransport must be dropped for BUS travel")
	}
}

func TestValidateLowercaseBusGetsNoExemption(t *testing.T) {
	p := arrivalCardPayload()
	p["modeOfTravel"] = "bus"
	delete(p, "modeOfTransport")

	_, errs := Validate(p, domain.ArrivalCardDescriptor())
	if _, ok := errs["modeOfTravel"]; !ok {
		t.Error(`"bus" should fail the modeOfTravel enum`)
	}
	if _, ok := errs["modeOfTransport"]; !ok {
		t.Error(`"bus" must not exempt modeOfTransport`)
	}
}

func TestValidateEnumErrors(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"gender", "UNKNOWN"},
		{"purposeOfTravel", "VACATION"},
		{"modeOfTravel", "TRAIN"},
	}

	for _, tt := range tests {
		p := arrivalCardPayload()
		p[tt.field] = tt.value

		_, errs := Validate(p, domain.ArrivalCardDescriptor())
		want := "Invalid " + tt.field + " value"
		if got := errs[tt.field]; got != want {
			t.Errorf("%s=%q: error = %q, want %q", tt.field, tt.value, got, want)
		}
	}
}

func TestValidateDateErrors(t *testing.T) {
	for _, value := range []string{"20-05-1990", "1990/05/20", "notadate"} {
		p := arrivalCardPayload()
		p["dateOfBirth"] = value

		_, errs := Validate(p, domain.ArrivalCardDescriptor())
		want := "dateOfBirth must be a valid date (YYYY-MM-DD)"
		if got := errs["dateOfBirth"]; got != want {
			t.Errorf("dateOfBirth=%q: error = %q, want %q", value, got, want)
		}
	}
}

func TestValidateTDACOccupationEnum(t *testing.T) {
	p := tdacPayload()
	p["occupation"] = "astronaut"

	_, errs := Validate(p, domain.TDACDescriptor())
	if got := errs["occupation"]; got != "Invalid occupation value" {
		t.Errorf("occupation error = %q", got)
	}

	// The arrival card form has no occupation enum.
	p2 := arrivalCardPayload()
	p2["occupation"] = "astronaut"
	_, errs2 := Validate(p2, domain.ArrivalCardDescriptor())
	if _, ok := errs2["occupation"]; ok {
		t.Error("arrival card must not restrict occupation")
	}
}

func TestValidateTDACRequiresFlightVehicleNo(t *testing.T) {
	p := tdacPayload()
	delete(p, "flightVehicleNo")

	_, errs := Validate(p, domain.TDACDescriptor())
	if got := errs["flightVehicleNo"]; got != "flightVehicleNo is required" {
		t.Errorf("flightVehicleNo error = %q", got)
	}
}

func TestValidateTDACPurposeWithSpaces(t *testing.T) {
	p := tdacPayload()
	p["purposeOfTravel"] = "MEDICAL & WELLNESS"

	input, errs := Validate(p, domain.TDACDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.PurposeOfTravel != "MEDICAL & WELLNESS" {
		t.Errorf("purposeOfTravel = %q", input.PurposeOfTravel)
	}
}

func TestValidateTrimsStrings(t *testing.T) {
	p := arrivalCardPayload()
	p["firstName"] = "  Somchai  "

	input, errs := Validate(p, domain.ArrivalCardDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.FirstName != "Somchai" {
		t.Errorf("firstName = %q, want trimmed", input.FirstName)
	}
}

func TestValidateAttachmentURLsCarriedThrough(t *testing.T) {
	p := tdacPayload()
	p["passportPhotoUrl"] = "/uploads/abc.jpg"
	p["paymentSlipUrl"] = "/uploads/def.pdf"

	input, errs := Validate(p, domain.TDACDescriptor())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if input.PassportPhotoURL == nil || *input.PassportPhotoURL != "/uploads/abc.jpg" {
		t.Errorf("passportPhotoUrl = %v", input.PassportPhotoURL)
	}
	if input.PaymentSlipURL == nil || *input.PaymentSlipURL != "/uploads/def.pdf" {
		t.Errorf("paymentSlipUrl = %v", input.PaymentSlipURL)
	}
}

func TestErrorsMessages(t *testing.T) {
	errs := Errors{}
	errs.add("firstName", "firstName is required")
	errs.add("firstName", "should not overwrite")

	if errs["firstName"] != "firstName is required" {
		t.Error("first error for a field must win")
	}

	msg := errs.Messages()
	if !strings.Contains(msg, "firstName: firstName is required") {
		t.Errorf("Messages() = %q", msg)
	}
}
