package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/core/domain"
)

func newTestService(t *testing.T) *DeclarationService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewDeclarationService(repositories.NewDeclarationRepository(db))
}

func submissionPayload(passportNo string) map[string]any {
	return map[string]any{
		"firstName":           "Somchai",
		"lastName":            "Jaidee",
		"occupation":          "employee",
		"nationality":         "Thai",
		"passportNo":          passportNo,
		"dateOfBirth":         "1990-05-20",
		"gender":              "MALE",
		"countryOfResidence":  "Thailand",
		"cityOfResidence":     "Bangkok",
		"phoneNo":             "+66812345678",
		"dateOfArrival":       "2026-09-15",
		"countryOfBoarded":    "Singapore",
		"purposeOfTravel":     "HOLIDAY",
		"modeOfTravel":        "AIR",
		"modeOfTransport":     "TG410",
		"flightVehicleNo":     "TG410",
		"typeOfAccommodation": "HOTEL",
		"province":            "Bangkok",
		"address":             "123 Sukhumvit Road",
	}
}

func TestSubmitPersistsPending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	decl, fieldErrs, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(fieldErrs) > 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if decl.ID == "" {
		t.Fatal("declaration should be assigned an ID")
	}
	if decl.Status != domain.StatusPending {
		t.Errorf("Status = %q, want PENDING", decl.Status)
	}

	got, err := svc.GetByID(ctx, decl.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PassportNo != "AB1234567" {
		t.Errorf("PassportNo = %q", got.PassportNo)
	}
}

func TestSubmitReturnsFieldErrors(t *testing.T) {
	svc := newTestService(t)

	payload := submissionPayload("AB1234567")
	delete(payload, "firstName")
	payload["gender"] = "INVALID"

	decl, fieldErrs, err := svc.Submit(context.Background(), payload, domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if decl != nil {
		t.Error("declaration should not be persisted on validation failure")
	}
	if fieldErrs["firstName"] != "firstName is required" {
		t.Errorf("firstName error = %q", fieldErrs["firstName"])
	}
	if fieldErrs["gender"] != "Invalid gender value" {
		t.Errorf("gender error = %q", fieldErrs["gender"])
	}
}

func TestSubmitDuplicatePassport(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	_, fieldErrs, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if len(fieldErrs) > 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if !errors.Is(err, domain.ErrDuplicatePassportNo) {
		t.Errorf("error = %v, want ErrDuplicatePassportNo", err)
	}
}

func TestSetStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	decl, _, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	before := time.Now()
	notes := "documents verified"
	updated, err := svc.SetStatus(ctx, decl.ID, domain.StatusApproved, &notes)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	if updated.Status != domain.StatusApproved {
		t.Errorf("Status = %q, want APPROVED", updated.Status)
	}
	if updated.Notes == nil || *updated.Notes != "documents verified" {
		t.Errorf("Notes = %v", updated.Notes)
	}
	if updated.ProcessedAt == nil || updated.ProcessedAt.Before(before) {
		t.Errorf("ProcessedAt = %v, want >= %v", updated.ProcessedAt, before)
	}
}

func TestSetStatusRecomputesProcessedAt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	decl, _, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	first, err := svc.SetStatus(ctx, decl.ID, domain.StatusApproved, nil)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	firstProcessed := *first.ProcessedAt

	time.Sleep(10 * time.Millisecond)

	// Repeating the same status is allowed and bumps processedAt.
	second, err := svc.SetStatus(ctx, decl.ID, domain.StatusApproved, nil)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if !second.ProcessedAt.After(firstProcessed) {
		t.Errorf("ProcessedAt not recomputed: %v vs %v", second.ProcessedAt, firstProcessed)
	}
}

func TestSetStatusInvalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SetStatus(context.Background(), "any-id", "SHIPPED", nil)
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestSetStatusNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SetStatus(context.Background(), "missing-id", domain.StatusApproved, nil)
	if !errors.Is(err, domain.ErrDeclarationNotFound) {
		t.Errorf("error = %v, want ErrDeclarationNotFound", err)
	}
}

func TestListDefaultsAndFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	passports := []string{"AA1111111", "BB2222222", "CC3333333"}
	for _, p := range passports {
		if _, _, err := svc.Submit(ctx, submissionPayload(p), domain.TDACDescriptor()); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	out, err := svc.List(ctx, &ListInput{Variant: domain.VariantTDAC})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if out.Page != 1 || out.Limit != 10 {
		t.Errorf("defaults: page = %d, limit = %d, want 1/10", out.Page, out.Limit)
	}
	if out.Total != 3 || len(out.Declarations) != 3 {
		t.Errorf("total = %d, len = %d, want 3", out.Total, len(out.Declarations))
	}

	// An unknown status filter is ignored rather than rejected.
	out, err = svc.List(ctx, &ListInput{Variant: domain.VariantTDAC, Status: "SHIPPED"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if out.Total != 3 {
		t.Errorf("total = %d, want 3 with ignored status", out.Total)
	}
}

func TestUpdateMergesAndRenulls(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	decl, _, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	firstName := "Anan"
	isTransit := true
	updated, fieldErrs, err := svc.Update(ctx, decl.ID, &UpdateInput{
		FirstName: &firstName,
		IsTransit: &isTransit,
	}, domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(fieldErrs) > 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}

	if updated.FirstName != "Anan" {
		t.Errorf("FirstName = %q", updated.FirstName)
	}
	if updated.LastName != "Jaidee" {
		t.Errorf("LastName = %q, untouched fields must survive", updated.LastName)
	}
	// Switching to transit drops the accommodation block.
	if updated.TypeOfAccommodation != nil || updated.Province != nil || updated.Address != nil {
		t.Error("accommodation fields must be nil after switching to transit")
	}
}

func TestUpdateRejectsBadEnum(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	decl, _, err := svc.Submit(ctx, submissionPayload("AB1234567"), domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	gender := "INVALID"
	_, fieldErrs, err := svc.Update(ctx, decl.ID, &UpdateInput{Gender: &gender}, domain.TDACDescriptor())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if fieldErrs["gender"] != "Invalid gender value" {
		t.Errorf("gender error = %q", fieldErrs["gender"])
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	passports := []string{"AA1111111", "BB2222222", "CC3333333"}
	for _, p := range passports {
		if _, _, err := svc.Submit(ctx, submissionPayload(p), domain.TDACDescriptor()); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	first, err := svc.List(ctx, &ListInput{Variant: domain.VariantTDAC})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := svc.SetStatus(ctx, first.Declarations[0].ID, domain.StatusApproved, nil); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	stats, err := svc.Stats(ctx, domain.VariantTDAC)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Summary.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Summary.Total)
	}
	if stats.Summary.Pending != 2 || stats.Summary.Approved != 1 {
		t.Errorf("Pending = %d, Approved = %d", stats.Summary.Pending, stats.Summary.Approved)
	}
	if stats.OccupationBreakdown["employee"] != 3 {
		t.Errorf("occupation breakdown = %v", stats.OccupationBreakdown)
	}
	if len(stats.Recent) != 3 {
		t.Errorf("len(Recent) = %d, want 3", len(stats.Recent))
	}
}
