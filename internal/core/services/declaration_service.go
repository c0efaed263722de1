package services

import (
	"context"
	"time"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/core/domain"
	"tdac-backend/internal/core/validation"
)

// DeclarationService handles travel-declaration business logic for both
// submission variants; the variant descriptor travels with each call.
type DeclarationService struct {
	declRepo repositories.DeclarationRepository
}

// NewDeclarationService creates a new declaration service
func NewDeclarationService(declRepo repositories.DeclarationRepository) *DeclarationService {
	return &DeclarationService{declRepo: declRepo}
}

// Submit validates a raw payload against the descriptor and persists the
// normalized declaration. Field errors come back as a batch; they never
// reach the repository.
func (s *DeclarationService) Submit(ctx context.Context, payload map[string]any, desc domain.Descriptor) (*models.Declaration, validation.Errors, error) {
	input, fieldErrs := validation.Validate(payload, desc)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	decl := models.NewDeclaration(input)
	if err := s.declRepo.Create(ctx, decl); err != nil {
		return nil, nil, err
	}

	return decl, nil, nil
}

// GetByID gets a declaration by ID
func (s *DeclarationService) GetByID(ctx context.Context, id string) (*models.Declaration, error) {
	return s.declRepo.GetByID(ctx, id)
}

// ListInput represents list input
type ListInput struct {
	Page    int
	Limit   int
	Status  string
	Variant string
}

// ListOutput represents one page of declarations
type ListOutput struct {
	Declarations []*models.Declaration
	Total        int64
	Page         int
	Limit        int
}

// List lists declarations newest first. Non-positive page/limit fall back
// to 1/10; a status filter outside the enumeration is ignored.
func (s *DeclarationService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	status := input.Status
	if status != "" && !domain.IsValidStatus(status) {
		status = ""
	}

	decls, total, err := s.declRepo.List(ctx, repositories.ListFilter{
		Variant: input.Variant,
		Status:  status,
		Offset:  (input.Page - 1) * input.Limit,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{
		Declarations: decls,
		Total:        total,
		Page:         input.Page,
		Limit:        input.Limit,
	}, nil
}

// SetStatus applies a workflow transition. processedAt is recomputed to
// "now" on every call, including a repeat of the current status; callers
// must not rely on it being stable.
func (s *DeclarationService) SetStatus(ctx context.Context, id, status string, notes *string) (*models.Declaration, error) {
	if !domain.IsValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	decl, err := s.declRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	decl.Status = status
	decl.Notes = notes
	decl.ProcessedAt = &now

	if err := s.declRepo.Update(ctx, decl); err != nil {
		return nil, err
	}

	return decl, nil
}

// UpdateInput carries admin corrections. Nil fields are left untouched.
type UpdateInput struct {
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	Occupation          *string `json:"occupation"`
	Nationality         *string `json:"nationality"`
	PassportNo          *string `json:"passportNo"`
	Gender              *string `json:"gender"`
	CountryOfResidence  *string `json:"countryOfResidence"`
	CityOfResidence     *string `json:"cityOfResidence"`
	PhoneNo             *string `json:"phoneNo"`
	VisaNo              *string `json:"visaNo"`
	CountryOfBoarded    *string `json:"countryOfBoarded"`
	PurposeOfTravel     *string `json:"purposeOfTravel"`
	ModeOfTravel        *string `json:"modeOfTravel"`
	ModeOfTransport     *string `json:"modeOfTransport"`
	FlightVehicleNo     *string `json:"flightVehicleNo"`
	IsTransit           *bool   `json:"isTransit"`
	TypeOfAccommodation *string `json:"typeOfAccommodation"`
	Province            *string `json:"province"`
	Address             *string `json:"address"`
	Notes               *string `json:"notes"`
}

// Update merges admin corrections into a declaration. Enum fields are
// checked against the variant descriptor, and the transit/bus nulling
// invariants are re-applied after the merge.
func (s *DeclarationService) Update(ctx context.Context, id string, input *UpdateInput, desc domain.Descriptor) (*models.Declaration, validation.Errors, error) {
	decl, err := s.declRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	fieldErrs := validation.Errors{}
	checkMember := func(field, value string, allowed []string) {
		for _, v := range allowed {
			if value == v {
				return
			}
		}
		fieldErrs[field] = "Invalid " + field + " value"
	}
	if input.Gender != nil {
		checkMember("gender", *input.Gender, desc.Genders)
	}
	if input.PurposeOfTravel != nil {
		checkMember("purposeOfTravel", *input.PurposeOfTravel, desc.Purposes)
	}
	if input.ModeOfTravel != nil {
		checkMember("modeOfTravel", *input.ModeOfTravel, desc.ModesOfTravel)
	}
	if input.Occupation != nil && len(desc.Occupations) > 0 {
		checkMember("occupation", *input.Occupation, desc.Occupations)
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&decl.FirstName, input.FirstName)
	applyString(&decl.LastName, input.LastName)
	applyString(&decl.Occupation, input.Occupation)
	applyString(&decl.Nationality, input.Nationality)
	applyString(&decl.PassportNo, input.PassportNo)
	applyString(&decl.Gender, input.Gender)
	applyString(&decl.CountryOfResidence, input.CountryOfResidence)
	applyString(&decl.CityOfResidence, input.CityOfResidence)
	applyString(&decl.PhoneNo, input.PhoneNo)
	applyString(&decl.CountryOfBoarded, input.CountryOfBoarded)
	applyString(&decl.PurposeOfTravel, input.PurposeOfTravel)
	applyString(&decl.ModeOfTravel, input.ModeOfTravel)

	if input.VisaNo != nil {
		decl.VisaNo = input.VisaNo
	}
	if input.ModeOfTransport != nil {
		decl.ModeOfTransport = input.ModeOfTransport
	}
	if input.FlightVehicleNo != nil {
		decl.FlightVehicleNo = input.FlightVehicleNo
	}
	if input.IsTransit != nil {
		decl.IsTransit = *input.IsTransit
	}
	if input.TypeOfAccommodation != nil {
		decl.TypeOfAccommodation = input.TypeOfAccommodation
	}
	if input.Province != nil {
		decl.Province = input.Province
	}
	if input.Address != nil {
		decl.Address = input.Address
	}
	if input.Notes != nil {
		decl.Notes = input.Notes
	}

	// Re-apply the derived-nulling invariants after the merge.
	if decl.IsTransit {
		decl.TypeOfAccommodation = nil
		decl.Province = nil
		decl.Address = nil
	}
	if decl.ModeOfTravel == domain.ModeBus && input.ModeOfTransport == nil {
		decl.ModeOfTransport = nil
	}

	if err := s.declRepo.Update(ctx, decl); err != nil {
		return nil, nil, err
	}

	return decl, nil, nil
}

// Delete removes a declaration permanently
func (s *DeclarationService) Delete(ctx context.Context, id string) error {
	return s.declRepo.Delete(ctx, id)
}

// StatsSummary totals declarations by workflow status
type StatsSummary struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// StatsOutput represents the admin statistics payload
type StatsOutput struct {
	Summary             StatsSummary          `json:"summary"`
	OccupationBreakdown map[string]int64      `json:"occupationBreakdown"`
	Recent              []*models.Declaration `json:"recentRegistrations"`
}

// Stats aggregates status totals, the occupation breakdown, and the five
// most recent declarations of one variant.
func (s *DeclarationService) Stats(ctx context.Context, variant string) (*StatsOutput, error) {
	byStatus, err := s.declRepo.CountByStatus(ctx, variant)
	if err != nil {
		return nil, err
	}

	occupations, err := s.declRepo.OccupationBreakdown(ctx, variant)
	if err != nil {
		return nil, err
	}

	recent, err := s.declRepo.Recent(ctx, variant, 5)
	if err != nil {
		return nil, err
	}

	summary := StatsSummary{
		Pending:  byStatus[domain.StatusPending],
		Approved: byStatus[domain.StatusApproved],
		Rejected: byStatus[domain.StatusRejected],
	}
	summary.Total = summary.Pending + summary.Approved + summary.Rejected

	return &StatsOutput{
		Summary:             summary,
		OccupationBreakdown: occupations,
		Recent:              recent,
	}, nil
}
