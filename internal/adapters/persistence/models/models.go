package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tdac-backend/internal/core/domain"
)

// Admin represents the admin table. Admins only authenticate; the
// submission workflow never mutates them.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:    a.ID,
		Email: a.Email,
	}
}

// Declaration represents the declarations table: one traveler's arrival
// or TDAC registration record, discriminated by Variant.
type Declaration struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Variant string `gorm:"size:20;not null;index" json:"variant"`

	// Personal information
	FirstName          string    `gorm:"size:100;not null" json:"firstName"`
	LastName           string    `gorm:"size:100;not null" json:"lastName"`
	Occupation         string    `gorm:"size:50;not null" json:"occupation"`
	Nationality        string    `gorm:"size:100;not null" json:"nationality"`
	PassportNo         string    `gorm:"uniqueIndex;size:50;not null" json:"passportNo"`
	DateOfBirth        time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Gender             string    `gorm:"size:20;not null" json:"gender"`
	CountryOfResidence string    `gorm:"size:100;not null" json:"countryOfResidence"`
	CityOfResidence    string    `gorm:"size:100;not null" json:"cityOfResidence"`
	PhoneNo            string    `gorm:"size:30;not null" json:"phoneNo"`
	VisaNo             *string   `gorm:"size:50" json:"visaNo"`

	// Travel information
	DateOfArrival    time.Time `gorm:"type:date;not null" json:"dateOfArrival"`
	CountryOfBoarded string    `gorm:"size:100;not null" json:"countryOfBoarded"`
	PurposeOfTravel  string    `gorm:"size:50;not null" json:"purposeOfTravel"`
	ModeOfTravel     string    `gorm:"size:20;not null" json:"modeOfTravel"`
	ModeOfTransport  *string   `gorm:"size:100" json:"modeOfTransport"`
	FlightVehicleNo  *string   `gorm:"size:50" json:"flightVehicleNo"`

	// Accommodation information (null for transit passengers)
	IsTransit           bool    `gorm:"not null;default:false" json:"isTransit"`
	TypeOfAccommodation *string `gorm:"size:100" json:"typeOfAccommodation"`
	Province            *string `gorm:"size:100" json:"province"`
	Address             *string `gorm:"type:text" json:"address"`

	// Attachments
	PassportPhotoURL *string `gorm:"size:255" json:"passportPhotoUrl"`
	PaymentSlipURL   *string `gorm:"size:255" json:"paymentSlipUrl"`

	// Workflow
	Status      string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	ProcessedAt *time.Time `json:"processedAt"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Declaration) TableName() string {
	return "declarations"
}

// BeforeCreate assigns the immutable UUID identity.
func (d *Declaration) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// NewDeclaration maps a validated creation record to a model with the
// initial PENDING status.
func NewDeclaration(input *domain.DeclarationInput) *Declaration {
	return &Declaration{
		Variant:             input.Variant,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Occupation:          input.Occupation,
		Nationality:         input.Nationality,
		PassportNo:          input.PassportNo,
		DateOfBirth:         input.DateOfBirth,
		Gender:              input.Gender,
		CountryOfResidence:  input.CountryOfResidence,
		CityOfResidence:     input.CityOfResidence,
		PhoneNo:             input.PhoneNo,
		VisaNo:              input.VisaNo,
		DateOfArrival:       input.DateOfArrival,
		CountryOfBoarded:    input.CountryOfBoarded,
		PurposeOfTravel:     input.PurposeOfTravel,
		ModeOfTravel:        input.ModeOfTravel,
		ModeOfTransport:     input.ModeOfTransport,
		FlightVehicleNo:     input.FlightVehicleNo,
		IsTransit:           input.IsTransit,
		TypeOfAccommodation: input.TypeOfAccommodation,
		Province:            input.Province,
		Address:             input.Address,
		PassportPhotoURL:    input.PassportPhotoURL,
		PaymentSlipURL:      input.PaymentSlipURL,
		Status:              domain.StatusPending,
	}
}

// SubmissionReceipt DTO returned from the public submit endpoints.
type SubmissionReceipt struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	SubmittedAt      time.Time `json:"submittedAt"`
	PassportPhotoURL *string   `json:"passportPhotoUrl,omitempty"`
	PaymentSlipURL   *string   `json:"paymentSlipUrl,omitempty"`
}

func (d *Declaration) ToReceipt() *SubmissionReceipt {
	return &SubmissionReceipt{
		ID:               d.ID,
		Status:           d.Status,
		SubmittedAt:      d.CreatedAt,
		PassportPhotoURL: d.PassportPhotoURL,
		PaymentSlipURL:   d.PaymentSlipURL,
	}
}

// StatusReceipt DTO returned from the admin status-update endpoint.
type StatusReceipt struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
	ProcessedAt *time.Time `json:"processedAt"`
}

func (d *Declaration) ToStatusReceipt() *StatusReceipt {
	return &StatusReceipt{
		ID:          d.ID,
		Status:      d.Status,
		Notes:       d.Notes,
		ProcessedAt: d.ProcessedAt,
	}
}

// AutoMigrate runs auto migration for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&Declaration{},
	)
}
