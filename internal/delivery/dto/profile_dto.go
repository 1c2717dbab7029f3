package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// UpdateProfileRequest updates the caller's own profile. Role-specific
// fields are ignored unless the caller holds that role.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=255"`

	// Doctor fields
	Specialization  string           `json:"specialization" validate:"omitempty,max=100"`
	Biography       string           `json:"biography" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`

	// Patient fields
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	Biography       string          `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	ApprovalStatus  string          `json:"approval_status"`
}

type PatientProfileResponse struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address,omitempty"`
}

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	Biography       string          `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
