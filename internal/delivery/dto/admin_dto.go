package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Response DTOs

type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type PendingDoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
	ApprovalStatus string    `json:"approval_status"`
}

type PendingDoctorListResponse struct {
	Doctors []PendingDoctorResponse `json:"doctors"`
	Total   int64                   `json:"total"`
}
