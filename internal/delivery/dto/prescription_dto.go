package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" validate:"required"`
	Medication   string    `json:"medication" validate:"required,max=255"`
	Dosage       string    `json:"dosage" validate:"required,max=100"`
	Instructions string    `json:"instructions" validate:"omitempty"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	Instructions string    `json:"instructions,omitempty"`
	DoctorName   string    `json:"doctor_name,omitempty"`
	PatientName  string    `json:"patient_name,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
