package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription represents a medication order issued by a doctor to a patient
type Prescription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Medication   string    `gorm:"type:varchar(255);not null" json:"medication"`
	Dosage       string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Instructions string    `gorm:"type:text" json:"instructions,omitempty"`
	IssuedAt     time.Time `gorm:"autoCreateTime;index" json:"issued_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
