package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus tracks the moderation state of a doctor application
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"consultation_fee"`
	ApprovalStatus  ApprovalStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval_status"`

	// Relationships
	User  User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Slots []AvailabilitySlot `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsApproved reports whether the doctor passed admin moderation.
func (d *DoctorProfile) IsApproved() bool {
	return d.ApprovalStatus == ApprovalApproved
}

// DoctorFilter holds optional doctor search criteria
type DoctorFilter struct {
	Name           string
	Specialization string
}
