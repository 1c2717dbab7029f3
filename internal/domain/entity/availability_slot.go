package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot represents a doctor-declared open time interval.
// Slots are immutable once created: changing hours means delete + recreate.
// Booked is the explicit discriminant between a free interval and one that
// backs an appointment; deletion branches on it, never on how the slot is
// displayed.
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Booked    bool      `gorm:"not null;default:false;index" json:"booked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// Overlaps reports whether the slot intersects the [start, end) interval.
func (s *AvailabilitySlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
