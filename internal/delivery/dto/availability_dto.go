package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type DayHoursRequest struct {
	Start      string `json:"start" validate:"required"`
	End        string `json:"end" validate:"required"`
	BreakStart string `json:"break_start" validate:"omitempty"`
	BreakEnd   string `json:"break_end" validate:"omitempty"`
}

// WeeklyHoursRequest maps weekday numbers (0 = Sunday) to working hours.
type WeeklyHoursRequest struct {
	Days map[int]DayHoursRequest `json:"days" validate:"required,min=1"`
}

// Response DTOs

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Booked    bool      `json:"booked"`
}

// DayGroupResponse is one calendar day of availability. Day is the formatted
// grouping key; slots are sorted ascending by start time.
type DayGroupResponse struct {
	Day   string         `json:"day"`
	Slots []SlotResponse `json:"slots"`
}

type GroupedAvailabilityResponse struct {
	Days  []DayGroupResponse `json:"days"`
	Total int                `json:"total"`
}

type WeeklyHoursResponse struct {
	RequestedDays int `json:"requested_days"`
	SlotsCreated  int `json:"slots_created"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
