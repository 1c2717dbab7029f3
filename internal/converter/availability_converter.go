package converter

import (
	"sort"

	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// dayKeyFormat is the calendar-day grouping key. Two slots land in the same
// group iff their formatted day string is identical, so all slots must come
// from a single doctor/timezone context.
const dayKeyFormat = "Monday, 2 January"

// SlotToResponse converts an AvailabilitySlot entity to SlotResponse DTO
func SlotToResponse(slot *entity.AvailabilitySlot) dto.SlotResponse {
	return dto.SlotResponse{
		ID:        slot.ID,
		DoctorID:  slot.DoctorID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Booked:    slot.Booked,
	}
}

// GroupSlotsByDay turns a flat slot list into day groups for display:
// members of a group share the identical formatted-day string and are sorted
// ascending by start time; groups are ordered by their earliest contained
// start time. An empty input yields an empty (non-nil) group list.
func GroupSlotsByDay(slots []entity.AvailabilitySlot) dto.GroupedAvailabilityResponse {
	sorted := make([]entity.AvailabilitySlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	days := make([]dto.DayGroupResponse, 0)
	index := make(map[string]int)

	for i := range sorted {
		key := sorted[i].StartTime.Format(dayKeyFormat)
		at, ok := index[key]
		if !ok {
			at = len(days)
			index[key] = at
			days = append(days, dto.DayGroupResponse{Day: key})
		}
		days[at].Slots = append(days[at].Slots, SlotToResponse(&sorted[i]))
	}

	return dto.GroupedAvailabilityResponse{
		Days:  days,
		Total: len(sorted),
	}
}
