package converter

import (
	"testing"
	"time"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(start time.Time, booked bool) entity.AvailabilitySlot {
	return entity.AvailabilitySlot{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Booked:    booked,
	}
}

func TestGroupSlotsByDay(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	// deliberately unordered across and within days
	slots := []entity.AvailabilitySlot{
		slotAt(tuesday.Add(9*time.Hour), false),
		slotAt(monday.Add(14*time.Hour), true),
		slotAt(monday.Add(9*time.Hour), false),
		slotAt(tuesday.Add(11*time.Hour), false),
	}

	grouped := GroupSlotsByDay(slots)

	assert.Equal(t, 4, grouped.Total)
	require.Len(t, grouped.Days, 2)

	// groups ordered by earliest contained start time
	assert.Equal(t, "Monday, 5 January", grouped.Days[0].Day)
	assert.Equal(t, "Tuesday, 6 January", grouped.Days[1].Day)

	// within a day, slots sorted ascending
	require.Len(t, grouped.Days[0].Slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), grouped.Days[0].Slots[0].StartTime)
	assert.Equal(t, monday.Add(14*time.Hour), grouped.Days[0].Slots[1].StartTime)
	assert.True(t, grouped.Days[0].Slots[1].Booked)

	require.Len(t, grouped.Days[1].Slots, 2)
	assert.Equal(t, tuesday.Add(9*time.Hour), grouped.Days[1].Slots[0].StartTime)
}

func TestGroupSlotsByDayLaterDayFirstInInput(t *testing.T) {
	friday := time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 1, 7, 16, 0, 0, 0, time.UTC)

	grouped := GroupSlotsByDay([]entity.AvailabilitySlot{
		slotAt(friday, false),
		slotAt(wednesday, false),
	})

	require.Len(t, grouped.Days, 2)
	assert.Equal(t, "Wednesday, 7 January", grouped.Days[0].Day)
	assert.Equal(t, "Friday, 9 January", grouped.Days[1].Day)
}

func TestGroupSlotsByDayEmpty(t *testing.T) {
	grouped := GroupSlotsByDay(nil)

	assert.NotNil(t, grouped.Days)
	assert.Empty(t, grouped.Days)
	assert.Equal(t, 0, grouped.Total)
}

func TestSlotToResponse(t *testing.T) {
	slot := slotAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), true)

	response := SlotToResponse(&slot)

	assert.Equal(t, slot.ID, response.ID)
	assert.Equal(t, slot.DoctorID, response.DoctorID)
	assert.Equal(t, slot.StartTime, response.StartTime)
	assert.Equal(t, slot.EndTime, response.EndTime)
	assert.True(t, response.Booked)
}
