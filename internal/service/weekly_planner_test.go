package service

import (
	"sort"
	"testing"
	"time"

	"medivuno-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(weeksAhead int, slotDuration time.Duration) *WeeklyPlanner {
	return NewWeeklyPlanner(config.AvailabilityConfig{
		WeeksAhead:   weeksAhead,
		SlotDuration: slotDuration,
	})
}

// 2026-01-05 is a Monday.
var mondayMidnight = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestDefaultWeeklyTemplate(t *testing.T) {
	template := DefaultWeeklyTemplate()

	require.Len(t, template, 5)
	for day := int(time.Monday); day <= int(time.Friday); day++ {
		hours, ok := template[day]
		require.True(t, ok, "weekday %d missing", day)
		assert.Equal(t, "08:00", hours.Start)
		assert.Equal(t, "18:00", hours.End)
		assert.Equal(t, "12:00", hours.BreakStart)
		assert.Equal(t, "13:00", hours.BreakEnd)
	}
	_, hasSaturday := template[int(time.Saturday)]
	assert.False(t, hasSaturday)
}

func TestFlattenTemplate(t *testing.T) {
	records := FlattenTemplate(map[int]DayHours{
		int(time.Wednesday): {Start: "10:00", End: "14:00"},
		int(time.Monday):    {Start: "08:00", End: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
	})

	require.Len(t, records, 2)
	assert.Equal(t, int(time.Monday), records[0].Weekday)
	assert.Equal(t, int(time.Wednesday), records[1].Weekday)

	// fields carry over verbatim
	assert.Equal(t, "08:00", records[0].Start)
	assert.Equal(t, "13:00", records[0].BreakEnd)
	assert.Equal(t, "10:00", records[1].Start)
	assert.Empty(t, records[1].BreakStart)
}

func TestValidate(t *testing.T) {
	planner := newTestPlanner(1, time.Hour)

	tests := []struct {
		name    string
		record  DayHours
		wantErr error
	}{
		{"valid without break", DayHours{Start: "09:00", End: "17:00"}, nil},
		{"valid with break", DayHours{Start: "08:00", End: "18:00", BreakStart: "12:00", BreakEnd: "13:00"}, nil},
		{"unparseable start", DayHours{Start: "9am", End: "17:00"}, ErrInvalidTimeFormat},
		{"unparseable end", DayHours{Start: "09:00", End: "25:00"}, ErrInvalidTimeFormat},
		{"start after end", DayHours{Start: "17:00", End: "09:00"}, ErrStartNotBeforeEnd},
		{"start equals end", DayHours{Start: "09:00", End: "09:00"}, ErrStartNotBeforeEnd},
		{"break missing end", DayHours{Start: "09:00", End: "17:00", BreakStart: "12:00"}, ErrBreakIncomplete},
		{"break missing start", DayHours{Start: "09:00", End: "17:00", BreakEnd: "13:00"}, ErrBreakIncomplete},
		{"break inverted", DayHours{Start: "09:00", End: "17:00", BreakStart: "13:00", BreakEnd: "12:00"}, ErrStartNotBeforeEnd},
		{"break before window", DayHours{Start: "09:00", End: "17:00", BreakStart: "08:00", BreakEnd: "09:30"}, ErrBreakOutsideWindow},
		{"break past window", DayHours{Start: "09:00", End: "17:00", BreakStart: "16:30", BreakEnd: "17:30"}, ErrBreakOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := planner.Validate(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExpandSkipsBreakSlots(t *testing.T) {
	planner := newTestPlanner(1, time.Hour)
	doctorID := uuid.New()

	records := []DayHours{{
		Weekday:    int(time.Monday),
		Start:      "08:00",
		End:        "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}}

	slots, err := planner.Expand(doctorID, records, mondayMidnight)
	require.NoError(t, err)

	// 08:00 through 17:00 starts, minus the 12:00 break hour
	require.Len(t, slots, 9)
	for _, slot := range slots {
		assert.Equal(t, doctorID, slot.DoctorID)
		assert.Equal(t, time.Monday, slot.StartTime.Weekday())
		assert.Equal(t, time.Hour, slot.EndTime.Sub(slot.StartTime))
		assert.NotEqual(t, 12, slot.StartTime.Hour())
	}
	assert.Equal(t, 8, slots[0].StartTime.Hour())
	assert.Equal(t, 17, slots[len(slots)-1].StartTime.Hour())
}

func TestExpandSkipsSlotsBeforeFrom(t *testing.T) {
	planner := newTestPlanner(1, time.Hour)

	records := []DayHours{{
		Weekday:    int(time.Monday),
		Start:      "08:00",
		End:        "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}}

	from := mondayMidnight.Add(10*time.Hour + 30*time.Minute)
	slots, err := planner.Expand(uuid.New(), records, from)
	require.NoError(t, err)

	// 11:00 plus 13:00-17:00; earlier starts are already in the past
	require.Len(t, slots, 6)
	assert.Equal(t, 11, slots[0].StartTime.Hour())
}

func TestExpandPartialBreakOverlap(t *testing.T) {
	planner := newTestPlanner(1, 2*time.Hour)

	records := []DayHours{{
		Weekday:    int(time.Monday),
		Start:      "08:00",
		End:        "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}}

	slots, err := planner.Expand(uuid.New(), records, mondayMidnight)
	require.NoError(t, err)

	// the 12:00-14:00 candidate straddles the break and is dropped
	require.Len(t, slots, 4)
	hours := make([]int, 0, len(slots))
	for _, slot := range slots {
		hours = append(hours, slot.StartTime.Hour())
	}
	assert.Equal(t, []int{8, 10, 14, 16}, hours)
}

func TestExpandMultipleWeeksSorted(t *testing.T) {
	planner := newTestPlanner(2, time.Hour)

	records := []DayHours{
		{Weekday: int(time.Wednesday), Start: "09:00", End: "11:00"},
		{Weekday: int(time.Monday), Start: "09:00", End: "11:00"},
	}

	slots, err := planner.Expand(uuid.New(), records, mondayMidnight)
	require.NoError(t, err)

	// two weekdays, two slots each, over two weeks
	require.Len(t, slots, 8)
	assert.True(t, sort.SliceIsSorted(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	}))
	assert.Equal(t, mondayMidnight.Add(9*time.Hour), slots[0].StartTime)
	// second week's Wednesday is the last occurrence
	assert.Equal(t, mondayMidnight.AddDate(0, 0, 9).Add(10*time.Hour), slots[len(slots)-1].StartTime)
}

func TestExpandEmptyTemplate(t *testing.T) {
	planner := newTestPlanner(1, time.Hour)

	_, err := planner.Expand(uuid.New(), nil, mondayMidnight)
	assert.ErrorIs(t, err, ErrEmptyWeeklyTemplate)
}

func TestExpandRejectsInvalidRecord(t *testing.T) {
	planner := newTestPlanner(1, time.Hour)

	_, err := planner.Expand(uuid.New(), []DayHours{{Weekday: int(time.Monday), Start: "late", End: "18:00"}}, mondayMidnight)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
