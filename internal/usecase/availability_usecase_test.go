package usecase

import (
	"context"
	"testing"
	"time"

	"medivuno-api/config"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	usecase    AvailabilityUsecase
	slotRepo   *fakeSlotRepo
	doctorRepo *fakeDoctorRepo
	doctorID   uuid.UUID
}

func newAvailabilityFixture() *availabilityFixture {
	f := &availabilityFixture{
		slotRepo:   newFakeSlotRepo(),
		doctorRepo: newFakeDoctorRepo(),
		doctorID:   uuid.New(),
	}
	f.doctorRepo.profiles[f.doctorID] = &entity.DoctorProfile{
		UserID:         f.doctorID,
		ApprovalStatus: entity.ApprovalApproved,
	}
	planner := service.NewWeeklyPlanner(config.AvailabilityConfig{
		WeeksAhead:   1,
		SlotDuration: time.Hour,
	})
	f.usecase = NewAvailabilityUsecase(logrus.New(), f.slotRepo, f.doctorRepo, planner, &fakeAuditService{})
	return f
}

func TestCreateSlot(t *testing.T) {
	f := newAvailabilityFixture()
	start := time.Now().Add(24 * time.Hour)

	slot, err := f.usecase.CreateSlot(context.Background(), f.doctorID, &dto.CreateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, f.doctorID, slot.DoctorID)
	assert.False(t, slot.Booked)
	require.Len(t, f.slotRepo.created, 1)
}

func TestCreateSlotRejectsPast(t *testing.T) {
	f := newAvailabilityFixture()
	start := time.Now().Add(-time.Hour)

	_, err := f.usecase.CreateSlot(context.Background(), f.doctorID, &dto.CreateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Empty(t, f.slotRepo.created)
}

func TestCreateSlotRejectsInvertedInterval(t *testing.T) {
	f := newAvailabilityFixture()
	start := time.Now().Add(24 * time.Hour)

	_, err := f.usecase.CreateSlot(context.Background(), f.doctorID, &dto.CreateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(-30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotEndInvalid)
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	f := newAvailabilityFixture()
	start := time.Now().Add(24 * time.Hour)
	f.slotRepo.between = []entity.AvailabilitySlot{{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		StartTime: start.Add(-15 * time.Minute),
		EndTime:   start.Add(15 * time.Minute),
	}}

	_, err := f.usecase.CreateSlot(context.Background(), f.doctorID, &dto.CreateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

// Two requested weekdays guarantee at least one full day lies in the
// future regardless of when the test runs.
func weeklyRequest() *dto.WeeklyHoursRequest {
	return &dto.WeeklyHoursRequest{
		Days: map[int]dto.DayHoursRequest{
			int(time.Monday):   {Start: "09:00", End: "12:00"},
			int(time.Thursday): {Start: "09:00", End: "12:00"},
		},
	}
}

func TestSetWeeklyHoursCreatesBatch(t *testing.T) {
	f := newAvailabilityFixture()
	before := time.Now()

	result, err := f.usecase.SetWeeklyHours(context.Background(), f.doctorID, weeklyRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.RequestedDays)
	require.Len(t, f.slotRepo.batches, 1)
	assert.Equal(t, len(f.slotRepo.batches[0]), result.SlotsCreated)
	assert.Greater(t, result.SlotsCreated, 0)
	for _, slot := range f.slotRepo.batches[0] {
		assert.Equal(t, f.doctorID, slot.DoctorID)
		assert.Equal(t, time.Hour, slot.EndTime.Sub(slot.StartTime))
		assert.Contains(t, []time.Weekday{time.Monday, time.Thursday}, slot.StartTime.Weekday())
		assert.False(t, slot.StartTime.Before(before))
	}
}

func TestSetWeeklyHoursSkipsExistingSlots(t *testing.T) {
	f := newAvailabilityFixture()

	first, err := f.usecase.SetWeeklyHours(context.Background(), f.doctorID, weeklyRequest())
	require.NoError(t, err)
	require.Greater(t, first.SlotsCreated, 0)

	// every candidate now collides with a slot the doctor already has
	f.slotRepo.between = f.slotRepo.batches[0]

	second, err := f.usecase.SetWeeklyHours(context.Background(), f.doctorID, weeklyRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, second.SlotsCreated)
	assert.Len(t, f.slotRepo.batches, 1)
}

func TestSetWeeklyHoursInvalidTemplate(t *testing.T) {
	f := newAvailabilityFixture()

	_, err := f.usecase.SetWeeklyHours(context.Background(), f.doctorID, &dto.WeeklyHoursRequest{
		Days: map[int]dto.DayHoursRequest{
			int(time.Monday): {Start: "9am", End: "12:00"},
		},
	})
	assert.ErrorIs(t, err, service.ErrInvalidTimeFormat)
	assert.Empty(t, f.slotRepo.batches)
}

func TestGetDoctorAvailabilityHidesUnapproved(t *testing.T) {
	f := newAvailabilityFixture()
	f.doctorRepo.profiles[f.doctorID].ApprovalStatus = entity.ApprovalPending

	_, err := f.usecase.GetDoctorAvailability(context.Background(), f.doctorID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeleteSlotGuards(t *testing.T) {
	f := newAvailabilityFixture()

	booked := &entity.AvailabilitySlot{ID: uuid.New(), DoctorID: f.doctorID, Booked: true}
	foreign := &entity.AvailabilitySlot{ID: uuid.New(), DoctorID: uuid.New()}
	open := &entity.AvailabilitySlot{ID: uuid.New(), DoctorID: f.doctorID}
	f.slotRepo.slots[booked.ID] = booked
	f.slotRepo.slots[foreign.ID] = foreign
	f.slotRepo.slots[open.ID] = open

	assert.ErrorIs(t, f.usecase.DeleteSlot(context.Background(), f.doctorID, booked.ID), ErrSlotBooked)
	assert.ErrorIs(t, f.usecase.DeleteSlot(context.Background(), f.doctorID, foreign.ID), ErrNotSlotOwner)
	assert.ErrorIs(t, f.usecase.DeleteSlot(context.Background(), f.doctorID, uuid.New()), ErrSlotNotFound)

	require.NoError(t, f.usecase.DeleteSlot(context.Background(), f.doctorID, open.ID))
	assert.Equal(t, []uuid.UUID{open.ID}, f.slotRepo.deleted)
}

func TestDeleteAllOpenSlots(t *testing.T) {
	f := newAvailabilityFixture()
	f.slotRepo.bulkDeleted = 7

	result, err := f.usecase.DeleteAllOpenSlots(context.Background(), f.doctorID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Deleted)
}
