package usecase

import (
	"context"
	"testing"
	"time"

	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase          AppointmentUsecase
	appointmentRepo  *fakeAppointmentRepo
	slotRepo         *fakeSlotRepo
	doctorRepo       *fakeDoctorRepo
	patientRepo      *fakePatientRepo
	slotHolder       *fakeSlotHolder
	notificationRepo *fakeNotificationRepo
	publisher        *fakePublisher
	audit            *fakeAuditService

	doctorID  uuid.UUID
	patientID uuid.UUID
}

func newAppointmentFixture() *appointmentFixture {
	log := logrus.New()
	f := &appointmentFixture{
		appointmentRepo:  newFakeAppointmentRepo(),
		slotRepo:         newFakeSlotRepo(),
		doctorRepo:       newFakeDoctorRepo(),
		patientRepo:      newFakePatientRepo(),
		slotHolder:       newFakeSlotHolder(),
		notificationRepo: newFakeNotificationRepo(),
		publisher:        &fakePublisher{},
		audit:            &fakeAuditService{},
		doctorID:         uuid.New(),
		patientID:        uuid.New(),
	}

	f.doctorRepo.profiles[f.doctorID] = &entity.DoctorProfile{
		UserID:         f.doctorID,
		ApprovalStatus: entity.ApprovalApproved,
	}
	f.patientRepo.profiles[f.patientID] = &entity.PatientProfile{UserID: f.patientID}

	notifier := service.NewNotificationService(log, f.notificationRepo, newFakeSettingsRepo(), f.publisher)
	f.usecase = NewAppointmentUsecase(log, f.appointmentRepo, f.slotRepo, f.doctorRepo, f.patientRepo, f.slotHolder, notifier, f.audit)
	return f
}

func (f *appointmentFixture) addSlot(start time.Time, booked bool) *entity.AvailabilitySlot {
	slot := &entity.AvailabilitySlot{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Booked:    booked,
	}
	f.slotRepo.slots[slot.ID] = slot
	return slot
}

func TestBookAppointment(t *testing.T) {
	f := newAppointmentFixture()
	slot := f.addSlot(time.Now().Add(24*time.Hour), false)

	result, err := f.usecase.Book(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctorID,
		SlotID:   slot.ID,
		Type:     entity.AppointmentTypeVideo,
		Reason:   "checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentPending), result.Status)
	assert.Equal(t, 30, result.DurationMinutes)
	assert.Equal(t, slot.StartTime, result.StartTime)

	// hold taken and released around the guarded claim
	assert.Equal(t, []uuid.UUID{slot.ID}, f.slotHolder.acquired)
	assert.Equal(t, []uuid.UUID{slot.ID}, f.slotHolder.released)

	// doctor got a feed notification
	require.Len(t, f.notificationRepo.created, 1)
	assert.Equal(t, f.doctorID, f.notificationRepo.created[0].UserID)
	assert.Equal(t, entity.CategoryAppointment, f.notificationRepo.created[0].Category)
}

func TestBookAppointmentSlotAlreadyBooked(t *testing.T) {
	f := newAppointmentFixture()
	slot := f.addSlot(time.Now().Add(24*time.Hour), true)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctorID,
		SlotID:   slot.ID,
		Type:     entity.AppointmentTypeVideo,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.appointmentRepo.booked)
	assert.Empty(t, f.slotHolder.acquired)
}

func TestBookAppointmentSlotInPast(t *testing.T) {
	f := newAppointmentFixture()
	slot := f.addSlot(time.Now().Add(-time.Hour), false)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctorID,
		SlotID:   slot.ID,
		Type:     entity.AppointmentTypeVideo,
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Empty(t, f.appointmentRepo.booked)
}

func TestBookAppointmentUnapprovedDoctor(t *testing.T) {
	f := newAppointmentFixture()
	f.doctorRepo.profiles[f.doctorID].ApprovalStatus = entity.ApprovalPending
	slot := f.addSlot(time.Now().Add(24*time.Hour), false)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctorID,
		SlotID:   slot.ID,
		Type:     entity.AppointmentTypeVideo,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookAppointmentHoldContention(t *testing.T) {
	f := newAppointmentFixture()
	f.slotHolder.acquireOK = false
	slot := f.addSlot(time.Now().Add(24*time.Hour), false)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		DoctorID: f.doctorID,
		SlotID:   slot.ID,
		Type:     entity.AppointmentTypeVideo,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.appointmentRepo.booked)
}

func TestRescheduleAppointment(t *testing.T) {
	f := newAppointmentFixture()
	oldSlot := f.addSlot(time.Now().Add(24*time.Hour), true)
	newSlot := f.addSlot(time.Now().Add(48*time.Hour), false)

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		SlotID:    oldSlot.ID,
		StartTime: oldSlot.StartTime,
		Status:    entity.AppointmentConfirmed,
	}
	f.appointmentRepo.byID[appointment.ID] = appointment

	result, err := f.usecase.Reschedule(context.Background(), f.patientID, appointment.ID, &dto.RescheduleAppointmentRequest{SlotID: newSlot.ID})
	require.NoError(t, err)

	assert.True(t, f.appointmentRepo.rescheduled)
	assert.Equal(t, newSlot.ID, result.SlotID)
	assert.Equal(t, newSlot.StartTime, result.StartTime)
}

func TestRescheduleFailureLeavesAppointmentUntouched(t *testing.T) {
	f := newAppointmentFixture()
	oldSlot := f.addSlot(time.Now().Add(24*time.Hour), true)
	newSlot := f.addSlot(time.Now().Add(48*time.Hour), false)
	f.appointmentRepo.rescheduleErr = repository.ErrSlotUnavailable

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		SlotID:    oldSlot.ID,
		StartTime: oldSlot.StartTime,
		Status:    entity.AppointmentConfirmed,
	}
	f.appointmentRepo.byID[appointment.ID] = appointment

	_, err := f.usecase.Reschedule(context.Background(), f.patientID, appointment.ID, &dto.RescheduleAppointmentRequest{SlotID: newSlot.ID})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.False(t, f.appointmentRepo.rescheduled)
	// the hold was still released
	assert.Equal(t, []uuid.UUID{newSlot.ID}, f.slotHolder.released)
}

func TestRescheduleRequiresOwnership(t *testing.T) {
	f := newAppointmentFixture()
	slot := f.addSlot(time.Now().Add(48*time.Hour), false)

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		PatientID: uuid.New(), // someone else's booking
		Status:    entity.AppointmentPending,
	}
	f.appointmentRepo.byID[appointment.ID] = appointment

	_, err := f.usecase.Reschedule(context.Background(), f.patientID, appointment.ID, &dto.RescheduleAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, ErrNotAppointmentParty)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current entity.AppointmentStatus
		next    string
		asRole  int
		wantErr error
	}{
		{"doctor confirms pending", entity.AppointmentPending, "confirmed", entity.RoleIDDoctor, nil},
		{"doctor completes confirmed", entity.AppointmentConfirmed, "completed", entity.RoleIDDoctor, nil},
		{"patient cancels pending", entity.AppointmentPending, "cancelled", entity.RoleIDPatient, nil},
		{"doctor cancels confirmed", entity.AppointmentConfirmed, "cancelled", entity.RoleIDDoctor, nil},
		{"patient cannot confirm", entity.AppointmentPending, "confirmed", entity.RoleIDPatient, ErrStatusChangeForbidden},
		{"patient cannot complete", entity.AppointmentConfirmed, "completed", entity.RoleIDPatient, ErrStatusChangeForbidden},
		{"cannot complete pending", entity.AppointmentPending, "completed", entity.RoleIDDoctor, ErrInvalidStatusTransition},
		{"cancelled is terminal", entity.AppointmentCancelled, "confirmed", entity.RoleIDDoctor, ErrInvalidStatusTransition},
		{"completed is terminal", entity.AppointmentCompleted, "cancelled", entity.RoleIDDoctor, ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture()
			appointment := &entity.Appointment{
				ID:        uuid.New(),
				DoctorID:  f.doctorID,
				PatientID: f.patientID,
				StartTime: time.Now().Add(24 * time.Hour),
				Status:    tt.current,
			}
			f.appointmentRepo.byID[appointment.ID] = appointment

			actor := f.patientID
			if tt.asRole == entity.RoleIDDoctor {
				actor = f.doctorID
			}

			result, err := f.usecase.UpdateStatus(context.Background(), actor, tt.asRole, appointment.ID, &dto.UpdateAppointmentStatusRequest{Status: tt.next})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.appointmentRepo.statusUpdated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, result.Status)
			require.Len(t, f.appointmentRepo.statusUpdated, 1)
			// counterparty is notified
			require.Len(t, f.notificationRepo.created, 1)
			expected := f.patientID
			if tt.asRole == entity.RoleIDPatient {
				expected = f.doctorID
			}
			assert.Equal(t, expected, f.notificationRepo.created[0].UserID)
		})
	}
}

func TestUpdateStatusStrangerRejected(t *testing.T) {
	f := newAppointmentFixture()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Status:    entity.AppointmentPending,
	}
	f.appointmentRepo.byID[appointment.ID] = appointment

	_, err := f.usecase.UpdateStatus(context.Background(), uuid.New(), entity.RoleIDPatient, appointment.ID, &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrNotAppointmentParty)
}
