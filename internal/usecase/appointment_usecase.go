package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrNotAppointmentParty     = errors.New("appointment belongs to another user")
	ErrSlotTaken               = errors.New("slot is no longer available")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrStatusChangeForbidden   = errors.New("role cannot perform this status change")
	ErrPatientNotFound         = errors.New("patient profile not found")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// Reschedule moves the appointment onto a new open slot of the same
	// doctor. The move is all-or-nothing: if the new slot cannot be claimed,
	// the appointment stays exactly as it was.
	Reschedule(ctx context.Context, patientID, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, roleID int, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.AvailabilitySlotRepository
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	slotHolder      service.SlotHolder
	notifier        *service.NotificationService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.AvailabilitySlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	slotHolder service.SlotHolder,
	notifier *service.NotificationService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		slotHolder:      slotHolder,
		notifier:        notifier,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	slot, err := u.claimableSlot(ctx, req.SlotID, req.DoctorID)
	if err != nil {
		return nil, err
	}

	// Short Redis hold so two sessions racing for the slot fail fast; the
	// guarded claim inside Book is still the source of truth.
	held, err := u.slotHolder.Acquire(ctx, slot.ID, patientID)
	if err != nil {
		u.log.Warnf("Failed to acquire slot hold: %+v", err)
		return nil, err
	}
	if !held {
		return nil, ErrSlotTaken
	}
	defer u.releaseHold(ctx, slot.ID)

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patientID,
		SlotID:          slot.ID,
		StartTime:       slot.StartTime,
		DurationMinutes: int(slot.EndTime.Sub(slot.StartTime).Minutes()),
		Type:            req.Type,
		Reason:          req.Reason,
		Status:          entity.AppointmentPending,
	}

	if err := u.appointmentRepo.Book(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to book appointment: %+v", err)
		return nil, err
	}

	u.notifier.Notify(ctx, req.DoctorID, entity.NotificationKindAppointment, entity.CategoryAppointment,
		"New Appointment Request",
		fmt.Sprintf("A new appointment was requested for %s", appointment.StartTime.Format("Monday, 2 January 15:04")),
		entity.PriorityHigh,
		entity.JSON{"appointment_id": appointment.ID.String()},
	)

	u.auditService.LogAction(ctx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), nil)

	appointment.Doctor = *doctor
	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Reschedule(ctx context.Context, patientID, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotAppointmentParty
	}
	if appointment.Status != entity.AppointmentPending && appointment.Status != entity.AppointmentConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	slot, err := u.claimableSlot(ctx, req.SlotID, appointment.DoctorID)
	if err != nil {
		return nil, err
	}

	held, err := u.slotHolder.Acquire(ctx, slot.ID, patientID)
	if err != nil {
		u.log.Warnf("Failed to acquire slot hold: %+v", err)
		return nil, err
	}
	if !held {
		return nil, ErrSlotTaken
	}
	defer u.releaseHold(ctx, slot.ID)

	oldSlotID := appointment.SlotID
	appointment.SlotID = slot.ID
	appointment.StartTime = slot.StartTime
	appointment.DurationMinutes = int(slot.EndTime.Sub(slot.StartTime).Minutes())

	if err := u.appointmentRepo.Reschedule(ctx, appointment, oldSlotID, slot.ID); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}

	u.notifier.Notify(ctx, appointment.DoctorID, entity.NotificationKindAppointment, entity.CategoryAppointment,
		"Appointment Rescheduled",
		fmt.Sprintf("An appointment was moved to %s", appointment.StartTime.Format("Monday, 2 January 15:04")),
		entity.PriorityHigh,
		entity.JSON{"appointment_id": appointment.ID.String()},
	)

	u.auditService.LogAction(ctx, &patientID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), map[string]interface{}{
		"old_slot_id": oldSlotID.String(),
		"new_slot_id": slot.ID.String(),
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, userID uuid.UUID, roleID int, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	next := entity.AppointmentStatus(req.Status)

	isDoctor := roleID == entity.RoleIDDoctor && appointment.DoctorID == userID
	isPatient := roleID == entity.RoleIDPatient && appointment.PatientID == userID
	if !isDoctor && !isPatient {
		return nil, ErrNotAppointmentParty
	}

	// Confirm and complete are doctor moves; either party may cancel.
	switch next {
	case entity.AppointmentConfirmed, entity.AppointmentCompleted:
		if !isDoctor {
			return nil, ErrStatusChangeForbidden
		}
	case entity.AppointmentCancelled:
	default:
		return nil, ErrInvalidStatusTransition
	}

	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	appointment.Status = next
	if err := u.appointmentRepo.UpdateStatus(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	u.notifyStatusChange(ctx, appointment, userID)
	u.auditService.LogAction(ctx, &userID, auditActionForStatus(next), "appointment", appointment.ID.String(), string(next))

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// claimableSlot loads the slot and checks it can back a new booking: owned
// by the expected doctor, still open, and starting in the future.
func (u *appointmentUsecase) claimableSlot(ctx context.Context, slotID, doctorID uuid.UUID) (*entity.AvailabilitySlot, error) {
	slot, err := u.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot: %+v", err)
		return nil, err
	}
	if slot == nil || slot.DoctorID != doctorID {
		return nil, ErrSlotNotFound
	}
	if slot.Booked {
		return nil, ErrSlotTaken
	}
	if !slot.StartTime.After(time.Now()) {
		return nil, ErrSlotInPast
	}
	return slot, nil
}

func (u *appointmentUsecase) releaseHold(ctx context.Context, slotID uuid.UUID) {
	if err := u.slotHolder.Release(ctx, slotID); err != nil {
		u.log.Warnf("Failed to release slot hold: %+v", err)
	}
}

func (u *appointmentUsecase) notifyStatusChange(ctx context.Context, appointment *entity.Appointment, actorID uuid.UUID) {
	// Notify the other party, not whoever made the change.
	recipient := appointment.PatientID
	if actorID == appointment.PatientID {
		recipient = appointment.DoctorID
	}

	u.notifier.Notify(ctx, recipient, entity.NotificationKindAppointment, entity.CategoryAppointment,
		"Appointment Update",
		fmt.Sprintf("Your appointment on %s is now %s", appointment.StartTime.Format("Monday, 2 January 15:04"), appointment.Status),
		entity.PriorityMedium,
		entity.JSON{"appointment_id": appointment.ID.String()},
	)
}

func auditActionForStatus(status entity.AppointmentStatus) string {
	switch status {
	case entity.AppointmentConfirmed:
		return entity.AuditActionAppointmentConfirm
	case entity.AppointmentCancelled:
		return entity.AuditActionAppointmentCancel
	case entity.AppointmentCompleted:
		return entity.AuditActionAppointmentComplete
	default:
		return "appointment.status"
	}
}
