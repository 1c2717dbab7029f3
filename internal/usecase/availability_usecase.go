package usecase

import (
	"context"
	"errors"
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
	ErrSlotNotFound   = errors.New("availability slot not found")
	ErrSlotInPast     = errors.New("slot must start in the future")
	ErrSlotEndInvalid = errors.New("slot end time must be after start time")
	ErrSlotOverlap    = errors.New("slot overlaps an existing slot")
	ErrSlotBooked     = errors.New("slot is booked and backs an appointment")
	ErrNotSlotOwner   = errors.New("slot belongs to another doctor")
	ErrDoctorNotFound = errors.New("doctor not found")
)

type AvailabilityUsecase interface {
	CreateSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	SetWeeklyHours(ctx context.Context, doctorID uuid.UUID, req *dto.WeeklyHoursRequest) (*dto.WeeklyHoursResponse, error)
	// GetDoctorAvailability is the patient-facing view: open upcoming slots
	// of an approved doctor, grouped by calendar day.
	GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.GroupedAvailabilityResponse, error)
	// GetOwnAvailability is the doctor-facing view: every upcoming slot,
	// booked ones included, grouped by calendar day.
	GetOwnAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.GroupedAvailabilityResponse, error)
	DeleteSlot(ctx context.Context, doctorID, slotID uuid.UUID) error
	DeleteAllOpenSlots(ctx context.Context, doctorID uuid.UUID) (*dto.BulkDeleteResponse, error)
}

type availabilityUsecase struct {
	log          *logrus.Logger
	slotRepo     repository.AvailabilitySlotRepository
	doctorRepo   repository.DoctorProfileRepository
	planner      *service.WeeklyPlanner
	auditService service.AuditService
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	slotRepo repository.AvailabilitySlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	planner *service.WeeklyPlanner,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:          log,
		slotRepo:     slotRepo,
		doctorRepo:   doctorRepo,
		planner:      planner,
		auditService: auditService,
	}
}

func (u *availabilityUsecase) CreateSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	now := time.Now()
	if !req.StartTime.After(now) {
		return nil, ErrSlotInPast
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrSlotEndInvalid
	}

	existing, err := u.slotRepo.FindByDoctorBetween(ctx, doctorID, req.StartTime, req.EndTime)
	if err != nil {
		u.log.Warnf("Failed to check for overlapping slots: %+v", err)
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrSlotOverlap
	}

	slot := &entity.AvailabilitySlot{
		DoctorID:  doctorID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := u.slotRepo.Create(ctx, slot); err != nil {
		u.log.Warnf("Failed to create availability slot: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(ctx, &doctorID, entity.AuditActionSlotCreate, "availability_slot", slot.ID.String(), nil)

	response := converter.SlotToResponse(slot)
	return &response, nil
}

func (u *availabilityUsecase) SetWeeklyHours(ctx context.Context, doctorID uuid.UUID, req *dto.WeeklyHoursRequest) (*dto.WeeklyHoursResponse, error) {
	template := make(map[int]service.DayHours, len(req.Days))
	for weekday, day := range req.Days {
		template[weekday] = service.DayHours{
			Start:      day.Start,
			End:        day.End,
			BreakStart: day.BreakStart,
			BreakEnd:   day.BreakEnd,
		}
	}

	now := time.Now()
	records := service.FlattenTemplate(template)
	candidates, err := u.planner.Expand(doctorID, records, now)
	if err != nil {
		return nil, err
	}

	// Skip candidates colliding with slots the doctor already has, so the
	// weekly form can be re-submitted without duplicating the calendar.
	slots, err := u.filterOverlapping(ctx, doctorID, candidates)
	if err != nil {
		return nil, err
	}

	if len(slots) > 0 {
		if err := u.slotRepo.CreateBatch(ctx, slots); err != nil {
			u.log.Warnf("Failed to create weekly slots: %+v", err)
			return nil, err
		}
	}

	u.auditService.LogAction(ctx, &doctorID, entity.AuditActionSlotWeekly, "availability_slot", doctorID.String(), map[string]interface{}{
		"requested_days": len(req.Days),
		"slots_created":  len(slots),
	})

	return &dto.WeeklyHoursResponse{
		RequestedDays: len(req.Days),
		SlotsCreated:  len(slots),
	}, nil
}

func (u *availabilityUsecase) filterOverlapping(ctx context.Context, doctorID uuid.UUID, candidates []entity.AvailabilitySlot) ([]entity.AvailabilitySlot, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	// Candidates are sorted, so the horizon is first start to last end.
	existing, err := u.slotRepo.FindByDoctorBetween(ctx, doctorID, candidates[0].StartTime, candidates[len(candidates)-1].EndTime)
	if err != nil {
		u.log.Warnf("Failed to load existing slots: %+v", err)
		return nil, err
	}

	slots := make([]entity.AvailabilitySlot, 0, len(candidates))
	for _, candidate := range candidates {
		collides := false
		for i := range existing {
			if existing[i].Overlaps(candidate.StartTime, candidate.EndTime) {
				collides = true
				break
			}
		}
		if !collides {
			slots = append(slots, candidate)
		}
	}
	return slots, nil
}

func (u *availabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.GroupedAvailabilityResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	slots, err := u.slotRepo.FindUpcomingByDoctor(ctx, doctorID, time.Now(), true)
	if err != nil {
		u.log.Warnf("Failed to list doctor availability: %+v", err)
		return nil, err
	}

	grouped := converter.GroupSlotsByDay(slots)
	return &grouped, nil
}

func (u *availabilityUsecase) GetOwnAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.GroupedAvailabilityResponse, error) {
	slots, err := u.slotRepo.FindUpcomingByDoctor(ctx, doctorID, time.Now(), false)
	if err != nil {
		u.log.Warnf("Failed to list own availability: %+v", err)
		return nil, err
	}

	grouped := converter.GroupSlotsByDay(slots)
	return &grouped, nil
}

func (u *availabilityUsecase) DeleteSlot(ctx context.Context, doctorID, slotID uuid.UUID) error {
	slot, err := u.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot: %+v", err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.DoctorID != doctorID {
		return ErrNotSlotOwner
	}
	// A booked slot backs an appointment; it is only freed by cancelling.
	if slot.Booked {
		return ErrSlotBooked
	}

	deleted, err := u.slotRepo.Delete(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete slot: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrSlotNotFound
	}

	u.auditService.LogAction(ctx, &doctorID, entity.AuditActionSlotDelete, "availability_slot", slotID.String(), nil)

	return nil
}

func (u *availabilityUsecase) DeleteAllOpenSlots(ctx context.Context, doctorID uuid.UUID) (*dto.BulkDeleteResponse, error) {
	deleted, err := u.slotRepo.DeleteAllOpenByDoctor(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to delete open slots: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(ctx, &doctorID, entity.AuditActionSlotDelete, "availability_slot", doctorID.String(), map[string]interface{}{
		"bulk":    true,
		"deleted": deleted,
	})

	return &dto.BulkDeleteResponse{Deleted: deleted}, nil
}
