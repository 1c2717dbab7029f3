package usecase

import (
	"context"
	"fmt"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PrescriptionUsecase interface {
	Issue(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientProfileRepository
	notifier         *service.NotificationService
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientProfileRepository,
	notifier *service.NotificationService,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		notifier:         notifier,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) Issue(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := &entity.Prescription{
		DoctorID:     doctorID,
		PatientID:    req.PatientID,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
	}

	if err := u.prescriptionRepo.Create(ctx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.notifier.Notify(ctx, req.PatientID, entity.NotificationKindSystem, entity.CategoryPrescription,
		"New Prescription",
		fmt.Sprintf("You have been prescribed %s (%s)", prescription.Medication, prescription.Dosage),
		entity.PriorityMedium,
		entity.JSON{"prescription_id": prescription.ID.String()},
	)

	u.auditService.LogAction(ctx, &doctorID, entity.AuditActionPrescriptionIssue, "prescription", prescription.ID.String(), nil)

	response := converter.PrescriptionToResponse(prescription)
	return &response, nil
}

func (u *prescriptionUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}
