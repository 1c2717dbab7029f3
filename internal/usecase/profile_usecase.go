package usecase

import (
	"context"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// UpdateProfile applies the caller's changes; role-specific fields are
	// only applied when the caller holds that role.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// SearchDoctors lists approved doctors with active accounts, optionally
	// filtered by name and specialization.
	SearchDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
}

type profileUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewProfileUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
		if err := u.userRepo.Update(ctx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}

	if user.IsDoctor() && user.DoctorProfile != nil {
		profile := user.DoctorProfile
		if req.Specialization != "" {
			profile.Specialization = req.Specialization
		}
		if req.Biography != "" {
			profile.Biography = req.Biography
		}
		if req.ConsultationFee != nil {
			profile.ConsultationFee = *req.ConsultationFee
		}
		if err := u.doctorRepo.Update(ctx, profile); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return nil, err
		}
	}

	if user.IsPatient() && user.PatientProfile != nil {
		profile := user.PatientProfile
		if req.PhoneNumber != "" {
			profile.PhoneNumber = req.PhoneNumber
		}
		if req.Address != "" {
			profile.Address = req.Address
		}
		if err := u.patientRepo.Update(ctx, profile); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return nil, err
		}
	}

	u.auditService.LogAction(ctx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), nil)

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) SearchDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}
