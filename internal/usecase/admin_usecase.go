package usecase

import (
	"context"
	"errors"
	"fmt"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrDoctorAlreadyReviewed = errors.New("doctor application already reviewed")

type AdminUsecase interface {
	ListUsers(ctx context.Context, page, limit int) ([]dto.AdminUserResponse, int64, error)
	// SetUserActive enables or disables an account. Disabling also revokes
	// every live session so the lockout takes effect immediately.
	SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*dto.AdminUserResponse, error)
	ListPendingDoctors(ctx context.Context, page, limit int) (*dto.PendingDoctorListResponse, error)
	ReviewDoctor(ctx context.Context, adminID, doctorID uuid.UUID, approve bool) (*dto.PendingDoctorResponse, error)
}

type adminUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	redisClient  *redis.Client
	notifier     *service.NotificationService
	auditService service.AuditService
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	redisClient *redis.Client,
	notifier *service.NotificationService,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		redisClient:  redisClient,
		notifier:     notifier,
		auditService: auditService,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, page, limit int) ([]dto.AdminUserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := u.userRepo.FindAllPaginated(ctx, page, limit)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	responses := make([]dto.AdminUserResponse, len(users))
	for i := range users {
		responses[i] = converter.UserToAdminResponse(&users[i])
	}
	return responses, total, nil
}

func (u *adminUsecase) SetUserActive(ctx context.Context, adminID, userID uuid.UUID, active bool) (*dto.AdminUserResponse, error) {
	updated, err := u.userRepo.UpdateActive(ctx, userID, active)
	if err != nil {
		u.log.Warnf("Failed to update user status: %+v", err)
		return nil, err
	}
	if updated == 0 {
		return nil, ErrUserNotFound
	}

	if !active {
		u.revokeAllTokens(ctx, userID)
	}

	u.auditService.LogAction(ctx, &adminID, entity.AuditActionUserStatusChange, "user", userID.String(), map[string]interface{}{
		"is_active": active,
	})

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to reload user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	response := converter.UserToAdminResponse(user)
	return &response, nil
}

func (u *adminUsecase) ListPendingDoctors(ctx context.Context, page, limit int) (*dto.PendingDoctorListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, total, err := u.doctorRepo.FindByApproval(ctx, entity.ApprovalPending, page, limit)
	if err != nil {
		u.log.Warnf("Failed to list pending doctors: %+v", err)
		return nil, err
	}

	doctors := make([]dto.PendingDoctorResponse, len(profiles))
	for i := range profiles {
		doctors[i] = converter.DoctorToPendingResponse(&profiles[i])
	}

	return &dto.PendingDoctorListResponse{
		Doctors: doctors,
		Total:   total,
	}, nil
}

func (u *adminUsecase) ReviewDoctor(ctx context.Context, adminID, doctorID uuid.UUID, approve bool) (*dto.PendingDoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if profile.ApprovalStatus != entity.ApprovalPending {
		return nil, ErrDoctorAlreadyReviewed
	}

	status := entity.ApprovalRejected
	action := entity.AuditActionDoctorReject
	message := "Your doctor application was rejected. Contact support for details."
	if approve {
		status = entity.ApprovalApproved
		action = entity.AuditActionDoctorApprove
		message = "Your doctor application was approved. Patients can now find and book you."
	}

	updated, err := u.doctorRepo.UpdateApproval(ctx, doctorID, status)
	if err != nil {
		u.log.Warnf("Failed to update approval status: %+v", err)
		return nil, err
	}
	if updated == 0 {
		return nil, ErrDoctorNotFound
	}
	profile.ApprovalStatus = status

	u.notifier.Notify(ctx, doctorID, entity.NotificationKindSystem, entity.CategorySystem,
		"Application Reviewed", message, entity.PriorityHigh, nil)

	u.auditService.LogAction(ctx, &adminID, action, "doctor_profile", doctorID.String(), nil)

	response := converter.DoctorToPendingResponse(profile)
	return &response, nil
}

func (u *adminUsecase) revokeAllTokens(ctx context.Context, userID uuid.UUID) {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to scan tokens for revocation: %+v", err)
			continue
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to revoke tokens: %+v", err)
			}
		}
	}
}
