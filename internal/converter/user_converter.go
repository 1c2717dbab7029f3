package converter

import (
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// UserToResponse converts a User entity (with any loaded profiles) to a
// UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RoleNameByID(user.RoleID),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			LicenseNumber:   user.DoctorProfile.LicenseNumber,
			Specialization:  user.DoctorProfile.Specialization,
			Biography:       user.DoctorProfile.Biography,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
			ApprovalStatus:  string(user.DoctorProfile.ApprovalStatus),
		}
	}

	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			PhoneNumber: user.PatientProfile.PhoneNumber,
			DateOfBirth: user.PatientProfile.DateOfBirth.Format("2006-01-02"),
			Gender:      user.PatientProfile.Gender,
			Address:     user.PatientProfile.Address,
		}
	}

	return response
}

// DoctorToResponse converts a DoctorProfile to the public search result DTO
func DoctorToResponse(profile *entity.DoctorProfile) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:              profile.UserID,
		FullName:        profile.User.FullName,
		Specialization:  profile.Specialization,
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = DoctorToResponse(&profiles[i])
	}
	return responses
}

// UserToAdminResponse converts a User entity to the admin list DTO
func UserToAdminResponse(user *entity.User) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RoleNameByID(user.RoleID),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// DoctorToPendingResponse converts a DoctorProfile to the moderation DTO
func DoctorToPendingResponse(profile *entity.DoctorProfile) dto.PendingDoctorResponse {
	return dto.PendingDoctorResponse{
		ID:             profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
		ApprovalStatus: string(profile.ApprovalStatus),
	}
}
