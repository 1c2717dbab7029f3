package converter

import (
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		SlotID:          appointment.SlotID,
		StartTime:       appointment.StartTime,
		DurationMinutes: appointment.DurationMinutes,
		Type:            appointment.Type,
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
		DoctorName:      appointment.Doctor.User.FullName,
		PatientName:     appointment.Patient.User.FullName,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		responses[i] = *resp
	}
	return responses
}
