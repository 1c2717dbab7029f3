package converter

import (
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) dto.PrescriptionResponse {
	return dto.PrescriptionResponse{
		ID:           prescription.ID,
		DoctorID:     prescription.DoctorID,
		PatientID:    prescription.PatientID,
		Medication:   prescription.Medication,
		Dosage:       prescription.Dosage,
		Instructions: prescription.Instructions,
		DoctorName:   prescription.Doctor.User.FullName,
		PatientName:  prescription.Patient.User.FullName,
		IssuedAt:     prescription.IssuedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}
