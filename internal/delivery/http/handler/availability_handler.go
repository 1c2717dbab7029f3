package handler

import (
	"encoding/json"
	"net/http"

	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/delivery/http/middleware"
	"medivuno-api/internal/usecase"
	"medivuno-api/pkg/response"
	"medivuno-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// CreateSlot adds a single ad-hoc availability slot for the calling doctor
func (h *AvailabilityHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.CreateSlot(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotInPast, usecase.ErrSlotEndInvalid:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrSlotOverlap:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

// SetWeeklyHours materializes a weekly recurring-hours template into dated
// slots over the configured horizon
func (h *AvailabilityHandler) SetWeeklyHours(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.WeeklyHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.SetWeeklyHours(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotOverlap:
			response.Conflict(w, err.Error())
		default:
			// Planner validation errors (bad clock format, inverted
			// windows) all map to bad request.
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Weekly hours applied successfully", result)
}

// GetOwnAvailability lists the calling doctor's upcoming slots grouped by
// day, booked ones included
func (h *AvailabilityHandler) GetOwnAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	grouped, err := h.availabilityUsecase.GetOwnAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", grouped)
}

// GetDoctorAvailability lists an approved doctor's open upcoming slots
// grouped by day
func (h *AvailabilityHandler) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	grouped, err := h.availabilityUsecase.GetDoctorAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", grouped)
}

// DeleteSlot removes one open slot owned by the calling doctor
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slotID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteSlot(r.Context(), doctorID, slotID); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrNotSlotOwner:
			response.Forbidden(w, err.Error())
		case usecase.ErrSlotBooked:
			response.Conflict(w, "Slot is booked; cancel the appointment first")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

// DeleteAllOpenSlots clears every unbooked slot of the calling doctor. The
// confirm query parameter is required so a stray DELETE cannot wipe a
// calendar.
func (h *AvailabilityHandler) DeleteAllOpenSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		response.Error(w, http.StatusBadRequest, "Bulk delete requires confirm=true", nil)
		return
	}

	result, err := h.availabilityUsecase.DeleteAllOpenSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to delete slots")
		return
	}

	response.Success(w, http.StatusOK, "Open slots deleted successfully", result)
}
