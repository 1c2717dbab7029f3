package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/delivery/http/middleware"
	"medivuno-api/internal/usecase"
	"medivuno-api/pkg/response"
	"medivuno-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// ListUsers pages through all accounts. Query: page, limit.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	users, total, err := h.adminUsecase.ListUsers(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users, meta)
}

// UpdateUserStatus enables or disables an account
func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.SetUserActive(r.Context(), adminID, userID, *req.IsActive)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to update user status")
		}
		return
	}

	response.Success(w, http.StatusOK, "User status updated successfully", user)
}

// ListPendingDoctors pages through unreviewed doctor applications
func (h *AdminHandler) ListPendingDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	doctors, err := h.adminUsecase.ListPendingDoctors(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

func (h *AdminHandler) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	h.reviewDoctor(w, r, true)
}

func (h *AdminHandler) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	h.reviewDoctor(w, r, false)
}

func (h *AdminHandler) reviewDoctor(w http.ResponseWriter, r *http.Request, approve bool) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.adminUsecase.ReviewDoctor(r.Context(), adminID, doctorID, approve)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorAlreadyReviewed:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to review doctor")
		}
		return
	}

	message := "Doctor rejected"
	if approve {
		message = "Doctor approved"
	}
	response.Success(w, http.StatusOK, message, doctor)
}
