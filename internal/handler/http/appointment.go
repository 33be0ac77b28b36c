package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mamacare-health/notify-backend-go/internal/domain/appointment"
	"github.com/mamacare-health/notify-backend-go/internal/handler/http/response"
)

type AppointmentHandler interface {
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AppointmentHandlerImpl struct {
	appointmentService appointment.AppointmentService
}

// UpdateStatus implements AppointmentHandler.
func (h *AppointmentHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	// 1. Parse appointment ID from URL
	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		response.BadRequest(w, "Appointment ID is required", nil)
		return
	}

	var req appointment.UpdateStatusRequest

	// 2. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AppointmentID = appointmentID

	// 3. Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// 4. Persist the transition and notify the counterpart
	result, err := h.appointmentService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment status updated successfully", result)
}

// Get implements AppointmentHandler.
func (h *AppointmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		response.BadRequest(w, "Appointment ID is required", nil)
		return
	}

	result, err := h.appointmentService.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewAppointmentHandler(appointmentService appointment.AppointmentService) AppointmentHandler {
	return &AppointmentHandlerImpl{
		appointmentService: appointmentService,
	}
}
