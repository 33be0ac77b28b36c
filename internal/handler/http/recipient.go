package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
	"github.com/mamacare-health/notify-backend-go/internal/handler/http/response"
)

type RecipientHandler interface {
	RegisterTarget(w http.ResponseWriter, r *http.Request)
	RemoveTarget(w http.ResponseWriter, r *http.Request)
}

type RecipientHandlerImpl struct {
	recipientService recipient.RecipientService
}

// RegisterTarget implements RecipientHandler.
func (h *RecipientHandlerImpl) RegisterTarget(w http.ResponseWriter, r *http.Request) {
	// 1. Parse recipient ID from URL
	recipientID := chi.URLParam(r, "id")
	if recipientID == "" {
		response.BadRequest(w, "Recipient ID is required", nil)
		return
	}

	var req recipient.RegisterTargetRequest

	// 2. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterTarget decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 3. Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.recipientService.RegisterTarget(r.Context(), recipientID, req.Token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device target registered successfully", nil)
}

// RemoveTarget implements RecipientHandler.
func (h *RecipientHandlerImpl) RemoveTarget(w http.ResponseWriter, r *http.Request) {
	recipientID := chi.URLParam(r, "id")
	if recipientID == "" {
		response.BadRequest(w, "Recipient ID is required", nil)
		return
	}

	var req recipient.RemoveTargetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RemoveTarget decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	removed, err := h.recipientService.RemoveTarget(r.Context(), recipientID, req.Token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, recipient.RemoveTargetResponse{Removed: removed})
}

func NewRecipientHandler(recipientService recipient.RecipientService) RecipientHandler {
	return &RecipientHandlerImpl{
		recipientService: recipientService,
	}
}
