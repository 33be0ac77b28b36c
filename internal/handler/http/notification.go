package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	"github.com/mamacare-health/notify-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	SendDirect(w http.ResponseWriter, r *http.Request)
	SendToRecipient(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

// SendDirect implements NotificationHandler.
func (h *NotificationHandlerImpl) SendDirect(w http.ResponseWriter, r *http.Request) {
	var req notification.DirectSendRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SendDirect decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// 3. Deliver to the single target
	outcome := h.notificationService.SendDirect(r.Context(), req.Token, req.Payload())

	switch outcome.Status {
	case notification.StatusDelivered:
		response.Success(w, notification.DirectSendResponse{
			Status:    outcome.Status,
			MessageID: outcome.MessageID,
		})
	case notification.StatusTargetInvalid:
		response.NotFound(w, "Device token is not registered with the provider")
	case notification.StatusInvalidPayload:
		response.BadRequest(w, "Provider rejected the notification payload", nil)
	default:
		response.ServiceUnavailable(w, "Push provider unavailable, try again later")
	}
}

// SendToRecipient implements NotificationHandler.
func (h *NotificationHandlerImpl) SendToRecipient(w http.ResponseWriter, r *http.Request) {
	// 1. Parse recipient ID from URL
	recipientID := chi.URLParam(r, "id")
	if recipientID == "" {
		response.BadRequest(w, "Recipient ID is required", nil)
		return
	}

	var req notification.RecipientSendRequest

	// 2. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SendToRecipient decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 3. Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// 4. Fan out to every registered device
	result, err := h.notificationService.SendToRecipient(r.Context(), recipientID, req.Payload())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
	}
}
