package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	"github.com/mamacare-health/notify-backend-go/internal/handler/http/response"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
)

var errDatastoreDown = fmt.Errorf("%w: connection refused", database.ErrUnavailable)

// withURLParam injects a chi route parameter so handlers can be exercised
// without mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type fakeNotificationService struct {
	directOutcome notification.DeliveryOutcome
	fanoutResult  notification.FanoutResult
	fanoutErr     error

	gotTarget    string
	gotRecipient string
	gotPayload   notification.Payload
}

func (f *fakeNotificationService) SendToRecipient(ctx context.Context, recipientID string, payload notification.Payload) (notification.FanoutResult, error) {
	f.gotRecipient = recipientID
	f.gotPayload = payload
	if f.fanoutErr != nil {
		return notification.FanoutResult{}, f.fanoutErr
	}
	return f.fanoutResult, nil
}

func (f *fakeNotificationService) SendDirect(ctx context.Context, target string, payload notification.Payload) notification.DeliveryOutcome {
	f.gotTarget = target
	f.gotPayload = payload
	return f.directOutcome
}

// ===== DIRECT SEND TESTS =====

func TestNotificationHandler_SendDirect_Delivered(t *testing.T) {
	svc := &fakeNotificationService{directOutcome: notification.DeliveryOutcome{
		Target:    "tok-1",
		Status:    notification.StatusDelivered,
		MessageID: "projects/p/messages/0:1",
	}}
	handler := NewNotificationHandler(svc)

	body := `{"token": "tok-1", "title": "Hello", "body": "World", "high_priority": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-1", svc.gotTarget)
	assert.Equal(t, notification.PriorityHigh, svc.gotPayload.Priority)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out notification.DirectSendResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, notification.StatusDelivered, out.Status)
	assert.Equal(t, "projects/p/messages/0:1", out.MessageID)
}

func TestNotificationHandler_SendDirect_TargetInvalid(t *testing.T) {
	svc := &fakeNotificationService{directOutcome: notification.DeliveryOutcome{
		Status: notification.StatusTargetInvalid,
		Detail: "Requested entity was not found.",
	}}
	handler := NewNotificationHandler(svc)

	body := `{"token": "stale", "title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestNotificationHandler_SendDirect_InvalidPayload(t *testing.T) {
	svc := &fakeNotificationService{directOutcome: notification.DeliveryOutcome{
		Status: notification.StatusInvalidPayload,
	}}
	handler := NewNotificationHandler(svc)

	body := `{"token": "tok-1", "title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_SendDirect_TransientError(t *testing.T) {
	svc := &fakeNotificationService{directOutcome: notification.DeliveryOutcome{
		Status: notification.StatusTransientError,
	}}
	handler := NewNotificationHandler(svc)

	body := `{"token": "tok-1", "title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNotificationHandler_SendDirect_MalformedJSON(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_SendDirect_MissingFields(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/direct", bytes.NewBufferString(`{"title": "Hello"}`))
	w := httptest.NewRecorder()

	handler.SendDirect(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "token")
	assert.Contains(t, resp.Error.Details, "body")
}

// ===== RECIPIENT FANOUT TESTS =====

func TestNotificationHandler_SendToRecipient_Success(t *testing.T) {
	svc := &fakeNotificationService{fanoutResult: notification.FanoutResult{
		Status:         notification.FanoutPartialSuccess,
		SuccessCount:   2,
		FailureCount:   1,
		TokensTargeted: 3,
		TokensRemoved:  1,
	}}
	handler := NewNotificationHandler(svc)

	body := `{"title": "Checkup Reminder", "body": "See you tomorrow at 9am."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/recipients/r1", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.SendToRecipient(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r1", svc.gotRecipient)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result notification.FanoutResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, notification.FanoutPartialSuccess, result.Status)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.TokensRemoved)
}

func TestNotificationHandler_SendToRecipient_NoTarget(t *testing.T) {
	svc := &fakeNotificationService{fanoutResult: notification.FanoutResult{
		Status: notification.FanoutNoTarget,
	}}
	handler := NewNotificationHandler(svc)

	body := `{"title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/recipients/ghost", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "ghost")
	w := httptest.NewRecorder()

	handler.SendToRecipient(w, req)

	// An empty audience is a successful fanout of size zero.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotificationHandler_SendToRecipient_MissingID(t *testing.T) {
	handler := NewNotificationHandler(&fakeNotificationService{})

	body := `{"title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/recipients/", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.SendToRecipient(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_SendToRecipient_StoreUnavailable(t *testing.T) {
	svc := &fakeNotificationService{
		fanoutErr: fmt.Errorf("failed to resolve targets: %w", errDatastoreDown),
	}
	handler := NewNotificationHandler(svc)

	body := `{"title": "Hello", "body": "World"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/recipients/r1", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.SendToRecipient(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
}
