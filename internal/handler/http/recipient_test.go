package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
)

type fakeRecipientService struct {
	registerErr error
	removed     bool
	removeErr   error

	gotRecipient string
	gotToken     string
}

func (f *fakeRecipientService) RegisterTarget(ctx context.Context, recipientID, token string) error {
	f.gotRecipient = recipientID
	f.gotToken = token
	return f.registerErr
}

func (f *fakeRecipientService) RemoveTarget(ctx context.Context, recipientID, token string) (bool, error) {
	f.gotRecipient = recipientID
	f.gotToken = token
	return f.removed, f.removeErr
}

func TestRecipientHandler_RegisterTarget_Success(t *testing.T) {
	svc := &fakeRecipientService{}
	handler := NewRecipientHandler(svc)

	body := `{"token": "new-device-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipients/r1/targets", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.RegisterTarget(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "r1", svc.gotRecipient)
	assert.Equal(t, "new-device-token", svc.gotToken)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Device target registered successfully", resp.Message)
}

func TestRecipientHandler_RegisterTarget_MissingToken(t *testing.T) {
	handler := NewRecipientHandler(&fakeRecipientService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipients/r1/targets", bytes.NewBufferString(`{}`))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.RegisterTarget(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecipientHandler_RegisterTarget_UnknownRecipient(t *testing.T) {
	svc := &fakeRecipientService{registerErr: recipient.ErrRecipientNotFound}
	handler := NewRecipientHandler(svc)

	body := `{"token": "new-device-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipients/ghost/targets", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "ghost")
	w := httptest.NewRecorder()

	handler.RegisterTarget(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipientHandler_RemoveTarget_Removed(t *testing.T) {
	svc := &fakeRecipientService{removed: true}
	handler := NewRecipientHandler(svc)

	body := `{"token": "old-device-token"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recipients/r1/targets", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.RemoveTarget(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result recipient.RemoveTargetResponse
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Removed)
}

func TestRecipientHandler_RemoveTarget_NotPresent(t *testing.T) {
	svc := &fakeRecipientService{removed: false}
	handler := NewRecipientHandler(svc)

	body := `{"token": "never-registered"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recipients/r1/targets", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "r1")
	w := httptest.NewRecorder()

	handler.RemoveTarget(w, req)

	// Removing an absent token still succeeds, it just reports removed=false.
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result recipient.RemoveTargetResponse
	require.NoError(t, json.Unmarshal(data, &result))
	assert.False(t, result.Removed)
}

func TestRecipientHandler_RemoveTarget_MissingID(t *testing.T) {
	handler := NewRecipientHandler(&fakeRecipientService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recipients//targets", bytes.NewBufferString(`{"token": "t"}`))
	w := httptest.NewRecorder()

	handler.RemoveTarget(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
