package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mamacare-health/notify-backend-go/internal/config"
	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
)

const (
	messagingScope  = "https://www.googleapis.com/auth/firebase.messaging"
	defaultEndpoint = "https://fcm.googleapis.com"
)

// FCMClient delivers notifications through the FCM HTTP v1 API. It
// implements notification.Dispatcher: every transport, auth and provider
// failure is folded into the DeliveryOutcome taxonomy.
type FCMClient struct {
	sendURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewFCMClient builds a client from a service-account credentials file. The
// project ID defaults to the one embedded in the credentials; cfg.Endpoint
// overrides the API host so tests can point at a local server.
func NewFCMClient(cfg config.FCMConfig) (*FCMClient, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read FCM credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(context.Background(), data, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FCM credentials: %w", err)
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("FCM project ID not set and not present in credentials")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &FCMClient{
		sendURL:     fmt.Sprintf("%s/v1/projects/%s/messages:send", endpoint, projectID),
		tokenSource: creds.TokenSource,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// ============= Wire types (FCM HTTP v1) =============

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroidConfig struct {
	Priority string `json:"priority,omitempty"`
}

type fcmAPNSConfig struct {
	Headers map[string]string `json:"headers,omitempty"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification *fcmNotification  `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *fcmAndroidConfig `json:"android,omitempty"`
	APNS         *fcmAPNSConfig    `json:"apns,omitempty"`
}

type fcmSendRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmSendResponse struct {
	Name string `json:"name"`
}

type fcmErrorDetail struct {
	Type      string `json:"@type"`
	ErrorCode string `json:"errorCode"`
}

type fcmErrorBody struct {
	Error struct {
		Code    int              `json:"code"`
		Message string           `json:"message"`
		Status  string           `json:"status"`
		Details []fcmErrorDetail `json:"details"`
	} `json:"error"`
}

// Send implements notification.Dispatcher.
func (c *FCMClient) Send(ctx context.Context, target string, payload notification.Payload) notification.DeliveryOutcome {
	msg := fcmMessage{
		Token: target,
		Notification: &fcmNotification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
	if payload.Priority == notification.PriorityHigh {
		msg.Android = &fcmAndroidConfig{Priority: "HIGH"}
		msg.APNS = &fcmAPNSConfig{Headers: map[string]string{"apns-priority": "10"}}
	}

	body, err := json.Marshal(fcmSendRequest{Message: msg})
	if err != nil {
		return failure(target, notification.StatusInvalidPayload, fmt.Sprintf("encode message: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(body))
	if err != nil {
		return failure(target, notification.StatusTransientError, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokenSource.Token()
	if err != nil {
		return failure(target, notification.StatusTransientError, fmt.Sprintf("provider auth: %v", err))
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(target, notification.StatusTransientError, fmt.Sprintf("provider request: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return failure(target, notification.StatusTransientError, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode == http.StatusOK {
		var ok fcmSendResponse
		if err := json.Unmarshal(raw, &ok); err != nil {
			return failure(target, notification.StatusTransientError, fmt.Sprintf("decode response: %v", err))
		}
		return notification.DeliveryOutcome{
			Target:    target,
			Status:    notification.StatusDelivered,
			MessageID: ok.Name,
		}
	}

	return classifyError(target, resp.StatusCode, raw)
}

// Healthy reports whether the credential source can still mint an access
// token. Used by the health endpoint.
func (c *FCMClient) Healthy(ctx context.Context) error {
	if _, err := c.tokenSource.Token(); err != nil {
		return fmt.Errorf("provider credentials: %w", err)
	}
	return nil
}

// classifyError maps a v1 error response onto the outcome taxonomy. The
// per-message errorCode detail is authoritative when present; the HTTP
// status is the fallback. Anything unrecognized counts as transient.
func classifyError(target string, httpStatus int, raw []byte) notification.DeliveryOutcome {
	var body fcmErrorBody
	_ = json.Unmarshal(raw, &body)

	errorCode := body.Error.Status
	for _, d := range body.Error.Details {
		if d.ErrorCode != "" {
			errorCode = d.ErrorCode
		}
	}

	detail := body.Error.Message
	if detail == "" {
		detail = fmt.Sprintf("provider returned HTTP %d", httpStatus)
	}

	status := notification.StatusTransientError
	switch {
	case errorCode == "UNREGISTERED" || httpStatus == http.StatusNotFound:
		status = notification.StatusTargetInvalid
	case errorCode == "SENDER_ID_MISMATCH":
		status = notification.StatusTargetInvalid
	case errorCode == "INVALID_ARGUMENT" || httpStatus == http.StatusBadRequest:
		status = notification.StatusInvalidPayload
	}

	return notification.DeliveryOutcome{
		Target: target,
		Status: status,
		Detail: detail,
	}
}

func failure(target string, status notification.DeliveryStatus, detail string) notification.DeliveryOutcome {
	return notification.DeliveryOutcome{
		Target: target,
		Status: status,
		Detail: detail,
	}
}
