package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is the slice of the database pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderHealth reports whether the push provider is reachable.
type ProviderHealth interface {
	Healthy(ctx context.Context) error
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type HealthHandler struct {
	db       Pinger
	provider ProviderHealth
}

func NewHealthHandler(db Pinger, provider ProviderHealth) *HealthHandler {
	return &HealthHandler{db: db, provider: provider}
}

// Check probes the service dependencies and reports 503 when any of them
// is down. The body is plain JSON rather than the API envelope so that
// load balancer probes stay trivial to parse.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{
		Status: "healthy",
		Checks: map[string]string{},
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Checks["database"] = err.Error()
		} else {
			status.Checks["database"] = "ok"
		}
	}

	if h.provider != nil {
		if err := h.provider.Healthy(ctx); err != nil {
			status.Status = "degraded"
			status.Checks["push_provider"] = err.Error()
		} else {
			status.Checks["push_provider"] = "ok"
		}
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
