// Package health exposes liveness and readiness endpoints. Liveness only
// proves the process is serving; readiness runs the registered dependency
// checks (upstream API, cache) and reports 503 when any of them fails.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const checkTimeout = 5 * time.Second

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// Status is the reported state of the service or one dependency.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the body of both health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Name      string                 `json:"service"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status  Status `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler serves the health endpoints for one named service.
type Handler struct {
	service string

	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewHandler creates a handler reporting under the given service name.
func NewHandler(service string) *Handler {
	return &Handler{
		service:  service,
		checkers: make(map[string]Checker),
	}
}

// Register adds a named dependency check to the readiness probe.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// LivenessHandler answers 200 whenever the process can serve at all.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.write(w, http.StatusOK, Response{
			Status:    StatusUp,
			Name:      h.service,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler runs every registered check and answers 503 when any
// dependency is down.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		h.mu.RLock()
		checkers := make(map[string]Checker, len(h.checkers))
		for name, c := range h.checkers {
			checkers[name] = c
		}
		h.mu.RUnlock()

		checks := make(map[string]CheckResult, len(checkers))
		status := StatusUp
		for name, check := range checkers {
			started := time.Now()
			result := CheckResult{Status: StatusUp}
			if err := check(ctx); err != nil {
				result = CheckResult{Status: StatusDown, Error: err.Error()}
				status = StatusDown
			}
			result.Latency = time.Since(started).Round(time.Millisecond).String()
			checks[name] = result
		}

		code := http.StatusOK
		if status == StatusDown {
			code = http.StatusServiceUnavailable
		}
		h.write(w, code, Response{
			Status:    status,
			Name:      h.service,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	}
}

func (h *Handler) write(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
