package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/hanzi-reader/internal/service/dictionary"
)

// dictionaryStatus is the part of the dictionary store health checks need.
type dictionaryStatus interface {
	Ready() bool
	Info() (dictionary.LoadInfo, bool)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	dict    dictionaryStatus
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(dict dictionaryStatus, version string) *HealthHandler {
	return &HealthHandler{dict: dict, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status   string `json:"status"`
	Source   string `json:"source,omitempty"`
	Entries  int    `json:"entries,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
	LoadTime string `json:"loadTime,omitempty"`
	Age      string `json:"age,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now(),
	})
}

// Ready is the readiness probe: 200 once the dictionary is loaded, 503 before.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.dict.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "loading",
			Timestamp: h.now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now(),
	})
}

// Health is the full health check with dictionary stats and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	comp := CompStatus{Status: "loading"}
	overallStatus := "loading"

	if info, ok := h.dict.Info(); ok && h.dict.Ready() {
		comp = CompStatus{
			Status:   "ok",
			Source:   info.Source,
			Entries:  info.Stats.UniqueKeys,
			Skipped:  info.Stats.SkippedLines,
			LoadTime: info.Duration.String(),
			Age:      now.Sub(info.LoadedAt).Truncate(time.Second).String(),
		}
		overallStatus = "ok"
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: map[string]CompStatus{"dictionary": comp},
		Timestamp:  now,
	})
}
