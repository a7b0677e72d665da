package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks the Redis session store and upstream HR API reachability before
// declaring the gateway ready.
type ReadinessHandler struct {
	redis       *redis.Client
	upstreamURL string
	httpc       *http.Client
}

func NewReadinessHandler(rdb *redis.Client, upstreamBaseURL string) *ReadinessHandler {
	return &ReadinessHandler{
		redis:       rdb,
		upstreamURL: upstreamBaseURL + "/api/csrf/",
		httpc:       &http.Client{Timeout: 3 * time.Second},
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Redis ping ---
	if _, err := h.redis.Ping(ctx).Result(); err != nil {
		deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["redis"] = dependencyStatus{Status: "ok"}
	}

	// --- Upstream HR API reachable ---
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.upstreamURL, nil)
	if err == nil {
		var resp *http.Response
		resp, err = h.httpc.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				deps["hr_api"] = dependencyStatus{Status: "unhealthy", Error: resp.Status}
				healthy = false
			} else {
				deps["hr_api"] = dependencyStatus{Status: "ok"}
			}
		}
	}
	if err != nil {
		deps["hr_api"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
