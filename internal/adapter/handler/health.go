package handler

import (
	"log/slog"
	"net/http"

	"boatfeed/internal/domain/port"
)

type HealthHandler struct {
	cache  port.DatasetCachePort
	logger *slog.Logger
}

func NewHealthHandler(cache port.DatasetCachePort, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		cache:  cache,
		logger: logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "healthy"
	overallStatus := "healthy"

	if err := h.cache.Ping(r.Context()); err != nil {
		cacheStatus = "unhealthy"
		overallStatus = "degraded"
		h.logger.Warn("cache health check failed", "error", err)
	}

	datasetStatus := "empty"
	if ds, fresh, err := h.cache.Load(r.Context()); err == nil && ds != nil {
		if fresh {
			datasetStatus = "fresh"
		} else {
			datasetStatus = "expired"
		}
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status": overallStatus,
		"checks": map[string]string{
			"cache":   cacheStatus,
			"dataset": datasetStatus,
		},
	})
}
