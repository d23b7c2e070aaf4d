package handler

import (
	"log/slog"
	"net/http"
	"time"

	"boatfeed/internal/application/service"
	"boatfeed/internal/domain/model"
)

// RefreshHandler forces a full dataset rebuild.
type RefreshHandler struct {
	datasets *service.DatasetService
	log      *slog.Logger
}

func NewRefreshHandler(datasets *service.DatasetService, log *slog.Logger) *RefreshHandler {
	return &RefreshHandler{datasets: datasets, log: log}
}

func (h *RefreshHandler) Post(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	ds, err := h.datasets.GetDataset(r.Context(), true)
	if err != nil {
		h.log.Error("forced refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		OK           bool               `json:"ok"`
		LastUpdated  time.Time          `json:"last_updated"`
		Stale        bool               `json:"stale"`
		SourceStatus model.SourceStatus `json:"source_status"`
		Total        int                `json:"total"`
	}{
		OK:           true,
		LastUpdated:  ds.LastUpdated,
		Stale:        ds.Stale,
		SourceStatus: ds.SourceStatus,
		Total:        len(ds.Data),
	})
}
