package handler

import (
	"log/slog"
	"net/http"
	"time"

	"boatfeed/internal/application/service"
	"boatfeed/internal/domain/model"
)

type datasetMeta struct {
	LastUpdated  time.Time          `json:"last_updated"`
	Stale        bool               `json:"stale"`
	SourceStatus model.SourceStatus `json:"source_status"`
}

// BoatsHandler serves the listing collection and single-listing lookups.
type BoatsHandler struct {
	datasets *service.DatasetService
	queries  *service.QueryService
	log      *slog.Logger
}

func NewBoatsHandler(datasets *service.DatasetService, queries *service.QueryService, log *slog.Logger) *BoatsHandler {
	return &BoatsHandler{
		datasets: datasets,
		queries:  queries,
		log:      log,
	}
}

// Get handles GET /boats. With an id parameter it returns one listing;
// otherwise the filtered/sorted/paginated slice.
func (h *BoatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	params := r.URL.Query()
	id := params.Get("id")
	if id == "" {
		id = params.Get("boat_id")
	}
	if id == "" {
		id = params.Get("boatid")
	}

	ds, err := h.datasets.GetDataset(r.Context(), false)
	if err != nil {
		h.log.Error("failed to get dataset", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if id != "" {
		normalized := service.NormalizeDetailID(id)
		found, ok := h.queries.FindByID(ds, id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "Not found",
				"id":    normalized,
			})
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Meta datasetMeta   `json:"meta"`
			Data model.Listing `json:"data"`
		}{
			Meta: datasetMeta{
				LastUpdated:  ds.LastUpdated,
				Stale:        ds.Stale,
				SourceStatus: ds.SourceStatus,
			},
			Data: found,
		})
		return
	}

	writeJSON(w, http.StatusOK, h.queries.Apply(ds, params))
}
