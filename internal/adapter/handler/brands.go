package handler

import (
	"log/slog"
	"net/http"
	"time"

	"boatfeed/internal/application/service"
	"boatfeed/internal/domain/model"
)

// BrandsHandler lists the distinct makes present in the dataset, for filter
// dropdowns.
type BrandsHandler struct {
	datasets *service.DatasetService
	queries  *service.QueryService
	log      *slog.Logger
}

func NewBrandsHandler(datasets *service.DatasetService, queries *service.QueryService, log *slog.Logger) *BrandsHandler {
	return &BrandsHandler{
		datasets: datasets,
		queries:  queries,
		log:      log,
	}
}

func (h *BrandsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	ds, err := h.datasets.GetDataset(r.Context(), false)
	if err != nil {
		h.log.Error("failed to get dataset", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	brands := h.queries.Brands(ds)

	writeJSON(w, http.StatusOK, brandsResponse{
		Meta: brandsMeta{
			LastUpdated:  ds.LastUpdated,
			Stale:        ds.Stale,
			SourceStatus: ds.SourceStatus,
			Total:        len(brands),
		},
		Data: brands,
	})
}

type brandsMeta struct {
	LastUpdated  time.Time          `json:"last_updated"`
	Stale        bool               `json:"stale"`
	SourceStatus model.SourceStatus `json:"source_status"`
	Total        int                `json:"total"`
}

type brandsResponse struct {
	Meta brandsMeta `json:"meta"`
	Data []string   `json:"data"`
}
