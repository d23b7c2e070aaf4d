package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"boatfeed/internal/domain/port"
)

// RawHandler forwards an upstream feed response verbatim. Non-2xx upstream
// responses become an error envelope carrying the upstream status and body.
type RawHandler struct {
	fetcher         port.RawFetcher
	feedName        string
	fallbackContent string
	log             *slog.Logger
}

func NewRawHandler(fetcher port.RawFetcher, feedName, fallbackContent string, log *slog.Logger) *RawHandler {
	return &RawHandler{
		fetcher:         fetcher,
		feedName:        feedName,
		fallbackContent: fallbackContent,
		log:             log,
	}
}

func (h *RawHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	status, contentType, body, err := h.fetcher.FetchRaw(r.Context())
	if err != nil {
		h.log.Error("raw passthrough fetch failed", "feed", h.feedName, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if status < 200 || status >= 300 {
		writeJSON(w, status, map[string]any{
			"error":  fmt.Sprintf("Fetch failed %d", status),
			"status": status,
			"body":   string(body),
		})
		return
	}

	if contentType == "" {
		contentType = h.fallbackContent
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
