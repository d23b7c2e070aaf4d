package handler

import (
	"net/http"
	"time"
)

// Demo endpoints backing the marketing site: a greeting stub and an
// availability stub. They share no logic with the dataset pipeline.
type DemoHandler struct {
	now func() time.Time
}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{now: time.Now}
}

func (h *DemoHandler) Hello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Captain"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Ahoy " + name + "!",
		"service":   "Ventura Yachts demo endpoint",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *DemoHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	boatID := r.URL.Query().Get("boatId")
	if boatID == "" {
		boatID = "ventura-42"
	}

	today := h.now().UTC()
	available := boatID == "ventura-42"

	next := today
	note := "Ready for immediate showing."
	if !available {
		next = today.AddDate(0, 0, 21)
		note = "In charter; next availability is estimated."
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"boatId":            boatID,
		"available":         available,
		"nextAvailableDate": next.Format(time.RFC3339),
		"note":              note,
	})
}
