package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// WebhookHandler receives marketing-site form submissions. It accepts JSON,
// form-encoded, or plain-text bodies and echoes what it understood; there is
// no downstream delivery yet.
type WebhookHandler struct {
	log *slog.Logger
}

func NewWebhookHandler(log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{log: log}
}

type submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BoatModel string `json:"boatModel"`
	Budget    string `json:"budget"`
	Message   string `json:"message"`
	Timeline  string `json:"timeline"`
}

func (h *WebhookHandler) Post(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	contentType := r.Header.Get("Content-Type")
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	fields, parsed, unsupported, parseErr := parseSubmissionBody(contentType, rawBody)
	if parseErr != "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"received": false,
			"error":    "Invalid request body.",
			"details":  parseErr,
		})
		return
	}

	sub := normalizeSubmission(fields)

	var missing []string
	for _, req := range [...]struct{ key, value string }{
		{"name", sub.Name},
		{"email", sub.Email},
		{"boatModel", sub.BoatModel},
	} {
		if req.value == "" {
			missing = append(missing, req.key)
		}
	}
	if missing == nil {
		missing = []string{}
	}

	submissionID := "vy-" + uuid.NewString()

	h.log.Info("form submission received",
		"submission_id", submissionID,
		"content_type", contentType,
		"missing_fields", missing,
		"raw_length", len(rawBody))

	writeJSON(w, http.StatusOK, map[string]any{
		"received":               true,
		"submissionId":           submissionID,
		"missingFields":          missing,
		"contentType":            contentType,
		"parsed":                 parsed,
		"unsupportedContentType": unsupported,
	})
}

// parseSubmissionBody decodes the body by content type into a flat field
// map. Plain text and unknown types yield no fields but are not errors.
func parseSubmissionBody(contentType string, body []byte) (fields map[string]string, parsed, unsupported bool, parseErr string) {
	switch {
	case strings.Contains(contentType, "application/json"):
		var data map[string]any
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, false, false, err.Error()
		}
		fields = make(map[string]string, len(data))
		for k, v := range data {
			if s, ok := v.(string); ok {
				fields[k] = s
			}
		}
		return fields, true, false, ""

	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, false, false, err.Error()
		}
		fields = make(map[string]string, len(values))
		for k := range values {
			fields[k] = values.Get(k)
		}
		return fields, true, false, ""

	case strings.Contains(contentType, "text/plain"):
		return nil, false, false, ""

	default:
		return nil, false, true, ""
	}
}

// normalizeSubmission maps submitted field names, including the aliases the
// site's form builder emits, onto the canonical submission shape.
func normalizeSubmission(fields map[string]string) submission {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := fields[k]; v != "" {
				return v
			}
		}
		return ""
	}

	return submission{
		Name:      pick("name", "full_name"),
		Email:     pick("email"),
		Phone:     pick("phone", "phone_number"),
		BoatModel: pick("boat_model", "boatModel", "model"),
		Budget:    pick("budget", "price_range"),
		Message:   pick("message", "notes"),
		Timeline:  pick("timeline"),
	}
}
