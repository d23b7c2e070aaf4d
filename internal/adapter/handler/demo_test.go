package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDemoHandler() *DemoHandler {
	h := NewDemoHandler()
	h.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func TestDemoHello(t *testing.T) {
	h := fixedDemoHandler()

	rec := httptest.NewRecorder()
	h.Hello(rec, httptest.NewRequest(http.MethodGet, "/demo/hello?name=Sam", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Ahoy Sam!", res["message"])
	assert.Equal(t, "2026-03-01T12:00:00Z", res["timestamp"])
}

func TestDemoHelloDefaultName(t *testing.T) {
	h := fixedDemoHandler()

	rec := httptest.NewRecorder()
	h.Hello(rec, httptest.NewRequest(http.MethodGet, "/demo/hello", nil))

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Ahoy Captain!", res["message"])
}

func TestDemoAvailability(t *testing.T) {
	h := fixedDemoHandler()

	rec := httptest.NewRecorder()
	h.Availability(rec, httptest.NewRequest(http.MethodGet, "/demo/availability", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		BoatID            string `json:"boatId"`
		Available         bool   `json:"available"`
		NextAvailableDate string `json:"nextAvailableDate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ventura-42", res.BoatID)
	assert.True(t, res.Available)
	assert.Equal(t, "2026-03-01T12:00:00Z", res.NextAvailableDate)
}

func TestDemoAvailabilityOtherBoat(t *testing.T) {
	h := fixedDemoHandler()

	rec := httptest.NewRecorder()
	h.Availability(rec, httptest.NewRequest(http.MethodGet, "/demo/availability?boatId=v-7", nil))

	var res struct {
		Available         bool   `json:"available"`
		NextAvailableDate string `json:"nextAvailableDate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Available)
	assert.Equal(t, "2026-03-22T12:00:00Z", res.NextAvailableDate)
}
