package feed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatfeed/internal/domain/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"small", 950, "950"},
		{"thousands", 1500, "1,500"},
		{"millions", 2750000, "2,750,000"},
		{"rounds", 1499.6, "1,500"},
		{"negative", -12500, "-12,500"},
		{"nan", math.NaN(), ""},
		{"inf", math.Inf(1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumber(tt.in))
		})
	}
}

func TestConvertPrice(t *testing.T) {
	rates := model.NewRateTable()
	rates.Set(model.EUR, model.GBP, 0.85)
	rates.Set(model.EUR, model.USD, 1.1)

	t.Run("converts with known rate", func(t *testing.T) {
		assert.Equal(t, "850,000", convertPrice(1_000_000, "EUR", rates, model.GBP))
	})

	t.Run("identity when origin equals target", func(t *testing.T) {
		assert.Equal(t, "1,000,000", convertPrice(1_000_000, "EUR", rates, model.EUR))
	})

	t.Run("identity for empty origin", func(t *testing.T) {
		assert.Equal(t, "500,000", convertPrice(500_000, "", rates, model.GBP))
	})

	t.Run("identity for unsupported origin", func(t *testing.T) {
		assert.Equal(t, "500,000", convertPrice(500_000, "AUD", rates, model.GBP))
	})

	t.Run("identity on rate table miss", func(t *testing.T) {
		assert.Equal(t, "500,000", convertPrice(500_000, "USD", rates, model.GBP))
	})

	t.Run("identity on nil table", func(t *testing.T) {
		assert.Equal(t, "500,000", convertPrice(500_000, "EUR", nil, model.GBP))
	})
}

func TestPriceTitle(t *testing.T) {
	assert.Equal(t, "&euro;1,250,000", priceTitle(1_250_000, "EUR"))
	assert.Equal(t, "&pound;995,000", priceTitle(995_000, "GBP"))
	assert.Equal(t, "$450,000", priceTitle(450_000, "USD"))
	assert.Equal(t, "450,000", priceTitle(450_000, "AUD"))
}

func TestLengthConversions(t *testing.T) {
	require.Equal(t, float64(66), metresToFeet(20))
	require.Equal(t, float64(20), feetToMetres(66))
	require.Equal(t, float64(39), metresToFeet(12))
}

func TestCabinsLabel(t *testing.T) {
	assert.Equal(t, "", cabinsLabel(0, "en"))
	assert.Equal(t, "1 Cabin", cabinsLabel(1, "en"))
	assert.Equal(t, "3 Cabins", cabinsLabel(3, "en"))
	assert.Equal(t, "1 Cabina", cabinsLabel(1, "es"))
	assert.Equal(t, "3 Camarotes", cabinsLabel(3, "es"))
}

func TestPassengersLabel(t *testing.T) {
	assert.Equal(t, "", passengersLabel(0, "en"))
	assert.Equal(t, "1 Passenger", passengersLabel(1, "en"))
	assert.Equal(t, "8 Passengers", passengersLabel(8, "en"))
	assert.Equal(t, "1 Pasajero", passengersLabel(1, "es"))
	assert.Equal(t, "8 Pasajeros", passengersLabel(8, "es"))
}

func TestTaxStatusLabel(t *testing.T) {
	assert.Equal(t, "tax paid", taxStatusLabel("Paid"))
	assert.Equal(t, "tax not paid", taxStatusLabel("Not Paid"))
	assert.Equal(t, "", taxStatusLabel(""))
	assert.Equal(t, "", taxStatusLabel("Exempt"))
}

func TestMaxSpeedLabel(t *testing.T) {
	assert.Equal(t, "", maxSpeedLabel(""))
	assert.Equal(t, "30 knots", maxSpeedLabel("30|knots"))
	assert.Equal(t, "30 knots", maxSpeedLabel("30 knots"))
}
