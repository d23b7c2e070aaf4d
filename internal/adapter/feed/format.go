package feed

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"boatfeed/internal/domain/model"
)

// formatNumber rounds to the nearest integer and inserts thousands
// separators.
func formatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ""
	}
	v := int64(math.Round(n))

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// convertPrice formats price for the target currency. Identity formatting
// (no conversion) applies when the origin equals the target, is empty, or is
// outside the supported set; a rate-table miss also falls back to identity.
func convertPrice(price float64, origin string, rates *model.RateTable, to model.Currency) string {
	from, ok := model.ParseCurrency(origin)
	if !ok || from == to {
		return formatNumber(price)
	}
	rate, ok := rates.Rate(from, to)
	if !ok {
		return formatNumber(price)
	}
	return formatNumber(price * rate)
}

// priceTitle is the headline label: currency symbol plus formatted amount.
func priceTitle(price float64, origin string) string {
	symbol := ""
	if c, ok := model.ParseCurrency(origin); ok {
		symbol = c.Symbol()
	}
	return symbol + formatNumber(price)
}

const (
	metresToFeetFactor = 3.28084
	feetToMetresFactor = 0.3048000097536
)

func metresToFeet(m float64) float64 {
	return math.Round(m * metresToFeetFactor)
}

func feetToMetres(ft float64) float64 {
	return math.Round(ft * feetToMetresFactor)
}

func cabinsLabel(n int, lang string) string {
	if n == 0 {
		return ""
	}
	if n == 1 {
		if lang == "es" {
			return "1 Cabina"
		}
		return "1 Cabin"
	}
	if lang == "es" {
		return fmt.Sprintf("%d Camarotes", n)
	}
	return fmt.Sprintf("%d Cabins", n)
}

func passengersLabel(n int, lang string) string {
	if n == 0 {
		return ""
	}
	if n == 1 {
		if lang == "es" {
			return "1 Pasajero"
		}
		return "1 Passenger"
	}
	if lang == "es" {
		return fmt.Sprintf("%d Pasajeros", n)
	}
	return fmt.Sprintf("%d Passengers", n)
}

func taxStatusLabel(code string) string {
	switch code {
	case "Paid":
		return "tax paid"
	case "Not Paid":
		return "tax not paid"
	default:
		return ""
	}
}

// maxSpeedLabel turns a pipe-delimited speed value into a display string.
func maxSpeedLabel(value string) string {
	if value == "" {
		return ""
	}
	return strings.ReplaceAll(value, "|", " ")
}
