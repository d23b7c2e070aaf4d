package model

import (
	"math"
	"strings"
)

// Currency enumerates the currencies the conversion pipeline supports.
type Currency uint8

const (
	GBP Currency = iota
	EUR
	USD
	numCurrencies
)

// Currencies lists every supported currency in display order.
var Currencies = [...]Currency{GBP, EUR, USD}

func (c Currency) String() string {
	switch c {
	case GBP:
		return "GBP"
	case EUR:
		return "EUR"
	case USD:
		return "USD"
	}
	return ""
}

// Symbol returns the display prefix for a currency. GBP and EUR use HTML
// entities to match the consuming front end.
func (c Currency) Symbol() string {
	switch c {
	case GBP:
		return "&pound;"
	case EUR:
		return "&euro;"
	case USD:
		return "$"
	}
	return ""
}

// ParseCurrency maps a currency code to its enum value. The second return
// is false for empty or unsupported codes.
func ParseCurrency(code string) (Currency, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "GBP":
		return GBP, true
	case "EUR":
		return EUR, true
	case "USD":
		return USD, true
	}
	return 0, false
}

// RateTable holds multiplicative conversion rates as a fixed matrix indexed
// by currency pair. A nil *RateTable behaves as an empty table: every lookup
// misses and callers fall back to unconverted formatting.
type RateTable struct {
	rates [numCurrencies][numCurrencies]float64
	set   [numCurrencies][numCurrencies]bool
}

// NewRateTable returns an empty table.
func NewRateTable() *RateTable {
	return &RateTable{}
}

// Set records the rate for converting from one currency to another. Rates
// that are not finite are ignored.
func (t *RateTable) Set(from, to Currency, rate float64) {
	if t == nil || from == to {
		return
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return
	}
	t.rates[from][to] = rate
	t.set[from][to] = true
}

// Rate returns the conversion rate for a pair, or false on a lookup miss.
func (t *RateTable) Rate(from, to Currency) (float64, bool) {
	if t == nil || !t.set[from][to] {
		return 0, false
	}
	return t.rates[from][to], true
}

// Len reports how many pairs carry a rate.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, from := range Currencies {
		for _, to := range Currencies {
			if t.set[from][to] {
				n++
			}
		}
	}
	return n
}
