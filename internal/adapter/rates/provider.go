// Package rates resolves the currency conversion table. Acquisition never
// fails the pipeline: any problem yields a nil table and prices fall back to
// unconverted formatting.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

var _ port.RatesPort = (*Provider)(nil)

// Hard ceiling on rate acquisition; a slow rate service must not stall the
// whole pipeline build.
const maxRatesTimeout = 6 * time.Second

const currConvPairs = "EUR_GBP,GBP_EUR,USD_GBP,GBP_USD,USD_EUR,EUR_USD"

// Provider fetches rates from a configured exchange-rate service, falling
// back to the conversion API.
type Provider struct {
	http        *http.Client
	fxRatesURL  string
	currConvKey string
	timeout     time.Duration
	log         *slog.Logger
}

func New(fxRatesURL, currConvKey string, fetchTimeout time.Duration, log *slog.Logger) *Provider {
	timeout := fetchTimeout
	if timeout <= 0 || timeout > maxRatesTimeout {
		timeout = maxRatesTimeout
	}
	return &Provider{
		http:        &http.Client{},
		fxRatesURL:  fxRatesURL,
		currConvKey: currConvKey,
		timeout:     timeout,
		log:         log,
	}
}

// AcquireRates resolves the rate table. Returns nil on any failure.
func (p *Provider) AcquireRates(ctx context.Context) *model.RateTable {
	if p.fxRatesURL != "" {
		payload, err := p.fetch(ctx, p.fxRatesURL)
		if err != nil {
			p.log.Warn("rate service fetch failed", "error", err)
			return nil
		}
		if table := parseRatesPayload(payload); table.Len() > 0 {
			return table
		}
		p.log.Warn("rate service returned no usable rates, trying conversion API")
	}

	if p.currConvKey == "" {
		return nil
	}

	u := fmt.Sprintf("https://api.currconv.com/api/v7/convert?q=%s&compact=y&apiKey=%s",
		currConvPairs, url.QueryEscape(p.currConvKey))
	payload, err := p.fetch(ctx, u)
	if err != nil {
		p.log.Warn("conversion API fetch failed", "error", err)
		return nil
	}

	table := parseFlatRates(payload)
	if table.Len() == 0 {
		return nil
	}
	return table
}

func (p *Provider) fetch(ctx context.Context, u string) (map[string]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch failed %d for %s", res.StatusCode, u)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode rates payload: %w", err)
	}
	return payload, nil
}

// parseRatesPayload handles both accepted shapes: {base, rates} and a flat
// "{FROM}_{TO}" map.
func parseRatesPayload(payload map[string]json.RawMessage) *model.RateTable {
	if _, hasBase := payload["base"]; hasBase {
		if _, hasRates := payload["rates"]; hasRates {
			return parseBaseRates(payload)
		}
	}
	return parseFlatRates(payload)
}

// parseBaseRates derives every supported pair from a {base, rates} document:
// rate(from→to) = rate(to)/rate(from), with the base currency's own rate
// defined as 1.
func parseBaseRates(payload map[string]json.RawMessage) *model.RateTable {
	var base string
	if err := json.Unmarshal(payload["base"], &base); err != nil {
		return model.NewRateTable()
	}
	base = strings.ToUpper(base)

	var rawRates map[string]json.RawMessage
	if err := json.Unmarshal(payload["rates"], &rawRates); err != nil {
		return model.NewRateTable()
	}

	currencyRate := func(c model.Currency) (float64, bool) {
		if c.String() == base {
			return 1, true
		}
		return coerceNumber(rawRates[c.String()])
	}

	table := model.NewRateTable()
	for _, from := range model.Currencies {
		for _, to := range model.Currencies {
			if from == to {
				continue
			}
			rateFrom, okFrom := currencyRate(from)
			rateTo, okTo := currencyRate(to)
			if !okFrom || !okTo || rateFrom == 0 {
				continue
			}
			table.Set(from, to, rateTo/rateFrom)
		}
	}
	return table
}

// parseFlatRates reads "{FROM}_{TO}" keys whose values are numbers or
// objects carrying a "val" field.
func parseFlatRates(payload map[string]json.RawMessage) *model.RateTable {
	table := model.NewRateTable()
	for key, raw := range payload {
		fromCode, toCode, found := strings.Cut(key, "_")
		if !found {
			continue
		}
		from, okFrom := model.ParseCurrency(fromCode)
		to, okTo := model.ParseCurrency(toCode)
		if !okFrom || !okTo || from == to {
			continue
		}

		value, ok := coerceNumber(raw)
		if !ok {
			var wrapped struct {
				Val json.RawMessage `json:"val"`
			}
			if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Val == nil {
				continue
			}
			value, ok = coerceNumber(wrapped.Val)
			if !ok {
				continue
			}
		}
		table.Set(from, to, value)
	}
	return table
}

// coerceNumber accepts a JSON number or numeric string.
func coerceNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return 0, false
		}
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
