package service

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"boatfeed/internal/domain/model"
)

// QueryService applies filter, sort, and pagination over a dataset snapshot.
// Every operation is a pure read; the snapshot is never mutated.
type QueryService struct {
	perPage int
}

func NewQueryService(perPage int) *QueryService {
	if perPage <= 0 {
		perPage = 10
	}
	return &QueryService{perPage: perPage}
}

var sanitizer = strings.NewReplacer(`\`, "", "'", "")

// sanitize strips backslashes and apostrophes from free-text filter input.
func sanitize(s string) string {
	return sanitizer.Replace(s)
}

func queryParam(params url.Values, key string) string {
	return strings.TrimSpace(sanitize(params.Get(key)))
}

// Apply resolves query parameters with their defaults and produces the
// request-scoped result. Price bounds arrive in millions and are applied to
// the active price column; all numeric comparisons treat missing values as 0.
func (s *QueryService) Apply(ds *model.BaseDataset, params url.Values) *model.QueryResult {
	currency := queryParam(params, "currencyVal")
	if currency == "" {
		currency = "EUR"
	}
	measurement := queryParam(params, "measurementVal")
	if measurement == "" {
		measurement = "Metres"
	}
	sortBy := queryParam(params, "sortby")
	if sortBy == "" {
		sortBy = "low"
	}

	pageParam := params.Get("pagenum")
	if pageParam == "" {
		pageParam = params.Get("page")
	}
	pageNum := 1
	if n, err := strconv.Atoi(strings.TrimSpace(pageParam)); err == nil && n > 1 {
		pageNum = n
	}

	// GBP is the fallback column for unrecognized currency values.
	priceOf := func(l model.Listing) float64 { return parseFormattedNumber(l.PriceGBP) }
	switch currency {
	case "EUR":
		priceOf = func(l model.Listing) float64 { return parseFormattedNumber(l.PriceEUR) }
	case "USD":
		priceOf = func(l model.Listing) float64 { return parseFormattedNumber(l.PriceUSD) }
	}

	lengthOf := func(l model.Listing) float64 { return l.LengthMetre }
	if measurement == "Feet" {
		lengthOf = func(l model.Listing) float64 { return l.LengthFeet }
	}

	rows := make([]model.Listing, len(ds.Data))
	copy(rows, ds.Data)

	if brands := queryParam(params, "brands"); brands != "" {
		rows = filter(rows, func(l model.Listing) bool { return l.Make == brands })
	}

	if v, ok := numericParam(params, "pricefrom"); ok {
		bound := v * 1_000_000
		rows = filter(rows, func(l model.Listing) bool { return priceOf(l) >= bound })
	}
	if v, ok := numericParam(params, "priceto"); ok {
		bound := v * 1_000_000
		rows = filter(rows, func(l model.Listing) bool { return priceOf(l) < bound })
	}

	if v, ok := numericParam(params, "lengthfrom"); ok {
		bound := v
		rows = filter(rows, func(l model.Listing) bool { return lengthOf(l) >= bound })
	}
	if v, ok := numericParam(params, "lengthto"); ok {
		bound := v
		rows = filter(rows, func(l model.Listing) bool { return lengthOf(l) <= bound })
	}

	if v, ok := numericParam(params, "yearfrom"); ok {
		bound := v
		rows = filter(rows, func(l model.Listing) bool { return float64(l.Year) >= bound })
	}
	if v, ok := numericParam(params, "yearto"); ok {
		bound := v
		rows = filter(rows, func(l model.Listing) bool { return float64(l.Year) <= bound })
	}

	if v, ok := numericParam(params, "mincabins"); ok {
		bound := v
		rows = filter(rows, func(l model.Listing) bool { return float64(l.CabinsCount) >= bound })
	}

	if keywords := queryParam(params, "keywordsearch"); keywords != "" {
		searchWords := strings.Fields(strings.ToLower(keywords))
		rows = filter(rows, func(l model.Listing) bool {
			return matchesAllWords(l, searchWords)
		})
	}

	switch sortBy {
	case "high":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Price > rows[j].Price })
	case "lengthshort":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].LengthMetre < rows[j].LengthMetre })
	case "lengthlong":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].LengthMetre > rows[j].LengthMetre })
	default:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Price < rows[j].Price })
	}

	total := len(rows)
	lastPage := int(math.Ceil(float64(total) / float64(s.perPage)))
	if lastPage < 1 {
		lastPage = 1
	}
	nextPage := pageNum
	if pageNum < lastPage {
		nextPage = pageNum + 1
	} else {
		nextPage = lastPage
	}
	prevPage := 1
	if pageNum > 1 {
		prevPage = pageNum - 1
	}

	offset := (pageNum - 1) * s.perPage
	if offset > total {
		offset = total
	}
	end := offset + s.perPage
	if end > total {
		end = total
	}
	paged := rows[offset:end]

	return &model.QueryResult{
		Meta: model.QueryMeta{
			PageNum:      pageNum,
			PerPage:      s.perPage,
			Total:        total,
			LastPage:     lastPage,
			NextPage:     nextPage,
			PrevPage:     prevPage,
			SortBy:       sortBy,
			Currency:     currency,
			Measurement:  measurement,
			LastUpdated:  ds.LastUpdated,
			Stale:        ds.Stale,
			SourceStatus: ds.SourceStatus,
		},
		Data: paged,
	}
}

// NormalizeDetailID cleans a detail-lookup id: trailing slashes are
// stripped, and a "prefix:id" form is reduced to its last segment.
func NormalizeDetailID(id string) string {
	target := strings.TrimRight(strings.TrimSpace(id), "/")
	if i := strings.LastIndex(target, ":"); i >= 0 {
		target = target[i+1:]
	}
	return target
}

// FindByID looks a listing up by boat_id or yachtworld_id.
func (s *QueryService) FindByID(ds *model.BaseDataset, id string) (model.Listing, bool) {
	target := NormalizeDetailID(id)
	if target == "" {
		return model.Listing{}, false
	}

	for _, l := range ds.Data {
		if l.BoatID == target || (l.YachtWorldID != "" && l.YachtWorldID == target) {
			return l, true
		}
	}
	return model.Listing{}, false
}

// Brands returns the distinct makes in the dataset, whitespace-normalized,
// case-insensitively deduplicated (first spelling wins) and sorted.
func (s *QueryService) Brands(ds *model.BaseDataset) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, l := range ds.Data {
		brand := strings.Join(strings.Fields(l.Make), " ")
		if brand == "" {
			continue
		}
		key := strings.ToLower(brand)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		brands = append(brands, brand)
	}

	sort.Slice(brands, func(i, j int) bool {
		return strings.ToLower(brands[i]) < strings.ToLower(brands[j])
	})
	return brands
}

// matchesAllWords reports whether every search token appears as a whole word
// in the listing's make and model. Word-boundary match, not substring.
func matchesAllWords(l model.Listing, searchWords []string) bool {
	makeModel := sanitize(strings.ToLower(l.Make + " " + l.Model))
	words := strings.Fields(makeModel)

	for _, token := range searchWords {
		found := false
		for _, w := range words {
			if w == token {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func filter(rows []model.Listing, keep func(model.Listing) bool) []model.Listing {
	out := rows[:0]
	for _, l := range rows {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// numericParam parses a sanitized numeric query value; non-numeric input
// disables the filter, matching the lenient upstream behavior.
func numericParam(params url.Values, key string) (float64, bool) {
	raw := queryParam(params, key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFormattedNumber reads a thousands-separated display string as a
// number, treating anything unparseable as 0.
func parseFormattedNumber(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
