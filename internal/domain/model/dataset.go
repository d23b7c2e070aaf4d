package model

import (
	"errors"
	"time"
)

// ErrMissingCredentials marks the fatal configuration case: a pipeline run
// must not start without upstream API credentials.
var ErrMissingCredentials = errors.New("missing upstream credentials")

// SourceResult records one feed's outcome for a pipeline run.
type SourceResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// SourceStatus collects per-feed outcomes. A failed feed contributes zero
// listings but never fails the run.
type SourceStatus struct {
	BoatsCom   SourceResult `json:"boatscom"`
	BoatWizard SourceResult `json:"boatwizard"`
}

// BaseDataset is the merged dataset held by the cache. Data is sorted
// ascending by numeric price at construction and never mutated in place;
// a refresh replaces the whole value.
type BaseDataset struct {
	LastUpdated  time.Time    `json:"last_updated"`
	Stale        bool         `json:"stale"`
	SourceStatus SourceStatus `json:"source_status"`
	Data         []Listing    `json:"data"`
}

// Age reports how long ago the dataset was built.
func (d *BaseDataset) Age(now time.Time) time.Duration {
	return now.Sub(d.LastUpdated)
}

// QueryMeta describes the window and parameters a QueryResult was derived
// with, plus the staleness metadata of the underlying dataset.
type QueryMeta struct {
	PageNum      int          `json:"pagenum"`
	PerPage      int          `json:"per_page"`
	Total        int          `json:"total"`
	LastPage     int          `json:"lastpage"`
	NextPage     int          `json:"nextpage"`
	PrevPage     int          `json:"prevpage"`
	SortBy       string       `json:"sortby"`
	Currency     string       `json:"currencyVal"`
	Measurement  string       `json:"measurementVal"`
	LastUpdated  time.Time    `json:"last_updated"`
	Stale        bool         `json:"stale"`
	SourceStatus SourceStatus `json:"source_status"`
}

// QueryResult is the request-scoped filtered/sorted/paginated view over a
// dataset snapshot.
type QueryResult struct {
	Meta QueryMeta `json:"meta"`
	Data []Listing `json:"data"`
}
