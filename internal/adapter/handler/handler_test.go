package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"boatfeed/internal/application/service"
	"boatfeed/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFeed struct {
	name     string
	listings []model.Listing
	fetchErr error
	fetches  atomic.Int32
}

func (f *fakeFeed) Name() string { return f.name }

func (f *fakeFeed) Fetch(_ context.Context) ([]byte, error) {
	f.fetches.Add(1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []byte("payload"), nil
}

func (f *fakeFeed) Normalize(_ []byte, _ *model.RateTable) ([]model.Listing, error) {
	return f.listings, nil
}

type fakeRates struct{}

func (fakeRates) AcquireRates(_ context.Context) *model.RateTable { return nil }

type fakeCache struct {
	ds      *model.BaseDataset
	fresh   bool
	pingErr error
}

func (f *fakeCache) Load(_ context.Context) (*model.BaseDataset, bool, error) {
	return f.ds, f.fresh, nil
}

func (f *fakeCache) Store(_ context.Context, ds *model.BaseDataset) error {
	f.ds = ds
	f.fresh = true
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeCache) Close() error                 { return nil }

type fakeRawFetcher struct {
	status      int
	contentType string
	body        []byte
	err         error
}

func (f *fakeRawFetcher) FetchRaw(_ context.Context) (int, string, []byte, error) {
	return f.status, f.contentType, f.body, f.err
}

// serviceWithDataset wires a DatasetService whose cache already holds ds.
func serviceWithDataset(ds *model.BaseDataset) *service.DatasetService {
	cache := &fakeCache{ds: ds, fresh: ds != nil}
	return service.NewDatasetService(
		&fakeFeed{name: "boatscom"},
		&fakeFeed{name: "boatwizard"},
		fakeRates{},
		cache,
		"key", "event",
		testLogger(),
	)
}

// brokenService fails every rebuild and has nothing cached to fall back on.
func brokenService() *service.DatasetService {
	return service.NewDatasetService(
		&fakeFeed{name: "boatscom"},
		&fakeFeed{name: "boatwizard"},
		fakeRates{},
		&fakeCache{},
		"", "",
		testLogger(),
	)
}

func sampleDataset() *model.BaseDataset {
	return &model.BaseDataset{
		LastUpdated: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SourceStatus: model.SourceStatus{
			BoatsCom:   model.SourceResult{OK: true},
			BoatWizard: model.SourceResult{OK: true},
		},
		Data: []model.Listing{
			{BoatID: "bw-100", Make: "Ventura", Model: "V55", Price: 850_000, Feed: model.FeedVentura},
			{BoatID: "yw-1", YachtWorldID: "yw-1", Make: "Beneteau", Model: "Oceanis 46.1", Price: 450_000, Feed: model.FeedCobrokerage},
		},
	}
}

var errUpstream = errors.New("upstream unreachable")
