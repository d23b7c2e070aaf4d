package port

import (
	"context"

	"boatfeed/internal/domain/model"
)

// FeedPort is one upstream listings feed. Fetch retrieves the raw payload
// under the feed's own timeout; Normalize maps it into canonical listings,
// dropping records without a resolvable identity or price.
type FeedPort interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
	Normalize(payload []byte, rates *model.RateTable) ([]model.Listing, error)
}

// RawFetcher exposes an upstream response verbatim for the passthrough
// endpoints. Non-2xx responses are returned, not treated as errors.
type RawFetcher interface {
	FetchRaw(ctx context.Context) (status int, contentType string, body []byte, err error)
}

// RatesPort resolves a currency rate table. It never fails: any acquisition
// problem yields a nil table, which downstream treats as empty.
type RatesPort interface {
	AcquireRates(ctx context.Context) *model.RateTable
}

// DatasetCachePort holds the single most recent dataset. Load returns the
// stored dataset and whether it is still fresh; a backend with native expiry
// may be unable to return expired data at all (nil, false). Store replaces
// the cell wholesale.
type DatasetCachePort interface {
	Load(ctx context.Context) (ds *model.BaseDataset, fresh bool, err error)
	Store(ctx context.Context, ds *model.BaseDataset) error
	Ping(ctx context.Context) error
	Close() error
}
