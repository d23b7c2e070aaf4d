package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"boatfeed/internal/concurrency/settle"
	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

// DatasetService owns the pipeline: concurrent rate acquisition and feed
// fetches, per-source normalization, identity merge, and the cache cell.
type DatasetService struct {
	boatsCom          port.FeedPort
	boatWizard        port.FeedPort
	rates             port.RatesPort
	cache             port.DatasetCachePort
	boatsComKey       string
	boatWizardEventID string
	log               *slog.Logger
}

func NewDatasetService(
	boatsCom, boatWizard port.FeedPort,
	rates port.RatesPort,
	cache port.DatasetCachePort,
	boatsComKey, boatWizardEventID string,
	log *slog.Logger,
) *DatasetService {
	return &DatasetService{
		boatsCom:          boatsCom,
		boatWizard:        boatWizard,
		rates:             rates,
		cache:             cache,
		boatsComKey:       boatsComKey,
		boatWizardEventID: boatWizardEventID,
		log:               log,
	}
}

// GetDataset returns the cached dataset, rebuilding when the cell is empty,
// expired, or force is set. A failed rebuild falls back to the previous
// dataset marked stale when one is still available.
//
// Concurrent cache misses may trigger redundant rebuilds; the last write
// wins. This is an accepted simplification, not a single-flight guarantee.
func (s *DatasetService) GetDataset(ctx context.Context, force bool) (*model.BaseDataset, error) {
	cached, fresh, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn("dataset cache read failed", "error", err)
		cached, fresh = nil, false
	}

	if !force && fresh && cached != nil {
		return cached, nil
	}

	built, buildErr := s.Build(ctx)
	if buildErr != nil {
		if cached != nil {
			s.log.Warn("dataset rebuild failed, serving previous dataset as stale", "error", buildErr)
			stale := *cached
			stale.Stale = true
			return &stale, nil
		}
		return nil, buildErr
	}

	if err := s.cache.Store(ctx, built); err != nil {
		s.log.Warn("dataset cache write failed", "error", err)
	}

	return built, nil
}

// Build runs one full pipeline pass. The three inputs are launched as
// independent tasks and joined with a settle-all barrier: a feed or rate
// failure degrades the result, it never fails the run. The only hard error
// is missing credentials, checked before any network call.
func (s *DatasetService) Build(ctx context.Context) (*model.BaseDataset, error) {
	if s.boatsComKey == "" {
		return nil, fmt.Errorf("%w: BOATSCOM_API_KEY", model.ErrMissingCredentials)
	}
	if s.boatWizardEventID == "" {
		return nil, fmt.Errorf("%w: BOATWIZARD_EVENT_ID", model.ErrMissingCredentials)
	}

	start := time.Now()

	ratesTask := settle.Go(ctx, func(ctx context.Context) (*model.RateTable, error) {
		return s.rates.AcquireRates(ctx), nil
	})
	boatsComTask := settle.Go(ctx, s.boatsCom.Fetch)
	boatWizardTask := settle.Go(ctx, s.boatWizard.Fetch)

	rateTable, _ := ratesTask.Wait()
	if rateTable.Len() == 0 {
		s.log.Warn("currency rates unavailable, prices served unconverted")
	}

	status := model.SourceStatus{
		BoatsCom:   model.SourceResult{OK: true},
		BoatWizard: model.SourceResult{OK: true},
	}

	cobrokerage := s.collect(s.boatsCom, boatsComTask, rateTable, &status.BoatsCom)
	ventura := s.collect(s.boatWizard, boatWizardTask, rateTable, &status.BoatWizard)

	merged := mergeListings(ventura, cobrokerage)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Price < merged[j].Price
	})

	s.log.Info("dataset built",
		"total", len(merged),
		"ventura", len(ventura),
		"cobrokerage", len(cobrokerage),
		"boatscom_ok", status.BoatsCom.OK,
		"boatwizard_ok", status.BoatWizard.OK,
		"duration", time.Since(start))

	return &model.BaseDataset{
		LastUpdated:  time.Now().UTC(),
		Stale:        false,
		SourceStatus: status,
		Data:         merged,
	}, nil
}

// collect settles one feed's fetch and normalizes its payload, recording a
// failure in the source status instead of propagating it.
func (s *DatasetService) collect(feed port.FeedPort, task *settle.Task[[]byte], rates *model.RateTable, result *model.SourceResult) []model.Listing {
	payload, err := task.Wait()
	if err != nil {
		s.log.Warn("feed fetch failed", "feed", feed.Name(), "error", err)
		*result = model.SourceResult{OK: false, Error: err.Error()}
		return nil
	}

	listings, err := feed.Normalize(payload, rates)
	if err != nil {
		s.log.Warn("feed payload unusable", "feed", feed.Name(), "error", err)
		*result = model.SourceResult{OK: false, Error: err.Error()}
		return nil
	}
	return listings
}

// mergeListings deduplicates across feeds by boat_id. Ventura listings seed
// the index and win on collision; cobrokerage fills the gaps.
func mergeListings(ventura, cobrokerage []model.Listing) []model.Listing {
	merged := make([]model.Listing, 0, len(ventura)+len(cobrokerage))
	index := make(map[string]int, len(ventura)+len(cobrokerage))

	for _, l := range ventura {
		if i, seen := index[l.BoatID]; seen {
			merged[i] = l
			continue
		}
		index[l.BoatID] = len(merged)
		merged = append(merged, l)
	}
	for _, l := range cobrokerage {
		if _, seen := index[l.BoatID]; seen {
			continue
		}
		index[l.BoatID] = len(merged)
		merged = append(merged, l)
	}

	return merged
}
