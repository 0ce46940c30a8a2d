// Package services wires the catalog, query engine and persistence adapters
// into the operations the transport layer exposes.
package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kurumrehberi/institution-directory/backend/internal/catalog"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/observability"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DirectoryService owns the active catalog snapshot and evaluates queries
// and suggestion requests against it. The catalog is only ever replaced
// wholesale by LoadCatalog; everything else reads an immutable snapshot, so
// no locking is needed on the query path.
type DirectoryService struct {
	source    repositories.CatalogSource
	engine    *search.Engine
	analytics repositories.SearchAnalyticsRepository
	metrics   *observability.Metrics
	tuning    search.Tuning

	active atomic.Pointer[catalog.Catalog]
}

// NewDirectoryService creates a directory service. analytics may be nil.
func NewDirectoryService(source repositories.CatalogSource, analytics repositories.SearchAnalyticsRepository) *DirectoryService {
	return &DirectoryService{
		source:    source,
		engine:    search.NewEngine(),
		analytics: analytics,
		tuning:    search.DefaultTuning(),
	}
}

// SetMetrics attaches instrumentation. Safe to leave unset.
func (s *DirectoryService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// SetTuning overrides the engine knobs (page sizes, session intervals).
// Zero fields keep their defaults. Call before serving traffic.
func (s *DirectoryService) SetTuning(tuning search.Tuning) {
	s.tuning = tuning
}

// LoadCatalog fetches the raw records and swaps in a fresh catalog.
// On failure the previously active catalog, if any, stays in place.
func (s *DirectoryService) LoadCatalog(ctx context.Context) error {
	records, err := s.source.FetchRecords(ctx)
	if err != nil {
		return err
	}

	c, err := catalog.Load(records)
	if err != nil {
		return err
	}

	s.active.Store(c)
	observability.RecordCatalogSize(ctx, s.metrics, c.Len())
	log.Info().Int("records", c.Len()).Msg("catalog loaded")
	return nil
}

// Ready reports whether a catalog has been loaded
func (s *DirectoryService) Ready() bool {
	return s.active.Load() != nil
}

// Catalog returns the active catalog snapshot, or an unavailable error when
// no load has completed yet. Callers must never be answered against an
// empty catalog before the first load.
func (s *DirectoryService) Catalog() (*catalog.Catalog, error) {
	c := s.active.Load()
	if c == nil {
		return nil, apperrors.NewUnavailableError("catalog not loaded yet")
	}
	return c, nil
}

// Query normalizes the input against the active catalog and evaluates it.
// When the origin point for a radius query is unavailable the search falls
// back to the same criteria without the geo constraint rather than failing.
// It returns the criteria actually evaluated so the caller can thread them
// back in as prev on the next change.
func (s *DirectoryService) Query(ctx context.Context, in search.Input, prev *search.Criteria) (*search.Result, *search.Criteria, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, nil, err
	}

	crit, err := search.NormalizeTuned(in, prev, c.Hierarchy(), s.tuning)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeGeoUnavailable) {
			return nil, nil, err
		}
		log.Warn().Msg("origin point unavailable, falling back to non-geo query")
		in.NearMe = false
		in.OriginRadius = nil
		if crit, err = search.NormalizeTuned(in, prev, c.Hierarchy(), s.tuning); err != nil {
			return nil, nil, err
		}
	}

	started := time.Now()
	result := s.engine.Query(c, crit)
	elapsed := time.Since(started)

	observability.RecordQueryMetric(ctx, s.metrics, geoModeOf(crit), result.TotalCount, elapsed)
	s.logSearchEvent(ctx, crit, result, elapsed)

	return result, crit, nil
}

// Suggest evaluates a suggestion request against the active catalog
func (s *DirectoryService) Suggest(ctx context.Context, recentEntries []string, req search.SuggestionRequest) (search.Suggestions, error) {
	c, err := s.Catalog()
	if err != nil {
		return search.Suggestions{}, err
	}

	started := time.Now()
	suggestions := s.engine.Suggest(c, recentEntries, req)
	observability.RecordSuggestMetric(ctx, s.metrics, time.Since(started))
	return suggestions, nil
}

// GetInstitution returns a single record by id
func (s *DirectoryService) GetInstitution(id string) (*entities.InstitutionRecord, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.GetByID(id)
}

// Provinces returns the derived province option list
func (s *DirectoryService) Provinces() ([]string, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.Hierarchy().Provinces(), nil
}

// Districts returns the districts that co-occur with the province
func (s *DirectoryService) Districts(province string) ([]string, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.Hierarchy().Districts(province), nil
}

// Types returns the distinct institution types
func (s *DirectoryService) Types() ([]string, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.Types(), nil
}

func (s *DirectoryService) logSearchEvent(ctx context.Context, crit *search.Criteria, result *search.Result, latency time.Duration) {
	if s.analytics == nil {
		return
	}

	event := &entities.SearchEvent{
		Query:           crit.SearchText,
		NormalizedQuery: strings.Join(crit.Terms, " "),
		Province:        crit.Province,
		District:        crit.District,
		GeoMode:         geoModeOf(crit),
		ResultCount:     result.TotalCount,
		LatencyMs:       float64(latency.Microseconds()) / 1000.0,
	}

	if err := s.analytics.LogEvent(ctx, event); err != nil {
		// analytics never fails a search
		log.Warn().Err(err).Msg("failed to log search event")
	}
}

func geoModeOf(crit *search.Criteria) string {
	switch {
	case crit.BoundingBox != nil:
		return "bounding_box"
	case crit.OriginRadius != nil:
		return "origin_radius"
	default:
		return ""
	}
}
