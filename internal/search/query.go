// Package search evaluates filter criteria against a catalog snapshot and
// computes tiered autocomplete suggestions. All evaluation is synchronous and
// side-effect-free: identical inputs always produce identical ordered output.
package search

import (
	"sort"
	"strings"

	"github.com/kurumrehberi/institution-directory/backend/internal/catalog"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/geo"
)

// Hit is one matched record, with the computed distance when the query
// carried an origin-radius constraint
type Hit struct {
	Record     *entities.InstitutionRecord `json:"record"`
	DistanceKm *float64                    `json:"distance_km,omitempty"`
}

// Result is an ordered page of hits plus the pre-pagination match count
type Result struct {
	Items      []Hit `json:"items"`
	TotalCount int   `json:"total_count"`
}

// Engine evaluates criteria and suggestion requests against a catalog.
// It holds no mutable state; one engine serves any number of catalogs.
type Engine struct{}

// NewEngine creates a query engine
func NewEngine() *Engine {
	return &Engine{}
}

// Query narrows the catalog through the text, categorical, geo, sort and
// pagination stages in that order. The result set is always a subset of
// catalog.All(), and an out-of-range page yields empty items with the
// correct total count.
func (e *Engine) Query(c *catalog.Catalog, crit *Criteria) *Result {
	hits := make([]Hit, 0, c.Len())
	for _, record := range c.All() {
		entry := c.IndexOf(record.ID)
		if !matchesText(entry, crit.Terms) {
			continue
		}
		if !matchesCategorical(entry, crit) {
			continue
		}
		hit, ok := matchesGeo(record, crit)
		if !ok {
			continue
		}
		hits = append(hits, hit)
	}

	e.sortHits(hits, crit)

	total := len(hits)
	start := (crit.Page - 1) * crit.PageSize
	if start > total {
		start = total
	}
	end := start + crit.PageSize
	if end > total {
		end = total
	}

	return &Result{Items: hits[start:end], TotalCount: total}
}

// matchesText requires every search term to occur as a substring of the
// record's token text (logical AND)
func matchesText(entry *catalog.IndexEntry, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(entry.TokenText, term) {
			return false
		}
	}
	return true
}

func matchesCategorical(entry *catalog.IndexEntry, crit *Criteria) bool {
	if crit.Province != "" && entry.ProvinceLower != strings.ToLower(crit.Province) {
		return false
	}
	if crit.District != "" && entry.DistrictLower != strings.ToLower(crit.District) {
		return false
	}
	if len(crit.Types) > 0 {
		found := false
		for _, t := range crit.Types {
			if entry.TypeLower == strings.ToLower(t) {
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

// matchesGeo applies the active geo constraint. Records without coordinates
// never match a geo-constrained query.
func matchesGeo(record *entities.InstitutionRecord, crit *Criteria) (Hit, bool) {
	hit := Hit{Record: record}
	if !crit.HasGeo() {
		return hit, true
	}
	if !record.HasLocation() {
		return hit, false
	}

	if crit.BoundingBox != nil {
		return hit, geo.WithinBoundingBox(*record.Location, *crit.BoundingBox)
	}

	distance := geo.HaversineDistanceKm(*record.Location, crit.OriginRadius.Origin)
	if distance > crit.OriginRadius.RadiusKm {
		return hit, false
	}
	hit.DistanceKm = &distance
	return hit, true
}

func (e *Engine) sortHits(hits []Hit, crit *Criteria) {
	sortBy := crit.SortBy
	if sortBy == "" {
		if crit.OriginRadius != nil {
			// proximity wins unless the caller asked for something else
			sortBy = SortByDistance
		} else {
			sortBy = SortByName
		}
	}

	desc := crit.SortOrder == SortDesc

	// an unhandled sort field leaves less nil and panics below; Normalize
	// rejects unknown fields before they reach this point
	var less func(i, j int) bool
	switch sortBy {
	case SortByDistance:
		less = func(i, j int) bool {
			return *hits[i].DistanceKm < *hits[j].DistanceKm
		}
	case SortByName, SortByProvince, SortByType:
		key := func(h Hit) string {
			switch sortBy {
			case SortByProvince:
				return h.Record.Province
			case SortByType:
				return h.Record.Type
			default:
				return h.Record.Name
			}
		}
		less = func(i, j int) bool {
			return catalog.CompareLocale(key(hits[i]), key(hits[j])) < 0
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
