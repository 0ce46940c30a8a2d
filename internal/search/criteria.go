package search

import (
	"strings"
	"time"

	"github.com/kurumrehberi/institution-directory/backend/internal/catalog"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/geo"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// Sort fields accepted by the query engine
const (
	SortByName     = "name"
	SortByProvince = "province"
	SortByType     = "type"
	SortByDistance = "distance"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	// DefaultPageSize applies when the caller does not specify one
	DefaultPageSize = 20
	// MaxPageSize caps caller-specified page sizes
	MaxPageSize = 100
	// DefaultDebounceInterval is the quiet period for criteria changes
	DefaultDebounceInterval = 300 * time.Millisecond
	// DefaultThrottleInterval is the minimum spacing of viewport evaluations
	DefaultThrottleInterval = 200 * time.Millisecond
)

// Tuning carries the operator-adjustable engine knobs. Zero fields fall
// back to the package defaults.
type Tuning struct {
	DefaultPageSize  int
	MaxPageSize      int
	DebounceInterval time.Duration
	ThrottleInterval time.Duration
}

// DefaultTuning returns the package defaults
func DefaultTuning() Tuning {
	return Tuning{
		DefaultPageSize:  DefaultPageSize,
		MaxPageSize:      MaxPageSize,
		DebounceInterval: DefaultDebounceInterval,
		ThrottleInterval: DefaultThrottleInterval,
	}
}

func (t Tuning) withDefaults() Tuning {
	if t.DefaultPageSize <= 0 {
		t.DefaultPageSize = DefaultPageSize
	}
	if t.MaxPageSize <= 0 {
		t.MaxPageSize = MaxPageSize
	}
	if t.DebounceInterval <= 0 {
		t.DebounceInterval = DefaultDebounceInterval
	}
	if t.ThrottleInterval <= 0 {
		t.ThrottleInterval = DefaultThrottleInterval
	}
	return t
}

// OriginRadius describes a "find near me" constraint
type OriginRadius struct {
	Origin   entities.Location `json:"origin"`
	RadiusKm float64           `json:"radius_km"`
}

// Input is the raw, untrusted description of what the user wants to see.
// It is translated into Criteria by Normalize; the query engine never
// sees an Input directly.
type Input struct {
	SearchText string
	Province   string
	District   string
	Types      []string

	BoundingBox  *geo.BoundingBox
	OriginRadius *OriginRadius
	// NearMe marks that the user asked for a radius query; when set without
	// a usable OriginRadius the normalizer signals geo unavailability
	NearMe bool

	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Criteria is the validated, normalized filter value object. A new value is
// created on every user change; criteria are never mutated in place.
type Criteria struct {
	// SearchText keeps the user's original casing for display/highlighting
	SearchText string
	// Terms are the lowercase whitespace-separated search terms
	Terms []string

	Province string
	District string
	Types    []string

	BoundingBox  *geo.BoundingBox
	OriginRadius *OriginRadius

	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// HasGeo reports whether any geospatial constraint is active
func (c *Criteria) HasGeo() bool {
	return c.BoundingBox != nil || c.OriginRadius != nil
}

// WithoutGeo returns a copy of the criteria with geo constraints removed,
// the fallback applied when the origin point is unavailable
func (c *Criteria) WithoutGeo() *Criteria {
	clone := *c
	clone.BoundingBox = nil
	clone.OriginRadius = nil
	return &clone
}

// Normalize validates raw input against the catalog's location hierarchy and
// produces criteria the query engine can trust. prev is the previously active
// criteria, if any; whenever any non-page field changes against prev the page
// resets to 1.
func Normalize(in Input, prev *Criteria, hier *catalog.Hierarchy) (*Criteria, error) {
	return NormalizeTuned(in, prev, hier, DefaultTuning())
}

// NormalizeTuned is Normalize with explicit pagination tuning
func NormalizeTuned(in Input, prev *Criteria, hier *catalog.Hierarchy, tune Tuning) (*Criteria, error) {
	tune = tune.withDefaults()
	c := &Criteria{
		SearchText: strings.TrimSpace(in.SearchText),
		Province:   strings.TrimSpace(in.Province),
		District:   strings.TrimSpace(in.District),
		SortBy:     strings.ToLower(strings.TrimSpace(in.SortBy)),
		SortOrder:  strings.ToLower(strings.TrimSpace(in.SortOrder)),
		Page:       in.Page,
		PageSize:   in.PageSize,
	}
	c.Terms = strings.Fields(strings.ToLower(c.SearchText))

	for _, t := range in.Types {
		if t = strings.TrimSpace(t); t != "" {
			c.Types = append(c.Types, t)
		}
	}

	// district is a cascading filter: it has no meaning without a province
	if c.District != "" && c.Province == "" {
		return nil, apperrors.NewInvalidFilterError("district requires a province")
	}
	if c.District != "" && !hier.IsValidDistrict(c.Province, c.District) {
		// stale selection from a previous province; drop it
		c.District = ""
	}

	if in.BoundingBox != nil && in.OriginRadius != nil {
		return nil, apperrors.NewInvalidFilterError("bounding box and origin radius are mutually exclusive")
	}
	if in.BoundingBox != nil {
		if !in.BoundingBox.Valid() {
			return nil, apperrors.NewInvalidFilterError("bounding box extent is empty")
		}
		box := *in.BoundingBox
		c.BoundingBox = &box
	}
	if in.OriginRadius != nil {
		if in.OriginRadius.RadiusKm <= 0 {
			return nil, apperrors.NewInvalidFilterError("radius must be positive")
		}
		or := *in.OriginRadius
		c.OriginRadius = &or
	}
	if in.NearMe && c.OriginRadius == nil {
		return nil, apperrors.NewGeoUnavailableError("origin point unavailable for radius query")
	}

	switch c.SortBy {
	case "", SortByName, SortByProvince, SortByType:
	case SortByDistance:
		if c.OriginRadius == nil {
			return nil, apperrors.NewInvalidFilterError("distance sort requires an origin radius")
		}
	default:
		return nil, apperrors.NewInvalidFilterError("unknown sort field " + c.SortBy)
	}

	switch c.SortOrder {
	case "":
		c.SortOrder = SortAsc
	case SortAsc, SortDesc:
	default:
		return nil, apperrors.NewInvalidFilterError("unknown sort order " + c.SortOrder)
	}

	if c.PageSize <= 0 {
		c.PageSize = tune.DefaultPageSize
	}
	if c.PageSize > tune.MaxPageSize {
		c.PageSize = tune.MaxPageSize
	}
	if c.Page < 1 {
		c.Page = 1
	}
	if prev != nil && !sameFilters(prev, c) {
		c.Page = 1
	}

	return c, nil
}

// sameFilters compares everything except the page number
func sameFilters(a, b *Criteria) bool {
	if a.SearchText != b.SearchText || a.Province != b.Province || a.District != b.District {
		return false
	}
	if len(a.Types) != len(b.Types) {
		return false
	}
	for i := range a.Types {
		if a.Types[i] != b.Types[i] {
			return false
		}
	}
	if (a.BoundingBox == nil) != (b.BoundingBox == nil) ||
		(a.BoundingBox != nil && *a.BoundingBox != *b.BoundingBox) {
		return false
	}
	if (a.OriginRadius == nil) != (b.OriginRadius == nil) ||
		(a.OriginRadius != nil && *a.OriginRadius != *b.OriginRadius) {
		return false
	}
	return a.SortBy == b.SortBy && a.SortOrder == b.SortOrder && a.PageSize == b.PageSize
}
