package catalog

import (
	"strings"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
)

// Hierarchy is the region option tree derived from the catalog: every
// province that occurs in the data and, under each, the districts that
// co-occur with it. Built once per load and cached; used both to populate
// cascading dropdowns and to validate filter criteria.
type Hierarchy struct {
	provinces []string
	// display names keyed by lowercase province
	provinceByLower map[string]string
	// sorted district names keyed by lowercase province
	districts map[string][]string
}

func buildHierarchy(records []*entities.InstitutionRecord) *Hierarchy {
	h := &Hierarchy{
		provinceByLower: make(map[string]string),
		districts:       make(map[string][]string),
	}

	districtSets := make(map[string]map[string]string)
	for _, record := range records {
		if record.Province == "" {
			continue
		}
		provinceKey := strings.ToLower(record.Province)
		if _, seen := h.provinceByLower[provinceKey]; !seen {
			h.provinceByLower[provinceKey] = record.Province
			districtSets[provinceKey] = make(map[string]string)
		}
		if record.District != "" {
			districtSets[provinceKey][strings.ToLower(record.District)] = record.District
		}
	}

	h.provinces = sortedValues(h.provinceByLower)
	for provinceKey, set := range districtSets {
		h.districts[provinceKey] = sortedValues(set)
	}
	return h
}

// Provinces returns all province names, locale-aware sorted
func (h *Hierarchy) Provinces() []string {
	return h.provinces
}

// Districts returns the district names that co-occur with the given
// province, locale-aware sorted. Unknown provinces yield an empty slice.
func (h *Hierarchy) Districts(province string) []string {
	return h.districts[strings.ToLower(province)]
}

// HasProvince reports whether the province occurs in the catalog
func (h *Hierarchy) HasProvince(province string) bool {
	_, ok := h.provinceByLower[strings.ToLower(province)]
	return ok
}

// IsValidDistrict reports whether the district co-occurs with the province
func (h *Hierarchy) IsValidDistrict(province, district string) bool {
	want := strings.ToLower(district)
	for _, d := range h.districts[strings.ToLower(province)] {
		if strings.ToLower(d) == want {
			return true
		}
	}
	return false
}
