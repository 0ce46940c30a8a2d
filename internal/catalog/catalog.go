// Package catalog holds the immutable-per-load institution set together with
// its derived search index and location hierarchy. A catalog is never mutated
// after Load; a fresh source fetch produces a replacement catalog instead.
package catalog

import (
	"fmt"
	"strings"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// IndexEntry holds the derived lowercase search strings for one record
type IndexEntry struct {
	// TokenText concatenates name, type, province, district and address,
	// lowercased, for the free-text stage
	TokenText string

	NameLower     string
	TypeLower     string
	ProvinceLower string
	DistrictLower string
}

// Catalog is the in-memory record set plus derived indices
type Catalog struct {
	records   []*entities.InstitutionRecord
	byID      map[string]*entities.InstitutionRecord
	index     map[string]*IndexEntry
	hierarchy *Hierarchy
	types     []string
}

// Load builds a catalog from raw records in one pass. Records keep their
// load order. Empty or duplicate ids fail the whole load.
func Load(records []*entities.InstitutionRecord) (*Catalog, error) {
	c := &Catalog{
		records: make([]*entities.InstitutionRecord, 0, len(records)),
		byID:    make(map[string]*entities.InstitutionRecord, len(records)),
		index:   make(map[string]*IndexEntry, len(records)),
	}

	typeSet := make(map[string]string)
	for i, record := range records {
		if record == nil {
			return nil, apperrors.NewCatalogLoadError(fmt.Sprintf("record %d is nil", i), nil)
		}
		if record.ID == "" {
			return nil, apperrors.NewCatalogLoadError(fmt.Sprintf("record %d has an empty id", i), nil)
		}
		if _, exists := c.byID[record.ID]; exists {
			return nil, apperrors.NewCatalogLoadError(fmt.Sprintf("duplicate record id %q", record.ID), nil)
		}

		c.records = append(c.records, record)
		c.byID[record.ID] = record
		c.index[record.ID] = buildIndexEntry(record)

		if record.Type != "" {
			typeSet[strings.ToLower(record.Type)] = record.Type
		}
	}

	c.hierarchy = buildHierarchy(c.records)
	c.types = sortedValues(typeSet)

	return c, nil
}

// GetByID retrieves a record by id
func (c *Catalog) GetByID(id string) (*entities.InstitutionRecord, error) {
	record, ok := c.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("institution %q not found", id))
	}
	return record, nil
}

// All returns the records in load order. Callers must not modify the slice.
func (c *Catalog) All() []*entities.InstitutionRecord {
	return c.records
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.records)
}

// IndexOf returns the derived search strings for a record id
func (c *Catalog) IndexOf(id string) *IndexEntry {
	return c.index[id]
}

// Hierarchy returns the derived province/district option tree
func (c *Catalog) Hierarchy() *Hierarchy {
	return c.hierarchy
}

// Types returns the distinct institution types, locale-aware sorted
func (c *Catalog) Types() []string {
	return c.types
}

func buildIndexEntry(record *entities.InstitutionRecord) *IndexEntry {
	parts := make([]string, 0, 5)
	for _, field := range []string{record.Name, record.Type, record.Province, record.District, record.Address} {
		if field != "" {
			parts = append(parts, strings.ToLower(field))
		}
	}

	return &IndexEntry{
		TokenText:     strings.Join(parts, " "),
		NameLower:     strings.ToLower(record.Name),
		TypeLower:     strings.ToLower(record.Type),
		ProvinceLower: strings.ToLower(record.Province),
		DistrictLower: strings.ToLower(record.District),
	}
}

func sortedValues(byLower map[string]string) []string {
	values := make([]string, 0, len(byLower))
	for _, v := range byLower {
		values = append(values, v)
	}
	sortLocaleAware(values)
	return values
}
