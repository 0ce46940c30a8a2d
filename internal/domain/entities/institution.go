package entities

import "time"

// InstitutionRecord represents a healthcare institution in the directory.
// Records are immutable once the catalog they belong to has been loaded.
type InstitutionRecord struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"institution_type"`
	Province    string    `json:"province" db:"province"`
	District    string    `json:"district,omitempty" db:"district"`
	Address     string    `json:"address,omitempty" db:"address"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	Website     string    `json:"website,omitempty" db:"website"`
	Location    *Location `json:"location,omitempty" db:"-"`
	Source      string    `json:"source,omitempty" db:"source"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// HasLocation reports whether the record carries usable coordinates.
// Records without coordinates are excluded from geo-constrained queries.
func (r *InstitutionRecord) HasLocation() bool {
	return r.Location != nil
}
