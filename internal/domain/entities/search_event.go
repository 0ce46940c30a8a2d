package entities

import "time"

// SearchEvent captures one executed directory search for analytics
type SearchEvent struct {
	ID              string    `json:"id" db:"id"`
	Query           string    `json:"query" db:"query"`
	NormalizedQuery string    `json:"normalized_query" db:"normalized_query"`
	Province        string    `json:"province,omitempty" db:"province"`
	District        string    `json:"district,omitempty" db:"district"`
	GeoMode         string    `json:"geo_mode,omitempty" db:"geo_mode"`
	ResultCount     int       `json:"result_count" db:"result_count"`
	LatencyMs       float64   `json:"latency_ms" db:"latency_ms"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
