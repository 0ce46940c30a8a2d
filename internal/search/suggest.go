package search

import (
	"strings"

	"github.com/kurumrehberi/institution-directory/backend/internal/catalog"
)

// MinSuggestQueryLen is the documented cutoff below which a partial query is
// too short to suggest usefully
const MinSuggestQueryLen = 2

// Default per-tier caps
const (
	DefaultRecentCap   = 2
	DefaultNameCap     = 3
	DefaultProvinceCap = 2
	DefaultTypeCap     = 2
)

// SuggestionRequest carries the partial query and the per-tier caps
type SuggestionRequest struct {
	QueryText   string
	RecentCap   int
	NameCap     int
	ProvinceCap int
	TypeCap     int
}

// NewSuggestionRequest creates a request with the default tier caps
func NewSuggestionRequest(queryText string) SuggestionRequest {
	return SuggestionRequest{
		QueryText:   queryText,
		RecentCap:   DefaultRecentCap,
		NameCap:     DefaultNameCap,
		ProvinceCap: DefaultProvinceCap,
		TypeCap:     DefaultTypeCap,
	}
}

// Suggestion is one autocomplete candidate. MatchStart and MatchLength are
// rune offsets of the matched substring within Value, computed over the
// original-cased display string so the caller can highlight it.
type Suggestion struct {
	Value       string `json:"value"`
	MatchStart  int    `json:"match_start"`
	MatchLength int    `json:"match_length"`
}

// Suggestions groups the tiered autocomplete output. Tier order is ranked:
// recent searches first, then institution names, provinces and types.
type Suggestions struct {
	Recent    []Suggestion `json:"recent"`
	Names     []Suggestion `json:"names"`
	Provinces []Suggestion `json:"provinces"`
	Types     []Suggestion `json:"types"`
}

// Suggest computes tiered suggestions for a partial query. Queries shorter
// than MinSuggestQueryLen return all tiers empty without touching the
// catalog. A value placed in an earlier tier never reappears in a later one.
func (e *Engine) Suggest(c *catalog.Catalog, recentEntries []string, req SuggestionRequest) Suggestions {
	var out Suggestions

	query := strings.TrimSpace(req.QueryText)
	if len([]rune(query)) < MinSuggestQueryLen {
		return out
	}

	seen := make(map[string]bool)
	take := func(value string, limit int, tier *[]Suggestion) {
		if len(*tier) >= limit {
			return
		}
		key := strings.ToLower(value)
		if seen[key] {
			return
		}
		start, length, ok := matchSpan(value, query)
		if !ok {
			return
		}
		seen[key] = true
		*tier = append(*tier, Suggestion{Value: value, MatchStart: start, MatchLength: length})
	}

	for _, entry := range recentEntries {
		take(entry, req.RecentCap, &out.Recent)
	}
	for _, record := range c.All() {
		take(record.Name, req.NameCap, &out.Names)
	}
	for _, province := range c.Hierarchy().Provinces() {
		take(province, req.ProvinceCap, &out.Provinces)
	}
	for _, typ := range c.Types() {
		take(typ, req.TypeCap, &out.Types)
	}

	return out
}

// matchSpan finds the first case-insensitive occurrence of query within
// value and returns its rune offset and rune length. Lowercasing is done
// rune by rune so offsets stay aligned with the original string.
func matchSpan(value, query string) (start, length int, ok bool) {
	valueRunes := lowerRunes(value)
	queryRunes := lowerRunes(query)
	if len(queryRunes) == 0 || len(queryRunes) > len(valueRunes) {
		return 0, 0, false
	}

	for i := 0; i+len(queryRunes) <= len(valueRunes); i++ {
		matched := true
		for j, qr := range queryRunes {
			if valueRunes[i+j] != qr {
				matched = false
				break
			}
		}
		if matched {
			return i, len(queryRunes), true
		}
	}
	return 0, 0, false
}

func lowerRunes(s string) []rune {
	return []rune(strings.ToLower(s))
}
