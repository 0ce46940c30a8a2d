package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_BelowMinLengthReturnsEmpty(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	for _, q := range []string{"", "a", " a "} {
		out := engine.Suggest(c, nil, NewSuggestionRequest(q))
		assert.Empty(t, out.Recent)
		assert.Empty(t, out.Names)
		assert.Empty(t, out.Provinces)
		assert.Empty(t, out.Types)
	}
}

func TestSuggest_NameTier(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	out := engine.Suggest(c, nil, NewSuggestionRequest("an"))

	values := make([]string, 0, len(out.Names))
	for _, s := range out.Names {
		values = append(values, s.Value)
	}
	assert.Contains(t, values, "Ankara City Hospital")
	assert.Contains(t, values, "Ankara Dental Center")
	assert.LessOrEqual(t, len(out.Names), DefaultNameCap)
}

func TestSuggest_TierCaps(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	recent := []string{"state a", "state b", "state c", "state d"}
	req := NewSuggestionRequest("st")
	out := engine.Suggest(c, recent, req)

	assert.LessOrEqual(t, len(out.Recent), req.RecentCap)
	assert.LessOrEqual(t, len(out.Names), req.NameCap)
	assert.LessOrEqual(t, len(out.Provinces), req.ProvinceCap)
	assert.LessOrEqual(t, len(out.Types), req.TypeCap)
}

func TestSuggest_EarlierTierWins(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	// "State" sits in the recent log and also matches the type tier;
	// it must only show up once, in the recent tier
	out := engine.Suggest(c, []string{"State"}, NewSuggestionRequest("st"))

	assert.Equal(t, []Suggestion{{Value: "State", MatchStart: 0, MatchLength: 2}}, out.Recent)
	for _, s := range out.Types {
		assert.NotEqual(t, "state", s.Value)
		assert.NotEqual(t, "State", s.Value)
	}
}

func TestSuggest_MatchSpanUsesOriginalCasing(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	out := engine.Suggest(c, nil, NewSuggestionRequest("DENTAL"))

	var found *Suggestion
	for i := range out.Names {
		if out.Names[i].Value == "Ankara Dental Center" {
			found = &out.Names[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, 7, found.MatchStart)
		assert.Equal(t, 6, found.MatchLength)
	}
}

func TestSuggest_ProvinceTierMatchesTurkishNames(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	out := engine.Suggest(c, nil, NewSuggestionRequest("zmir"))

	if assert.Len(t, out.Provinces, 1) {
		s := out.Provinces[0]
		assert.Equal(t, "İzmir", s.Value)
		assert.Equal(t, 1, s.MatchStart)
		assert.Equal(t, 4, s.MatchLength)
	}
}

func TestMatchSpan(t *testing.T) {
	start, length, ok := matchSpan("Ankara City Hospital", "city")
	assert.True(t, ok)
	assert.Equal(t, 7, start)
	assert.Equal(t, 4, length)

	_, _, ok = matchSpan("Ankara", "izmir")
	assert.False(t, ok)

	// rune offsets, not byte offsets
	start, length, ok = matchSpan("Çankaya Hastanesi", "hast")
	assert.True(t, ok)
	assert.Equal(t, 8, start)
	assert.Equal(t, 4, length)
}
