package search

import (
	"testing"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(result *Result) []string {
	out := make([]string, 0, len(result.Items))
	for _, hit := range result.Items {
		out = append(out, hit.Record.ID)
	}
	return out
}

func TestQuery_TextMatchAllTerms(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{SearchText: "ankara"}, nil, c.Hierarchy())
	require.NoError(t, err)

	result := engine.Query(c, crit)
	assert.Equal(t, []string{"a", "b"}, ids(result))
	assert.Equal(t, 2, result.TotalCount)

	// every term must match
	crit, err = Normalize(Input{SearchText: "ankara dental"}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(engine.Query(c, crit)))

	crit, err = Normalize(Input{SearchText: "ankara bornova"}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Empty(t, engine.Query(c, crit).Items)
}

func TestQuery_CategoricalFilters(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{Province: "İzmir", Types: []string{"State"}}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, ids(engine.Query(c, crit)))

	crit, err = Normalize(Input{Province: "Ankara", District: "Keçiören"}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(engine.Query(c, crit)))

	crit, err = Normalize(Input{Types: []string{"State", "Dental"}}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Equal(t, 3, engine.Query(c, crit).TotalCount)
}

func TestQuery_BoundingBox(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{
		BoundingBox: &geo.BoundingBox{MinLat: 38.0, MinLon: 26.0, MaxLat: 39.0, MaxLon: 28.0},
	}, nil, c.Hierarchy())
	require.NoError(t, err)

	// record b has no coordinates and is excluded even though no other
	// filter would reject it
	assert.Equal(t, []string{"d", "c"}, ids(engine.Query(c, crit)))
}

func TestQuery_OriginRadiusAttachesDistanceAndSorts(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{
		OriginRadius: &OriginRadius{Origin: entities.Location{Latitude: 38.45, Longitude: 27.20}, RadiusKm: 5},
	}, nil, c.Hierarchy())
	require.NoError(t, err)

	result := engine.Query(c, crit)
	require.Equal(t, []string{"c"}, ids(result))
	require.NotNil(t, result.Items[0].DistanceKm)
	assert.InDelta(t, 2.0, *result.Items[0].DistanceKm, 1.0)

	// widening the radius pulls in d, ordered by distance
	crit, err = Normalize(Input{
		OriginRadius: &OriginRadius{Origin: entities.Location{Latitude: 38.45, Longitude: 27.20}, RadiusKm: 30},
	}, nil, c.Hierarchy())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(engine.Query(c, crit)))
}

func TestQuery_ExplicitSortOverridesDistance(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{
		OriginRadius: &OriginRadius{Origin: entities.Location{Latitude: 38.45, Longitude: 27.20}, RadiusKm: 30},
		SortBy:       SortByName,
	}, nil, c.Hierarchy())
	require.NoError(t, err)

	// Izmir State Hospital sorts before Izmir University Hospital by name
	assert.Equal(t, []string{"d", "c"}, ids(engine.Query(c, crit)))
}

func TestQuery_SortOrderDescending(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{SortBy: SortByName, SortOrder: SortDesc}, nil, c.Hierarchy())
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d", "b", "a"}, ids(engine.Query(c, crit)))
}

func TestQuery_OutOfRangePage(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{Page: 5, PageSize: 2}, nil, c.Hierarchy())
	require.NoError(t, err)

	result := engine.Query(c, crit)
	assert.Empty(t, result.Items)
	assert.Equal(t, 4, result.TotalCount)
}

func TestQuery_PaginationCompleteness(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	full, err := Normalize(Input{PageSize: 100}, nil, c.Hierarchy())
	require.NoError(t, err)
	want := ids(engine.Query(c, full))

	var got []string
	for page := 1; page <= 2; page++ {
		crit, err := Normalize(Input{Page: page, PageSize: 2}, nil, c.Hierarchy())
		require.NoError(t, err)
		result := engine.Query(c, crit)
		assert.Equal(t, 4, result.TotalCount)
		got = append(got, ids(result)...)
	}

	assert.Equal(t, want, got)
}

func TestQuery_SubsetAndDeterminism(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	inCatalog := make(map[string]bool)
	for _, record := range c.All() {
		inCatalog[record.ID] = true
	}

	inputs := []Input{
		{},
		{SearchText: "hospital"},
		{Province: "Ankara"},
		{SearchText: "izmir", Types: []string{"University"}},
		{OriginRadius: &OriginRadius{Origin: entities.Location{Latitude: 39.0, Longitude: 30.0}, RadiusKm: 500}},
	}

	for _, in := range inputs {
		crit, err := Normalize(in, nil, c.Hierarchy())
		require.NoError(t, err)

		first := engine.Query(c, crit)
		second := engine.Query(c, crit)
		assert.Equal(t, ids(first), ids(second))

		for _, id := range ids(first) {
			assert.True(t, inCatalog[id])
		}
	}
}

func TestQuery_AllDeclaredSortFieldsHandled(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	inputs := []Input{
		{SortBy: SortByName},
		{SortBy: SortByProvince},
		{SortBy: SortByType},
		{
			SortBy:       SortByDistance,
			OriginRadius: &OriginRadius{Origin: entities.Location{Latitude: 38.45, Longitude: 27.20}, RadiusKm: 500},
		},
	}

	for _, in := range inputs {
		crit, err := Normalize(in, nil, c.Hierarchy())
		require.NoError(t, err)
		assert.NotEmpty(t, engine.Query(c, crit).Items, "sort by %s", in.SortBy)
	}
}

func TestQuery_LocaleAwareNameSort(t *testing.T) {
	c := testCatalog(t)
	engine := NewEngine()

	crit, err := Normalize(Input{SortBy: SortByProvince}, nil, c.Hierarchy())
	require.NoError(t, err)

	// Ankara records precede İzmir records under Turkish collation
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(engine.Query(c, crit)))
}
