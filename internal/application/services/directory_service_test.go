package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []*entities.InstitutionRecord
	err     error
}

func (s *stubSource) FetchRecords(ctx context.Context) ([]*entities.InstitutionRecord, error) {
	return s.records, s.err
}

type stubAnalytics struct {
	events []*entities.SearchEvent
	err    error
}

func (s *stubAnalytics) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func testRecords() []*entities.InstitutionRecord {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return []*entities.InstitutionRecord{
		{
			ID: "a", Name: "Ankara City Hospital", Type: "State",
			Province: "Ankara", District: "Çankaya",
			Location: &entities.Location{Latitude: 39.93, Longitude: 32.86}, LastUpdated: now,
		},
		{
			ID: "c", Name: "Izmir University Hospital", Type: "University",
			Province: "İzmir", District: "Bornova",
			Location: &entities.Location{Latitude: 38.46, Longitude: 27.22}, LastUpdated: now,
		},
	}
}

func loadedService(t *testing.T, analytics *stubAnalytics) *DirectoryService {
	t.Helper()
	var sink repositories.SearchAnalyticsRepository
	if analytics != nil {
		sink = analytics
	}
	svc := NewDirectoryService(&stubSource{records: testRecords()}, sink)
	require.NoError(t, svc.LoadCatalog(context.Background()))
	return svc
}

func TestDirectoryService_NotReadyBeforeLoad(t *testing.T) {
	svc := NewDirectoryService(&stubSource{}, nil)

	assert.False(t, svc.Ready())

	_, _, err := svc.Query(context.Background(), search.Input{}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))

	_, err = svc.Suggest(context.Background(), nil, search.NewSuggestionRequest("an"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestDirectoryService_LoadFailureKeepsOldCatalog(t *testing.T) {
	src := &stubSource{records: testRecords()}
	svc := NewDirectoryService(src, nil)
	require.NoError(t, svc.LoadCatalog(context.Background()))

	src.err = errors.New("source down")
	require.Error(t, svc.LoadCatalog(context.Background()))

	assert.True(t, svc.Ready())
	result, _, err := svc.Query(context.Background(), search.Input{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
}

func TestDirectoryService_QueryAndPrevThreading(t *testing.T) {
	svc := loadedService(t, nil)
	ctx := context.Background()

	result, crit, err := svc.Query(ctx, search.Input{SearchText: "ankara", Page: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, 2, crit.Page)

	// changing the filter with prev threaded in resets the page
	_, next, err := svc.Query(ctx, search.Input{SearchText: "izmir", Page: 2}, crit)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Page)
}

func TestDirectoryService_GeoUnavailableFallsBack(t *testing.T) {
	svc := loadedService(t, nil)

	result, crit, err := svc.Query(context.Background(), search.Input{SearchText: "hospital", NearMe: true}, nil)
	require.NoError(t, err)

	// the query ran without the geo constraint instead of failing
	assert.Nil(t, crit.OriginRadius)
	assert.Equal(t, 2, result.TotalCount)
}

func TestDirectoryService_InvalidFilterPropagates(t *testing.T) {
	svc := loadedService(t, nil)

	_, _, err := svc.Query(context.Background(), search.Input{District: "Bornova"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidFilter))
}

func TestDirectoryService_AnalyticsBestEffort(t *testing.T) {
	sink := &stubAnalytics{err: errors.New("sink down")}
	svc := loadedService(t, sink)

	result, _, err := svc.Query(context.Background(), search.Input{SearchText: "Ankara"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "Ankara", sink.events[0].Query)
	assert.Equal(t, "ankara", sink.events[0].NormalizedQuery)
	assert.Equal(t, 1, sink.events[0].ResultCount)
}

func TestDirectoryService_TuningAppliesToQueries(t *testing.T) {
	svc := loadedService(t, nil)
	svc.SetTuning(search.Tuning{DefaultPageSize: 1})

	result, crit, err := svc.Query(context.Background(), search.Input{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, crit.PageSize)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.TotalCount)
}

func TestDirectoryService_Accessors(t *testing.T) {
	svc := loadedService(t, nil)

	provinces, err := svc.Provinces()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ankara", "İzmir"}, provinces)

	districts, err := svc.Districts("İzmir")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bornova"}, districts)

	types, err := svc.Types()
	require.NoError(t, err)
	assert.Equal(t, []string{"State", "University"}, types)

	record, err := svc.GetInstitution("a")
	require.NoError(t, err)
	assert.Equal(t, "Ankara City Hospital", record.Name)

	_, err = svc.GetInstitution("zz")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
