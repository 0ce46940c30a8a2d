// Package database provides Postgres-backed persistence adapters.
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// SearchAnalyticsAdapter persists search events in Postgres
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent inserts a search event row
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":               event.ID,
		"query":            event.Query,
		"normalized_query": event.NormalizedQuery,
		"province":         sql.NullString{String: event.Province, Valid: event.Province != ""},
		"district":         sql.NullString{String: event.District, Valid: event.District != ""},
		"geo_mode":         sql.NullString{String: event.GeoMode, Valid: event.GeoMode != ""},
		"result_count":     event.ResultCount,
		"latency_ms":       event.LatencyMs,
		"created_at":       event.CreatedAt,
	}

	query, args, err := a.db.Insert("search_analytics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build search event insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}
