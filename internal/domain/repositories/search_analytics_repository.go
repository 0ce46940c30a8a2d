package repositories

import (
	"context"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
)

// SearchAnalyticsRepository persists executed search events.
// Logging is best effort; callers must not fail a search on a sink error.
type SearchAnalyticsRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
}
