package repositories

import (
	"context"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
)

// CatalogSource supplies the raw institution record sequence the catalog is
// built from. Implementations adapt a bulk structured document or a queryable
// backend; the query engine itself is agnostic to which.
type CatalogSource interface {
	// FetchRecords fetches all institution records from the source
	FetchRecords(ctx context.Context) ([]*entities.InstitutionRecord, error)
}
