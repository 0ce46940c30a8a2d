package source

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// PostgresSource reads the raw record sequence from the institutions table
// of a queryable backend
type PostgresSource struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresSource creates a Postgres-backed catalog source
func NewPostgresSource(client *postgres.Client) repositories.CatalogSource {
	return &PostgresSource{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FetchRecords fetches all institution records from the backend
func (s *PostgresSource) FetchRecords(ctx context.Context) ([]*entities.InstitutionRecord, error) {
	query, args, err := s.db.From("institutions").
		Select(
			"id", "name", "institution_type", "province", "district",
			"address", "phone", "website", "latitude", "longitude",
			"source", "last_updated",
		).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewCatalogLoadError("failed to build catalog query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewCatalogLoadError("failed to query institutions", err)
	}
	defer rows.Close()

	var records []*entities.InstitutionRecord
	for rows.Next() {
		record := &entities.InstitutionRecord{}
		var district, address, phone, website, source sql.NullString
		var latitude, longitude sql.NullFloat64

		if err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.Type,
			&record.Province,
			&district,
			&address,
			&phone,
			&website,
			&latitude,
			&longitude,
			&source,
			&record.LastUpdated,
		); err != nil {
			return nil, apperrors.NewCatalogLoadError("failed to scan institution row", err)
		}

		record.District = district.String
		record.Address = address.String
		record.Phone = phone.String
		record.Website = website.String
		record.Source = source.String
		if latitude.Valid && longitude.Valid {
			record.Location = &entities.Location{
				Latitude:  latitude.Float64,
				Longitude: longitude.Float64,
			}
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCatalogLoadError("failed to read institution rows", err)
	}

	return records, nil
}
