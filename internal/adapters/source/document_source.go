// Package source adapts external catalog sources into the raw record
// sequence the catalog is built from.
package source

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// institutionDocument is the expected top-level shape of the bulk document
type institutionDocument struct {
	Institutions []*entities.InstitutionRecord `json:"institutions"`
}

// DocumentSource reads the raw record sequence from a bulk JSON document
// on disk. A malformed document fails the load; it is never coerced into
// an empty catalog here.
type DocumentSource struct {
	path string
}

// NewDocumentSource creates a document source for the given file path
func NewDocumentSource(path string) repositories.CatalogSource {
	return &DocumentSource{path: path}
}

// FetchRecords fetches all institution records from the document
func (s *DocumentSource) FetchRecords(ctx context.Context) ([]*entities.InstitutionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadError("failed to open catalog document", err)
	}
	defer f.Close()

	return DecodeDocument(f)
}

// DecodeDocument decodes a bulk institution document from r, validating the
// expected top-level shape
func DecodeDocument(r io.Reader) ([]*entities.InstitutionRecord, error) {
	var doc institutionDocument
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&doc); err != nil {
		return nil, apperrors.NewCatalogLoadError("catalog document is not well-formed", err)
	}
	if doc.Institutions == nil {
		return nil, apperrors.NewCatalogLoadError("catalog document is missing the institutions list", nil)
	}
	return doc.Institutions, nil
}

// EncodeDocument writes records as a bulk institution document
func EncodeDocument(w io.Writer, records []*entities.InstitutionRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(institutionDocument{Institutions: records}); err != nil {
		return apperrors.NewInternalError("failed to encode catalog document", err)
	}
	return nil
}
