package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/entities"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "institutions": [
    {
      "id": "a",
      "name": "Ankara City Hospital",
      "type": "State",
      "province": "Ankara",
      "district": "Çankaya",
      "location": {"latitude": 39.93, "longitude": 32.86},
      "last_updated": "2026-01-15T00:00:00Z"
    },
    {
      "id": "b",
      "name": "Ankara Dental Center",
      "type": "Dental",
      "province": "Ankara",
      "district": "Keçiören",
      "last_updated": "2026-01-15T00:00:00Z"
    }
  ]
}`

func TestDecodeDocument(t *testing.T) {
	records, err := DecodeDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ankara City Hospital", records[0].Name)
	require.NotNil(t, records[0].Location)
	assert.Equal(t, 39.93, records[0].Location.Latitude)
	assert.Nil(t, records[1].Location)
}

func TestDecodeDocument_MalformedJSON(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"institutions": [`))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCatalogLoad))
}

func TestDecodeDocument_MissingTopLevelShape(t *testing.T) {
	// well-formed JSON but not a catalog document: must fail, never
	// silently yield an empty catalog
	_, err := DecodeDocument(strings.NewReader(`{}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCatalogLoad))
}

func TestDocumentSource_FetchRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "institutions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	src := NewDocumentSource(path)
	records, err := src.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDocumentSource_MissingFile(t *testing.T) {
	src := NewDocumentSource(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.FetchRecords(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCatalogLoad))
}

func TestEncodeDocument_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []*entities.InstitutionRecord{
		{ID: "x", Name: "Bursa State Hospital", Type: "State", Province: "Bursa", LastUpdated: now},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeDocument(&buf, records))

	decoded, err := DecodeDocument(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Bursa State Hospital", decoded[0].Name)
}
