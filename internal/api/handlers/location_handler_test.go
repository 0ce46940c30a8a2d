package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurumrehberi/institution-directory/backend/internal/api/handlers"
)

func TestLocationHandler_GetProvinces(t *testing.T) {
	handler := handlers.NewLocationHandler(loadedService(t))

	req := httptest.NewRequest("GET", "/api/locations/provinces", nil)
	w := httptest.NewRecorder()

	handler.GetProvinces(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Provinces []string `json:"provinces"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"Ankara", "İzmir"}, response.Provinces)
}

func TestLocationHandler_GetDistricts(t *testing.T) {
	handler := handlers.NewLocationHandler(loadedService(t))

	req := httptest.NewRequest("GET", "/api/locations/provinces/Ankara/districts", nil)
	req.SetPathValue("province", "Ankara")
	w := httptest.NewRecorder()

	handler.GetDistricts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Districts []string `json:"districts"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"Çankaya"}, response.Districts)
}

func TestLocationHandler_GetTypes(t *testing.T) {
	handler := handlers.NewLocationHandler(loadedService(t))

	req := httptest.NewRequest("GET", "/api/institutions/types", nil)
	w := httptest.NewRecorder()

	handler.GetTypes(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Types []string `json:"types"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"State", "University"}, response.Types)
}
