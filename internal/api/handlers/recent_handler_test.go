package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurumrehberi/institution-directory/backend/internal/api/handlers"
)

func decodeEntries(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var response struct {
		Entries []string `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response.Entries
}

func TestRecentHandler_RecordAndList(t *testing.T) {
	handler := handlers.NewRecentHandler(emptyRecentLog(t))

	req := httptest.NewRequest("POST", "/api/recent-searches", strings.NewReader(`{"query":"ankara dental"}`))
	w := httptest.NewRecorder()
	handler.RecordRecentSearch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ankara dental"}, decodeEntries(t, w))

	req = httptest.NewRequest("GET", "/api/recent-searches", nil)
	w = httptest.NewRecorder()
	handler.ListRecentSearches(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ankara dental"}, decodeEntries(t, w))
}

func TestRecentHandler_Record_InvalidBody(t *testing.T) {
	handler := handlers.NewRecentHandler(emptyRecentLog(t))

	req := httptest.NewRequest("POST", "/api/recent-searches", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.RecordRecentSearch(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecentHandler_Delete(t *testing.T) {
	log := emptyRecentLog(t)
	handler := handlers.NewRecentHandler(log)

	for _, query := range []string{"first", "second"} {
		req := httptest.NewRequest("POST", "/api/recent-searches", strings.NewReader(`{"query":"`+query+`"}`))
		w := httptest.NewRecorder()
		handler.RecordRecentSearch(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest("DELETE", "/api/recent-searches", strings.NewReader(`{"query":"first"}`))
	w := httptest.NewRecorder()
	handler.DeleteRecentSearch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"second"}, decodeEntries(t, w))
}
