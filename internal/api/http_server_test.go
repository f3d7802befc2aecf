package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHTTPServer(t *testing.T) *HTTPServer {
	t.Helper()
	svc, _ := newTestServices(t)
	return NewHTTPServer(svc)
}

func doRequest(t *testing.T, s *HTTPServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := doRequest(t, newTestHTTPServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListWaterPointsEndpoint(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/water-points?status=panne", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	assert.Len(t, data, 2)

	w = doRequest(t, s, http.MethodGet, "/api/water-points/wp-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Forage Ambovombe Centre", decode(t, w)["data"].(map[string]any)["name"])

	w = doRequest(t, s, http.MethodGet, "/api/water-points/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateWaterPointEndpoint(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/water-points", map[string]any{
		"name": "Puits Marovato", "type": "puits", "status": "actif", "region": "Androy", "daily_capacity": 600,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "id-1", decode(t, w)["data"].(map[string]any)["id"])

	w = doRequest(t, s, http.MethodPost, "/api/water-points", map[string]any{"name": "Sans type"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReportEndpointNotifies(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/reports", map[string]any{
		"water_point_id": "wp-1",
		"report_type":    "panne",
		"priority":       "critique",
		"title":          "Pompe cassée",
		"description":    "Plus une goutte.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	notification := decode(t, w)["data"].(map[string]any)["notification"].(map[string]any)
	assert.Contains(t, notification["content"], "Forage Ambovombe Centre")

	w = doRequest(t, s, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["unread"])

	w = doRequest(t, s, http.MethodPatch, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["updated"])

	w = doRequest(t, s, http.MethodPatch, "/api/notifications/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDestructiveRoutesNeedConfirmation(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/users/1/deactivate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/users/1/deactivate?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["data"].(map[string]any)["is_active"])

	w = doRequest(t, s, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/users/1?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])
}

func TestUpdateUserEndpoint(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPatch, "/api/users/1", map[string]any{"organization": "MIONJO Sud"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "MIONJO Sud", user["organization"])
	assert.Equal(t, "Rakoto Pierre", user["full_name"])

	w = doRequest(t, s, http.MethodPatch, "/api/users/1", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCSVEndpoints(t *testing.T) {
	s := newTestHTTPServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "points.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Nom,Commune\nPuits Marovato,Marovato\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["imported"])

	req = httptest.NewRequest(http.MethodPost, "/api/inventory/import", strings.NewReader("Commune\nMarovato\n"))
	req.Header.Set("Content-Type", "text/csv")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a file without a name column is rejected")

	w = doRequest(t, s, http.MethodGet, "/api/inventory/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[1], `"Puits Marovato"`))
}

func TestSyncWithoutRegisterFails(t *testing.T) {
	w := doRequest(t, newTestHTTPServer(t), http.MethodPost, "/api/inventory/sync", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDashboardAndPredictionsEndpoints(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/dashboard?type=forage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 2, summary["total_water_points"])

	w = doRequest(t, s, http.MethodPost, "/api/predictions/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/predictions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	preds := decode(t, w)["data"].([]any)
	require.NotEmpty(t, preds)
	assert.Equal(t, "critique", preds[0].(map[string]any)["risk_level"])
}

func TestSessionEndpoints(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/session", nil)
	assert.Equal(t, true, decode(t, w)["logged_in"])

	w = doRequest(t, s, http.MethodDelete, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/session", nil)
	assert.Equal(t, false, decode(t, w)["logged_in"])
}

func TestQueryEndpoint(t *testing.T) {
	s := newTestHTTPServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/query", map[string]any{"message": "bonjour"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["reply"], "/help")

	w = doRequest(t, s, http.MethodPost, "/api/query", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunStopsWithContext(t *testing.T) {
	s := newTestHTTPServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx, "127.0.0.1:0"))
}
