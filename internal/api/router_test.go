package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultimate-squeeze/scanner/internal/api/handlers"
	"github.com/ultimate-squeeze/scanner/internal/scanner"
	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

type stubService struct{}

func (stubService) Scan(ctx context.Context, opts scanner.Options) (*scanner.Report, error) {
	return &scanner.Report{Results: []scanner.Result{}}, nil
}

func (stubService) ScanOne(ctx context.Context, ticker, ortexKey string) (*scanner.Result, error) {
	return &scanner.Result{Ticker: ticker}, nil
}

func testRouter() http.Handler {
	cfg := &config.Config{Scanner: config.ScannerConfig{MaxBatchSize: 15, Workers: 8}}
	scanHandler := handlers.NewScanHandler(stubService{}, "", logger.Discard())
	metaHandler := handlers.NewMetaHandler(universe.New(), cfg)
	return NewRouter(scanHandler, metaHandler, logger.Discard())
}

func TestRouterNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Not Found", resp["error"])
}

func TestRouterCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/scan", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRoutes(t *testing.T) {
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/health"},
		{http.MethodGet, "/api/ticker-universe"},
		{http.MethodPost, "/api/scan"},
		{http.MethodPost, "/api/single-scan"},
	}

	router := testRouter()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", tc.method, tc.path)
	}
}
