package shortdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ultimate-squeeze/scanner/pkg/httputil"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := httputil.New(logger.Discard(), time.Second)
	return NewClient(httpClient, srv.URL, 100, logger.Discard()), srv
}

func TestFetchWithoutKeySkipsNetwork(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	if rec := client.Fetch(context.Background(), "GME", ""); rec != nil {
		t.Errorf("Fetch() without key should return nil, got %+v", rec)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("Fetch() without key made %d network calls, want 0", calls)
	}
}

func TestFetchFirstCandidateSucceeds(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.Header.Get("Ortex-Api-Key") != "secret" {
			t.Errorf("missing Ortex-Api-Key header")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"short_interest": 25.0, "utilization": 90.0, "ctb": 15.0, "dtc": 5.0}`)
	}))

	rec := client.Fetch(context.Background(), "GME", "secret")
	if rec == nil {
		t.Fatal("Fetch() returned nil")
	}

	if len(paths) != 1 {
		t.Errorf("expected a single request, got %d: %v", len(paths), paths)
	}
	if paths[0] != "/api/v1/stock/nasdaq/GME/short_interest" {
		t.Errorf("unexpected first candidate path %s", paths[0])
	}
	if rec.ShortInterest != 25 || rec.Utilization != 90 || rec.CostToBorrow != 15 || rec.DaysToCover != 5 {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.DataQuality != DataQualityLive {
		t.Errorf("DataQuality = %q, want live", rec.DataQuality)
	}
}

func TestFetchFallsThroughToSecondCandidate(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"short_interest": 18.0}`)
	}))

	rec := client.Fetch(context.Background(), "AMC", "secret")
	if rec == nil {
		t.Fatal("Fetch() should succeed through the second candidate")
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("expected 2 candidate attempts, got %d", hits)
	}
}

func TestFetchExhaustedCandidates(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server errors on all candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "wrong content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				fmt.Fprint(w, "<html>rate limited</html>")
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"short_interest": `)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			if rec := client.Fetch(context.Background(), "GME", "secret"); rec != nil {
				t.Errorf("Fetch() should yield no data, got %+v", rec)
			}
		})
	}
}
