package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "countrydata/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCountryData_SendsOnePost(t *testing.T) {
	var hits atomic.Int32
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get_country_data", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"capital": "Paris", "languages": ["French"], "gdp": 2.78}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL + "/"})
	rec, err := c.FetchCountryData(context.Background(), "France")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, map[string]any{"countryName": "France"}, gotBody)
	assert.Equal(t, []string{"capital", "languages", "gdp"}, rec.Keys())
}

func TestFetchCountryData_EmptyNameSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	_, err := New(Options{BaseURL: srv.URL}).FetchCountryData(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "Please select a country first.", err.Error())
	assert.Zero(t, hits.Load())
}

func TestFetchCountryData_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusNotFound, `{"error": "Country not found"}`, "Country not found"},
		{"bad request", http.StatusBadRequest, `{"error": "Country name is required"}`, "Country name is required"},
		{"no error field", http.StatusInternalServerError, `{"detail": "boom"}`, "HTTP error! status: 500"},
		{"empty error field", http.StatusBadGateway, `{"error": ""}`, "HTTP error! status: 502"},
		{"not json", http.StatusServiceUnavailable, `<html>down</html>`, "HTTP error! status: 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(Options{BaseURL: srv.URL}).FetchCountryData(context.Background(), "Atlantis")
			require.Error(t, err)

			var e *apperrors.E
			require.ErrorAs(t, err, &e)
			assert.Equal(t, apperrors.KindServer, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestFetchCountryData_ParseError(t *testing.T) {
	for _, body := range []string{`not json`, `["France"]`, `{"a": 1} trailing`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := New(Options{BaseURL: srv.URL}).FetchCountryData(context.Background(), "France")
			assert.Equal(t, apperrors.KindParse, apperrors.KindOf(err))
		})
	}
}

func TestFetchCountryData_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(Options{BaseURL: url}).FetchCountryData(context.Background(), "France")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNetwork, apperrors.KindOf(err))
}

func TestFetchCountryData_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}).FetchCountryData(context.Background(), "France")

	assert.Equal(t, apperrors.KindNetwork, apperrors.KindOf(err))
}

func TestFetchCountryData_CustomEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/country", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	rec, err := New(Options{BaseURL: srv.URL, Endpoint: "api/country"}).FetchCountryData(context.Background(), "France")
	require.NoError(t, err)
	assert.Empty(t, rec)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!doctype html><html><head><title> Country Data Dashboard </title></head><body></body></html>`))
	}))
	defer srv.Close()

	st, err := New(Options{BaseURL: srv.URL}).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{Alive: true, StatusCode: http.StatusOK, Title: "Country Data Dashboard"}, st)
}

func TestPing_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	st, err := New(Options{BaseURL: srv.URL}).Ping(context.Background())
	require.Error(t, err)
	assert.False(t, st.Alive)
	assert.Equal(t, http.StatusServiceUnavailable, st.StatusCode)
}

func TestPing_Down(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	st, err := New(Options{BaseURL: url}).Ping(context.Background())
	assert.Equal(t, apperrors.KindNetwork, apperrors.KindOf(err))
	assert.False(t, st.Alive)
}
