package coverage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/config"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/coverage"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestStreetViewClient_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the panorama on OK", func(t *testing.T) {
		srv, req := newServer(t, http.StatusOK, `{
			"copyright": "© Google",
			"date": "2021-07",
			"location": {"lat": 48.85837, "lng": 2.294481},
			"pano_id": "CAoSLEFGMVFpcE",
			"status": "OK"
		}`)
		client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
		require.NoError(t, err)

		point, err := client.Lookup(ctx, 48.8584, 2.2945, 50)

		require.NoError(t, err)
		require.NotNil(t, point)
		assert.Equal(t, 48.85837, point.Latitude)
		assert.Equal(t, 2.294481, point.Longitude)
		assert.Equal(t, "CAoSLEFGMVFpcE", point.ID)

		assert.Equal(t, "/maps/api/streetview/metadata", req.URL.Path)
		assert.Equal(t, "48.8584,2.2945", req.URL.Query().Get("location"))
		assert.Equal(t, "50", req.URL.Query().Get("radius"))
		assert.Equal(t, "secret", req.URL.Query().Get("key"))
	})

	t.Run("returns nil without coverage", func(t *testing.T) {
		for _, status := range []string{"ZERO_RESULTS", "NOT_FOUND"} {
			srv, _ := newServer(t, http.StatusOK, `{"status":"`+status+`"}`)
			client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
			require.NoError(t, err)

			point, err := client.Lookup(ctx, 10, 10, 50)

			require.NoError(t, err, status)
			assert.Nil(t, point, status)
		}
	})

	t.Run("fails on quota and key errors", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{"status":"OVER_QUERY_LIMIT","error_message":"quota"}`)
		client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
		require.NoError(t, err)

		point, err := client.Lookup(ctx, 10, 10, 50)

		assert.ErrorIs(t, err, domain.ErrCoverageUnavailable)
		assert.Nil(t, point)
	})

	t.Run("fails on non-200 responses", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusForbidden, `{}`)
		client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
		require.NoError(t, err)

		_, err = client.Lookup(ctx, 10, 10, 50)

		assert.ErrorIs(t, err, domain.ErrCoverageUnavailable)
	})

	t.Run("fails on malformed bodies", func(t *testing.T) {
		bodies := []string{
			`not json`,
			`{"status":"OK"}`,
			`{"status":"OK","location":{"lat":"x","lng":2},"pano_id":"p"}`,
			`{"status":"OK","location":{"lat":1,"lng":2}}`,
		}
		for _, body := range bodies {
			srv, _ := newServer(t, http.StatusOK, body)
			client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
			require.NoError(t, err)

			_, err = client.Lookup(ctx, 10, 10, 50)

			assert.ErrorIs(t, err, domain.ErrMalformedCoverage, body)
		}
	})

	t.Run("does not leak the api key in transport errors", func(t *testing.T) {
		client, err := coverage.NewStreetViewClient("http://127.0.0.1:1", "top-secret-key", time.Second)
		require.NoError(t, err)

		_, err = client.Lookup(ctx, 10, 10, 50)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCoverageUnavailable)
		assert.NotContains(t, err.Error(), "top-secret-key")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{"status":"ZERO_RESULTS"}`)
		client, err := coverage.NewStreetViewClient(srv.URL, "secret", time.Second)
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = client.Lookup(cancelled, 10, 10, 50)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewStreetViewClient(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		_, err := coverage.NewStreetViewClient("", "", time.Second)
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("wraps the client in a cache", func(t *testing.T) {
		client, err := coverage.NewClient(config.StreetViewConfig{APIKey: "k", CacheSize: 8, Timeout: time.Second})

		require.NoError(t, err)
		assert.IsType(t, &coverage.CachingClient{}, client)
	})

	t.Run("returns the bare client without cache size", func(t *testing.T) {
		client, err := coverage.NewClient(config.StreetViewConfig{APIKey: "k", Timeout: time.Second})

		require.NoError(t, err)
		assert.IsType(t, &coverage.StreetViewClient{}, client)
	})
}
