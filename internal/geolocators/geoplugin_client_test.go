package geolocators_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log-stats/internal/geolocators"
	"log-stats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) geolocators.LocationAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := geolocators.NewGeopluginClient(server.URL+"/json.gp", geolocators.NewWindowLimiter(100, time.Second), time.Second)
	require.NoError(t, err)
	return client
}

func TestGeopluginClient_Locate(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json.gp", r.URL.Path)
		assert.Equal(t, "147.229.2.90", r.URL.Query().Get("ip"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"geoplugin_request": "147.229.2.90", "geoplugin_countryName": "Czechia"}`))
	})

	assert.Equal(t, "Czechia", client.Locate(context.Background(), "147.229.2.90"))
}

func TestGeopluginClient_Locate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>blocked</html>`))
			},
		},
		{
			name: "missing field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"geoplugin_status": 404}`))
			},
		},
		{
			name: "empty country",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"geoplugin_countryName": ""}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newClient(t, tt.handler)
			assert.Equal(t, models.Unknown, client.Locate(context.Background(), "10.0.0.1"))
		})
	}
}

func TestGeopluginClient_Locate_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := geolocators.NewGeopluginClient(url, nil, time.Second)
	require.NoError(t, err)
	assert.Equal(t, models.Unknown, client.Locate(context.Background(), "10.0.0.1"))
}

func TestGeopluginClient_Locate_Cancelled(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected after cancellation")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, models.Unknown, client.Locate(ctx, "10.0.0.1"))
}

func TestNewGeopluginClient_InvalidURL(t *testing.T) {
	t.Parallel()

	client, err := geolocators.NewGeopluginClient("not a url", nil, 0)
	assert.Nil(t, client)
	assert.Error(t, err)
}
