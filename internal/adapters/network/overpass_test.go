package network

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/httpx"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="Overpass API">
  <node id="1" lat="12.9700000" lon="77.5900000"/>
  <node id="2" lat="12.9705000" lon="77.5900000"/>
  <node id="3" lat="12.9710000" lon="77.5900000"/>
  <node id="4" lat="12.9710000" lon="77.5910000"/>
  <way id="500">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Church Street"/>
  </way>
  <way id="501">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
  </way>
</osm>`

func newProvider(t *testing.T, srv *httptest.Server) *OverpassProvider {
	t.Helper()
	client := httpx.NewClient(2 * time.Second)
	client.Backoff = time.Millisecond
	p, err := NewOverpassProvider(srv.URL, client, nil)
	require.NoError(t, err)
	return p
}

func TestOverpassNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Contains(t, form.Get("data"), "(around:15000,12.9716000,77.5946000)")
		assert.Contains(t, form.Get("data"), "out body;")

		w.Header().Set("Content-Type", "application/osm3s+xml")
		_, _ = w.Write([]byte(sampleOSM))
	}))
	defer srv.Close()

	g, err := newProvider(t, srv).Network(context.Background(), domain.Coordinates{Lat: 12.9716, Lon: 77.5946}, 15000)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	e, ok := g.Edge(1, 3)
	require.True(t, ok)
	assert.Equal(t, "Church Street", e.Name)
	_, ok = g.Edge(4, 3)
	assert.False(t, ok)
}

func TestOverpassEmptyNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<osm version="0.6"></osm>`))
	}))
	defer srv.Close()

	_, err := newProvider(t, srv).Network(context.Background(), domain.Coordinates{Lat: 1, Lon: 1}, 100)
	assert.True(t, errors.Is(err, domain.ErrEmptyNetwork))
}

func TestOverpassUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newProvider(t, srv).Network(context.Background(), domain.Coordinates{Lat: 1, Lon: 1}, 100)
	assert.True(t, errors.Is(err, domain.ErrNetworkFetch))
}

func TestOverpassMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<osm><node id="1"`))
	}))
	defer srv.Close()

	_, err := newProvider(t, srv).Network(context.Background(), domain.Coordinates{Lat: 1, Lon: 1}, 100)
	assert.True(t, errors.Is(err, domain.ErrNetworkFetch))
}

func TestOverpassRejectsBadArguments(t *testing.T) {
	p, err := NewOverpassProvider("http://localhost", httpx.NewClient(time.Second), nil)
	require.NoError(t, err)

	_, err = p.Network(context.Background(), domain.Coordinates{Lat: 91, Lon: 0}, 100)
	assert.Error(t, err)
	_, err = p.Network(context.Background(), domain.Coordinates{Lat: 0, Lon: 0}, 0)
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(domain.Coordinates{Lat: 1.5, Lon: -2.25}, 500)
	assert.True(t, strings.HasPrefix(q, "[out:xml]"))
	assert.Contains(t, q, "(around:500,1.5000000,-2.2500000)")
	assert.Contains(t, q, "residential")
}
