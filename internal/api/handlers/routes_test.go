package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"route-finder-service/internal/adapters/session"
	"route-finder-service/internal/api/dto"
	"route-finder-service/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	results map[string]*domain.RouteResult
	err     error
	calls   int
	ctxs    []context.Context
}

func (s *stubFinder) FindRoutes(ctx context.Context, startText, endText string) (*domain.RouteResult, error) {
	s.calls++
	s.ctxs = append(s.ctxs, ctx)
	if s.err != nil {
		return nil, s.err
	}
	if res, ok := s.results[startText]; ok {
		return res, nil
	}
	return nil, &domain.LocationError{
		Role:  "start",
		Query: startText,
		Err:   fmt.Errorf("%w: no results", domain.ErrLocationNotFound),
	}
}

func routeResult(start string) *domain.RouteResult {
	a := domain.Coordinates{Lat: 12.9756, Lon: 77.6066}
	b := domain.Coordinates{Lat: 12.9760, Lon: 77.6100}
	c := domain.Coordinates{Lat: 12.9698, Lon: 77.7500}
	return &domain.RouteResult{
		Start: domain.Location{Query: start, Coordinates: a},
		End:   domain.Location{Query: "Whitefield, Bangalore", Coordinates: c},
		Selection: domain.SelectionResult{
			Candidates: []domain.Path{{1, 2, 3}, {1, 4, 3}},
			Scores:     []int{2, 1},
			BestIndex:  1,
		},
		CandidatePoints: [][]domain.Coordinates{{a, b, c}, {a, b, c}},
		Map: domain.RouteMap{
			Center: a,
			Zoom:   14,
			Tiles:  "https://tiles.example/{z}/{x}/{y}.png",
			Polylines: []domain.Polyline{
				{Points: []domain.Coordinates{a, b, c}, Color: "green", Weight: 5, Opacity: 1, Tooltip: "Best Route"},
			},
			Markers: []domain.Marker{{At: a, Popup: "Start", Color: "blue"}, {At: c, Popup: "End", Color: "red"}},
		},
		ComputedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func newHandler(finder RouteFinder) (*RouteHandler, *session.MemoryStore) {
	store := session.NewMemoryStore()
	h := NewRouteHandler(finder, store, dto.RouteQuery{
		Start: "MG Road, Bangalore",
		End:   "Whitefield, Bangalore",
	}, nil)
	return h, store
}

func postForm(h *RouteHandler, cookie *http.Cookie, start, end string) *httptest.ResponseRecorder {
	form := url.Values{"start": {start}, "end": {end}}
	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Submit(rec, req, nil)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", SessionCookie)
	return nil
}

func TestIndexShowsDefaults(t *testing.T) {
	h, _ := newHandler(&stubFinder{})

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="MG Road, Bangalore"`)
	assert.Contains(t, body, `value="Whitefield, Bangalore"`)
	assert.Contains(t, body, "Find Routes")
	assert.NotContains(t, body, "<iframe")
	sessionCookie(t, rec)
}

func TestSubmitStoresMap(t *testing.T) {
	finder := &stubFinder{results: map[string]*domain.RouteResult{
		"MG Road, Bangalore": routeResult("MG Road, Bangalore"),
	}}
	h, store := newHandler(finder)

	rec := postForm(h, nil, "MG Road, Bangalore", "Whitefield, Bangalore")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Start Coordinates")
	assert.Contains(t, body, "(12.975600, 77.606600)")
	assert.Contains(t, body, "2 candidate route(s)")
	assert.Contains(t, body, `<iframe src="/map"`)

	cookie := sessionCookie(t, rec)
	saved, ok, err := store.Load(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, finder.results["MG Road, Bangalore"], saved)

	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	req.AddCookie(cookie)
	mapRec := httptest.NewRecorder()
	h.Map(mapRec, req, nil)

	assert.Equal(t, http.StatusOK, mapRec.Code)
	assert.Contains(t, mapRec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, mapRec.Body.String(), "Best Route")
}

func TestSubmitFailureKeepsPreviousMap(t *testing.T) {
	finder := &stubFinder{results: map[string]*domain.RouteResult{
		"MG Road, Bangalore": routeResult("MG Road, Bangalore"),
	}}
	h, store := newHandler(finder)

	first := postForm(h, nil, "MG Road, Bangalore", "Whitefield, Bangalore")
	require.Equal(t, http.StatusOK, first.Code)
	cookie := sessionCookie(t, first)

	rec := postForm(h, cookie, "Atlantis, Nowhere", "Whitefield, Bangalore")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Error: start location")
	assert.Contains(t, body, "Atlantis, Nowhere")
	assert.Contains(t, body, "not found")
	assert.Contains(t, body, `<iframe src="/map"`)

	saved, ok, err := store.Load(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "MG Road, Bangalore", saved.Start.Query)
}

func TestSubmitNoRoutesFound(t *testing.T) {
	res := routeResult("Here")
	res.Selection = domain.EmptySelection()
	res.CandidatePoints = [][]domain.Coordinates{}
	h, _ := newHandler(&stubFinder{results: map[string]*domain.RouteResult{"Here": res}})

	rec := postForm(h, nil, "Here", "Here")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No routes found")
}

func TestSubmitValidation(t *testing.T) {
	finder := &stubFinder{}
	h, _ := newHandler(finder)

	rec := postForm(h, nil, "   ", "Whitefield, Bangalore")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start is a required field")
	assert.Equal(t, 0, finder.calls)
}

func TestSubmitDetachesFromClientCancellation(t *testing.T) {
	finder := &stubFinder{results: map[string]*domain.RouteResult{"A": routeResult("A")}}
	h, _ := newHandler(finder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	form := url.Values{"start": {"A"}, "end": {"B"}}
	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(form.Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, finder.ctxs, 1)
	assert.NoError(t, finder.ctxs[0].Err())
}

func TestMapWithoutResult(t *testing.T) {
	h, _ := newHandler(&stubFinder{})

	rec := httptest.NewRecorder()
	h.Map(rec, httptest.NewRequest(http.MethodGet, "/map", nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "3f1e2a4c-8b7d-4c6e-9f0a-1b2c3d4e5f60"})
	rec = httptest.NewRecorder()
	h.Map(rec, req, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPISuccess(t *testing.T) {
	h, _ := newHandler(&stubFinder{results: map[string]*domain.RouteResult{"A": routeResult("A")}})

	rec := httptest.NewRecorder()
	h.API(rec, httptest.NewRequest(http.MethodGet, "/api/routes?start=A&end=B", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RoutesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "A", resp.Start.Query)
	assert.Equal(t, 12.9756, resp.Start.Coordinates.Lat)
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, []int64{1, 2, 3}, resp.Candidates[0].Nodes)
	assert.Equal(t, 2, resp.Candidates[0].Score)
	assert.False(t, resp.Candidates[0].Best)
	assert.True(t, resp.Candidates[1].Best)
	assert.NotEmpty(t, resp.Candidates[0].Polyline)
	require.NotNil(t, resp.BestIndex)
	assert.Equal(t, 1, *resp.BestIndex)
}

func TestAPINoRoutes(t *testing.T) {
	res := routeResult("A")
	res.Selection = domain.EmptySelection()
	res.CandidatePoints = nil
	h, _ := newHandler(&stubFinder{results: map[string]*domain.RouteResult{"A": res}})

	rec := httptest.NewRecorder()
	h.API(rec, httptest.NewRequest(http.MethodGet, "/api/routes?start=A&end=A", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"best_index":null`)
	assert.Contains(t, rec.Body.String(), `"candidates":[]`)
}

func TestAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{
			name:   "location not found",
			err:    &domain.LocationError{Role: "end", Query: "Atlantis", Err: domain.ErrLocationNotFound},
			status: http.StatusUnprocessableEntity,
			msg:    `end location "Atlantis" not found`,
		},
		{
			name:   "geocoding failure",
			err:    &domain.LocationError{Role: "start", Query: "A", Err: &domain.GeocodeStatusError{StatusCode: 503}},
			status: http.StatusBadGateway,
			msg:    `failed to fetch coordinates for start location "A": geocoding service failure: HTTP 503`,
		},
		{
			name:   "network fetch",
			err:    fmt.Errorf("find routes: %w", domain.ErrNetworkFetch),
			status: http.StatusBadGateway,
			msg:    "failed to fetch the road network",
		},
		{
			name:   "empty network",
			err:    fmt.Errorf("find routes: %w", domain.ErrEmptyNetwork),
			status: http.StatusUnprocessableEntity,
			msg:    "no drivable roads found around the start location",
		},
		{
			name:   "unexpected",
			err:    fmt.Errorf("boom"),
			status: http.StatusInternalServerError,
			msg:    "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newHandler(&stubFinder{err: tc.err})

			rec := httptest.NewRecorder()
			h.API(rec, httptest.NewRequest(http.MethodGet, "/api/routes?start=A&end=B", nil), nil)

			assert.Equal(t, tc.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestAPIValidation(t *testing.T) {
	finder := &stubFinder{}
	h, _ := newHandler(finder)

	rec := httptest.NewRecorder()
	h.API(rec, httptest.NewRequest(http.MethodGet, "/api/routes?start=A", nil), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end is a required field")

	rec = httptest.NewRecorder()
	long := strings.Repeat("x", 201)
	h.API(rec, httptest.NewRequest(http.MethodGet, "/api/routes?start="+long+"&end=B", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, finder.calls)
}
