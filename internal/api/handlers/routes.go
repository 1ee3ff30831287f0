package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"route-finder-service/internal/adapters/render"
	"route-finder-service/internal/api/dto"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/obs"
	"route-finder-service/internal/ports"
	"strings"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// RouteFinder runs the route pipeline for a pair of place names.
type RouteFinder interface {
	FindRoutes(ctx context.Context, startText, endText string) (*domain.RouteResult, error)
}

type RouteHandler struct {
	finder   RouteFinder
	store    ports.MapStore
	defaults dto.RouteQuery
	validate *requestValidator
	log      *zap.Logger
}

func NewRouteHandler(finder RouteFinder, store ports.MapStore, defaults dto.RouteQuery, log *zap.Logger) *RouteHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteHandler{
		finder:   finder,
		store:    store,
		defaults: defaults,
		validate: newRequestValidator(),
		log:      log,
	}
}

// Index shows the input form and, if the session has one, the last map.
func (h *RouteHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := ensureSession(w, r)

	data := pageData{Start: h.defaults.Start, End: h.defaults.End}
	data.HasMap = h.hasMap(r.Context(), sid)

	writePage(h.log, w, r, http.StatusOK, data)
}

// Submit runs the pipeline for the submitted form. Only a successful run
// replaces the session's map; on failure the previous map stays on screen.
func (h *RouteHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := ensureSession(w, r)

	if err := r.ParseForm(); err != nil {
		writePage(h.log, w, r, http.StatusBadRequest, pageData{
			Start: h.defaults.Start, End: h.defaults.End,
			Error:  "invalid form body",
			HasMap: h.hasMap(r.Context(), sid),
		})
		return
	}

	q := dto.RouteQuery{
		Start: strings.TrimSpace(r.PostForm.Get("start")),
		End:   strings.TrimSpace(r.PostForm.Get("end")),
	}
	data := pageData{Start: q.Start, End: q.End}

	if err := h.validate.Struct(q); err != nil {
		data.Error = err.Error()
		data.HasMap = h.hasMap(r.Context(), sid)
		writePage(h.log, w, r, http.StatusBadRequest, data)
		return
	}

	// The run is not abandoned when the client goes away.
	ctx := context.WithoutCancel(r.Context())

	res, err := h.finder.FindRoutes(ctx, q.Start, q.End)
	if err != nil {
		status, msg := h.classify(r, err)
		data.Error = msg
		data.HasMap = h.hasMap(ctx, sid)
		writePage(h.log, w, r, status, data)
		return
	}

	if err := h.store.Save(ctx, sid, res); err != nil {
		h.log.Error("save session map failed", zap.String("req_id", obs.RequestID(ctx)), zap.Error(err))
		data.Error = "failed to store the computed map"
		data.HasMap = h.hasMap(ctx, sid)
		writePage(h.log, w, r, http.StatusInternalServerError, data)
		return
	}

	data.Result = res
	data.HasMap = true
	writePage(h.log, w, r, http.StatusOK, data)
}

// Map serves the session's last map as a Leaflet page.
func (h *RouteHandler) Map(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid, ok := existingSession(r)
	if !ok {
		http.Error(w, "no map computed yet", http.StatusNotFound)
		return
	}

	res, ok, err := h.store.Load(r.Context(), sid)
	if err != nil {
		h.log.Error("load session map failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		http.Error(w, "failed to load map", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "no map computed yet", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, res.Map); err != nil {
		h.log.Error("render map failed", zap.Error(err))
		http.Error(w, "failed to render map", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// API runs the pipeline for ?start=&end= and answers with JSON.
func (h *RouteHandler) API(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	q := dto.RouteQuery{
		Start: strings.TrimSpace(query.Get("start")),
		End:   strings.TrimSpace(query.Get("end")),
	}
	if err := h.validate.Struct(q); err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.finder.FindRoutes(context.WithoutCancel(r.Context()), q.Start, q.End)
	if err != nil {
		status, msg := h.classify(r, err)
		writeError(h.log, w, r, status, msg)
		return
	}

	writeJSON(h.log, w, r, http.StatusOK, toRoutesResponse(res))
}

func (h *RouteHandler) hasMap(ctx context.Context, sid string) bool {
	_, ok, err := h.store.Load(ctx, sid)
	if err != nil {
		h.log.Warn("load session map failed", zap.String("req_id", obs.RequestID(ctx)), zap.Error(err))
		return false
	}
	return ok
}

// classify maps a pipeline failure to an HTTP status and a user-facing message.
func (h *RouteHandler) classify(r *http.Request, err error) (int, string) {
	reqID := obs.RequestID(r.Context())

	var locErr *domain.LocationError
	switch {
	case errors.As(err, &locErr) && errors.Is(err, domain.ErrLocationNotFound):
		h.log.Info("location not found", zap.String("req_id", reqID), zap.String("role", locErr.Role), zap.String("query", locErr.Query))
		return http.StatusUnprocessableEntity, locErr.Error()
	case errors.As(err, &locErr):
		h.log.Warn("geocoding failed", zap.String("req_id", reqID), zap.String("role", locErr.Role), zap.Error(err))
		return http.StatusBadGateway, locErr.Error()
	case errors.Is(err, domain.ErrEmptyNetwork):
		h.log.Info("empty road network", zap.String("req_id", reqID), zap.Error(err))
		return http.StatusUnprocessableEntity, "no drivable roads found around the start location"
	case errors.Is(err, domain.ErrNetworkFetch):
		h.log.Warn("road network fetch failed", zap.String("req_id", reqID), zap.Error(err))
		return http.StatusBadGateway, "failed to fetch the road network"
	default:
		h.log.Error("find routes failed", zap.String("req_id", reqID), zap.Error(err))
		return http.StatusInternalServerError, "internal server error"
	}
}

func toLocationResponse(l domain.Location) dto.LocationResponse {
	return dto.LocationResponse{
		Query:       l.Query,
		Coordinates: dto.CoordinatesResponse{Lat: l.Coordinates.Lat, Lon: l.Coordinates.Lon},
	}
}

func toRoutesResponse(res *domain.RouteResult) dto.RoutesResponse {
	out := dto.RoutesResponse{
		Start:      toLocationResponse(res.Start),
		End:        toLocationResponse(res.End),
		Candidates: make([]dto.CandidateResponse, 0, len(res.Selection.Candidates)),
		ComputedAt: res.ComputedAt,
	}

	for i, p := range res.Selection.Candidates {
		nodes := make([]int64, 0, len(p))
		for _, id := range p {
			nodes = append(nodes, int64(id))
		}

		c := dto.CandidateResponse{Nodes: nodes, Best: i == res.Selection.BestIndex}
		if i < len(res.Selection.Scores) {
			c.Score = res.Selection.Scores[i]
		}
		if i < len(res.CandidatePoints) {
			c.Polyline = render.EncodePolyline(res.CandidatePoints[i])
		}
		out.Candidates = append(out.Candidates, c)
	}

	if _, ok := res.Selection.Best(); ok {
		best := res.Selection.BestIndex
		out.BestIndex = &best
	}
	return out
}
