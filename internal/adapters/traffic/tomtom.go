package traffic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/httpx"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type flowSegmentResponse struct {
	FlowSegmentData *struct {
		CurrentSpeed  *float64 `json:"currentSpeed"`
		FreeFlowSpeed *float64 `json:"freeFlowSpeed"`
	} `json:"flowSegmentData"`
}

// TomTomSampler implements ports.TrafficSampler with the TomTom Traffic Flow
// "flowSegmentData" endpoint. Every call hits the API; nothing is cached.
type TomTomSampler struct {
	client  *httpx.Client
	apiKey  string
	baseURL string
	zoom    int
	limiter *rate.Limiter
	log     *zap.Logger
}

type TomTomOption func(*TomTomSampler)

// WithZoom sets the map zoom level used to pick the flow segment (default 10).
func WithZoom(zoom int) TomTomOption {
	return func(s *TomTomSampler) { s.zoom = zoom }
}

// WithRateLimit caps outgoing requests per second. qps <= 0 disables limiting.
func WithRateLimit(qps float64) TomTomOption {
	return func(s *TomTomSampler) {
		if qps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
}

func WithBaseURL(baseURL string) TomTomOption {
	return func(s *TomTomSampler) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func NewTomTomSampler(apiKey string, client *httpx.Client, log *zap.Logger, opts ...TomTomOption) (*TomTomSampler, error) {
	if apiKey == "" {
		return nil, errors.New("TomTom api key is empty")
	}
	if client == nil {
		return nil, errors.New("TomTom http client is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &TomTomSampler{
		client:  client,
		apiKey:  apiKey,
		baseURL: "https://api.tomtom.com",
		zoom:    10,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sample returns the congestion at a point. Any failure (rate limiting,
// unsupported location, transport error, malformed body) yields a no_data sample.
func (s *TomTomSampler) Sample(ctx context.Context, at domain.Coordinates) domain.CongestionSample {
	current, freeFlow, err := s.fetch(ctx, at)
	if err != nil {
		s.log.Debug("traffic sample unavailable", zap.Stringer("point", at), zap.Error(err))
		return domain.NoDataSample()
	}
	return domain.ClassifySpeeds(current, freeFlow)
}

func (s *TomTomSampler) fetch(ctx context.Context, at domain.Coordinates) (float64, float64, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return 0, 0, fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/traffic/services/4/flowSegmentData/absolute/%d/json", s.baseURL, s.zoom)
	req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, err
	}
	q := req.URL.Query()
	q.Set("key", s.apiKey)
	q.Set("point", formatPoint(at))
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded flowSegmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, 0, fmt.Errorf("decode flow segment response: %w", err)
	}

	fsd := decoded.FlowSegmentData
	if fsd == nil || fsd.CurrentSpeed == nil || fsd.FreeFlowSpeed == nil {
		return 0, 0, errors.New("flow segment response lacks currentSpeed or freeFlowSpeed")
	}

	return *fsd.CurrentSpeed, *fsd.FreeFlowSpeed, nil
}

func formatPoint(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}
