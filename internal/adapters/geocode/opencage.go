package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/httpx"
	"route-finder-service/internal/platform/obs"
	"route-finder-service/internal/ports"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// OpenCageGeocoder implements ports.Geocoder using the OpenCage geocoding API.
//
// It coordinates:
//   - Query normalization
//   - Optional persistent geocode caching
//   - De-duplication of concurrent identical lookups
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type OpenCageGeocoder struct {
	client  *httpx.Client
	apiKey  string
	baseURL string
	cache   ports.GeocodeCache
	group   singleflight.Group
	log     *zap.Logger
}

// NewOpenCageGeocoder builds a geocoder. cache may be nil to disable caching.
func NewOpenCageGeocoder(
	apiKey string,
	baseURL string,
	client *httpx.Client,
	cache ports.GeocodeCache,
	log *zap.Logger,
) (*OpenCageGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenCage api key is empty")
	}
	if client == nil {
		return nil, errors.New("OpenCage http client is nil")
	}
	if baseURL == "" {
		baseURL = "https://api.opencagedata.com"
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &OpenCageGeocoder{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
		log:     log,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (o *OpenCageGeocoder) Geocode(ctx context.Context, text string) (domain.Coordinates, error) {
	norm := normalize(text)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: empty query", domain.ErrLocationNotFound)
	}

	v, err, _ := o.group.Do(norm, func() (any, error) {
		return o.lookup(ctx, norm)
	})
	if err != nil {
		return domain.Coordinates{}, err
	}

	return v.(domain.Coordinates), nil
}

// lookup checks the cache before calling the API and stores fresh results.
// Cache failures never fail the lookup.
func (o *OpenCageGeocoder) lookup(ctx context.Context, norm string) (domain.Coordinates, error) {
	if o.cache != nil {
		hits, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			o.log.Warn("geocode cache read failed", zap.String("query", norm), zap.Error(err))
		} else if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	c, err := o.fetch(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.Coordinates{norm: c}); err != nil {
			o.log.Warn("geocode cache write failed", zap.String("query", norm), zap.Error(err))
		}
	}

	return c, nil
}

// fetch resolves a single query with OpenCage (/geocode/v1/json).
func (o *OpenCageGeocoder) fetch(ctx context.Context, norm string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "opencage.fetch")(&err)

	endpoint := o.baseURL + "/geocode/v1/json"

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("key", o.apiKey)
		q.Set("limit", "1")
		q.Set("no_annotations", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return domain.Coordinates{}, &domain.GeocodeStatusError{StatusCode: se.Code}
		}
		return domain.Coordinates{}, fmt.Errorf("%w: execute request: %v", domain.ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, &domain.GeocodeStatusError{StatusCode: resp.StatusCode}
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: decode geocode response: %v", domain.ErrGeocodingFailed, err)
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no geocode results for %q", domain.ErrLocationNotFound, norm)
	}

	g := decoded.Results[0].Geometry
	if g.Lat == nil || g.Lng == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: invalid coordinate format for %q", domain.ErrGeocodingFailed, norm)
	}

	c := domain.Coordinates{Lat: *g.Lat, Lon: *g.Lng}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("%w: coordinates out of range for %q: %s", domain.ErrGeocodingFailed, norm, c)
	}

	return c, nil
}
