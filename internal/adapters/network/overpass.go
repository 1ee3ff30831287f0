package network

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"route-finder-service/internal/domain"
	"route-finder-service/internal/platform/httpx"
	"route-finder-service/internal/platform/obs"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

const highwayFilter = "^(motorway|motorway_link|trunk|trunk_link|primary|primary_link|" +
	"secondary|secondary_link|tertiary|tertiary_link|unclassified|residential|living_street|road)$"

// OverpassProvider implements ports.NetworkProvider by downloading OSM ways
// from an Overpass API instance.
type OverpassProvider struct {
	client   *httpx.Client
	endpoint string
	log      *zap.Logger
}

func NewOverpassProvider(endpoint string, client *httpx.Client, log *zap.Logger) (*OverpassProvider, error) {
	if endpoint == "" {
		return nil, errors.New("overpass endpoint is empty")
	}
	if client == nil {
		return nil, errors.New("overpass http client is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OverpassProvider{client: client, endpoint: endpoint, log: log}, nil
}

// BuildQuery returns the Overpass QL query for drivable ways within
// radiusMeters of center, including their nodes.
func BuildQuery(center domain.Coordinates, radiusMeters float64) string {
	around := fmt.Sprintf("(around:%s,%s,%s)",
		strconv.FormatFloat(radiusMeters, 'f', 0, 64),
		strconv.FormatFloat(center.Lat, 'f', 7, 64),
		strconv.FormatFloat(center.Lon, 'f', 7, 64),
	)

	var b strings.Builder
	b.WriteString("[out:xml][timeout:180];\n")
	b.WriteString(`way["highway"~"` + highwayFilter + `"]["area"!~"yes"]["access"!~"^(private|no)$"]` + around + ";\n")
	b.WriteString("(._;>;);\n")
	b.WriteString("out body;\n")
	return b.String()
}

func (p *OverpassProvider) Network(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters float64,
) (_ *domain.RoadGraph, err error) {
	defer obs.Time(ctx, "overpass.Network")(&err)

	if !center.Valid() {
		return nil, fmt.Errorf("overpass network: invalid center %s", center)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("overpass network: radius must be positive, got %v", radiusMeters)
	}

	form := url.Values{}
	form.Set("data", BuildQuery(center, radiusMeters))
	payload := form.Encode()

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := httpx.NewRequest(ctx, http.MethodPost, p.endpoint, strings.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/osm3s+xml, application/xml")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: overpass request: %v", domain.ErrNetworkFetch, err)
	}
	defer resp.Body.Close()

	data := &osm.OSM{}
	if err := xml.NewDecoder(resp.Body).Decode(data); err != nil {
		return nil, fmt.Errorf("%w: decode overpass response: %v", domain.ErrNetworkFetch, err)
	}

	g, err := BuildRoadGraph(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFetch, err)
	}
	if g.EdgeCount() == 0 {
		return nil, fmt.Errorf("%w: no drivable roads within %.0f m of %s", domain.ErrEmptyNetwork, radiusMeters, center)
	}

	p.log.Info("road network loaded",
		zap.Stringer("center", center),
		zap.Float64("radius_m", radiusMeters),
		zap.Int("osm_nodes", len(data.Nodes)),
		zap.Int("osm_ways", len(data.Ways)),
		zap.Int("graph_nodes", g.NodeCount()),
		zap.Int("graph_edges", g.EdgeCount()),
	)

	return g, nil
}
