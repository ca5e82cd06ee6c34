// Package routing implements the RoutingProvider port against an OSRM-compatible
// HTTP service. Estimates are advisory: callers fall back to straight-line
// distance when the service is unreachable.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// profileFor maps a vehicle class onto an OSRM routing profile.
func profileFor(vehicle courier.Vehicle) string {
	switch vehicle {
	case courier.VehicleWalking:
		return "foot"
	case courier.VehicleBicycle, courier.VehicleEScooter:
		return "bike"
	default:
		return "driving"
	}
}

// Client calls an OSRM "route" endpoint. Every request carries a bounded
// timeout so a slow routing service cannot stall delivery creation or
// assignment.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client for the given OSRM base URL. A
// non-positive timeout falls back to the default of five seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// CalculateRoute implements ports.RoutingProvider. Coordinates go on the URL
// in OSRM's lon,lat order.
func (c *Client) CalculateRoute(ctx context.Context, origin, destination kernel.GeoPoint, vehicle courier.Vehicle) (ports.Route, error) {
	if err := origin.Validate(); err != nil {
		return ports.Route{}, err
	}
	if err := destination.Validate(); err != nil {
		return ports.Route{}, err
	}

	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		c.baseURL,
		profileFor(vehicle),
		origin.Longitude(), origin.Latitude(),
		destination.Longitude(), destination.Latitude(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Route{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Route{}, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.Route{}, fmt.Errorf("routing service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.Route{}, fmt.Errorf("decoding routing response: %w", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return ports.Route{}, fmt.Errorf("routing service found no route (code %q)", parsed.Code)
	}

	return ports.Route{
		DistanceMeters:  parsed.Routes[0].Distance,
		DurationSeconds: int(parsed.Routes[0].Duration),
	}, nil
}
