// Package ilp reads the central area, the no-fly zones and the restaurants
// from the ILP REST data provider.
package ilp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/ports"
)

const (
	centralAreaPath = "/centralArea"
	noFlyZonesPath  = "/noFlyZones"
	restaurantsPath = "/restaurants"

	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps a response body; real payloads are a few kilobytes.
	maxBodyBytes = 4 << 20
)

var _ ports.RegionSource = (*Client)(nil)

// Observer is told about every request the client makes.
type Observer interface {
	ObserveUpstream(resource string, err error, seconds float64)
}

// Client is a RegionSource backed by the ILP REST service.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
	logger   *slog.Logger
}

// NewClient creates a client for the service at endpoint. A nil httpClient is
// replaced by one with DefaultTimeout; a nil observer is allowed.
func NewClient(endpoint string, httpClient *http.Client, observer Observer, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ILP endpoint %q: %w", endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid ILP endpoint %q: scheme must be http or https", endpoint)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:  base,
		http:     httpClient,
		observer: observer,
		logger:   logger.With("component", "ilp_client"),
	}, nil
}

func (c *Client) CentralArea(ctx context.Context) (region.NamedRegion, error) {
	var dto namedRegionDTO
	if err := c.get(ctx, centralAreaPath, &dto); err != nil {
		return region.NamedRegion{}, err
	}
	return dto.toDomain()
}

func (c *Client) NoFlyZones(ctx context.Context) ([]region.NamedRegion, error) {
	var dtos []namedRegionDTO
	if err := c.get(ctx, noFlyZonesPath, &dtos); err != nil {
		return nil, err
	}

	zones := make([]region.NamedRegion, 0, len(dtos))
	for _, d := range dtos {
		z, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func (c *Client) Restaurants(ctx context.Context) ([]order.Restaurant, error) {
	var dtos []restaurantDTO
	if err := c.get(ctx, restaurantsPath, &dtos); err != nil {
		return nil, err
	}

	restaurants := make([]order.Restaurant, 0, len(dtos))
	for _, d := range dtos {
		r, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

func (c *Client) get(ctx context.Context, path string, out any) (err error) {
	resource := strings.TrimPrefix(path, "/")
	started := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstream(resource, err, time.Since(started).Seconds())
		}
		if err != nil {
			c.logger.WarnContext(ctx, "ILP request failed", "resource", resource, "error", err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}

	c.logger.DebugContext(ctx, "ILP request done", "resource", resource, "duration", time.Since(started))
	return nil
}
