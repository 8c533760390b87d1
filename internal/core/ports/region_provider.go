// Package ports defines the contracts between the delivery-path use cases and
// the infrastructure that feeds them region data and caches their results.
package ports

import (
	"context"
	"errors"
	"time"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
)

// ErrRegionDataUnavailable is returned when no region snapshot is held and
// the data provider could not supply one.
var ErrRegionDataUnavailable = errors.New("region data is unavailable")

// RegionData is one consistent view of the data provider: the central area,
// the no-fly zones and the restaurants, fetched together.
//
// Values handed out by a RegionProvider are shared between requests and must
// be treated as read-only.
type RegionData struct {
	CentralArea region.NamedRegion
	NoFlyZones  []region.NamedRegion
	Restaurants []order.Restaurant

	// Fingerprint changes whenever the geometry changes. Path cache keys
	// include it so cached paths are never served for other regions.
	Fingerprint string
	FetchedAt   time.Time
}

// NoFlyRegions returns the no-fly zones as search regions.
func (d RegionData) NoFlyRegions() []region.Region {
	zones := make([]region.Region, len(d.NoFlyZones))
	for i, z := range d.NoFlyZones {
		zones[i] = z
	}
	return zones
}

// RegionProvider hands out the current region data.
type RegionProvider interface {
	// Current returns the snapshot in use. Implementations that hold no
	// snapshot yet return an error wrapping ErrRegionDataUnavailable or
	// errs.ErrObjectNotFound.
	Current(ctx context.Context) (RegionData, error)
}

// RegionStore keeps the snapshot that RegionProvider serves.
type RegionStore interface {
	RegionProvider

	// Replace swaps the held snapshot for data. Readers holding the previous
	// snapshot keep it unchanged.
	Replace(ctx context.Context, data RegionData) error
}
