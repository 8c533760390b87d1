package ports

import (
	"context"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
)

// RegionSource reads region data from the ILP data provider.
type RegionSource interface {
	// CentralArea returns the polygon drones may not leave once entered.
	CentralArea(ctx context.Context) (region.NamedRegion, error)

	// NoFlyZones returns the polygons no waypoint may fall into.
	NoFlyZones(ctx context.Context) ([]region.NamedRegion, error)

	// Restaurants returns the participating restaurants with their menus.
	Restaurants(ctx context.Context) ([]order.Restaurant, error)
}
