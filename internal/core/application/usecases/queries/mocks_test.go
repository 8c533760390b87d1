package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RegionProvider struct{ mock.Mock }

func (m *RegionProvider) Current(ctx context.Context) (ports.RegionData, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.RegionData), args.Error(1)
}

type PathCache struct{ mock.Mock }

func (m *PathCache) Get(ctx context.Context, key ports.PathKey) (services.Path, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(services.Path), args.Bool(1), args.Error(2)
}

func (m *PathCache) Put(ctx context.Context, key ports.PathKey, path services.Path) error {
	args := m.Called(ctx, key, path)
	return args.Error(0)
}

type SearchMetrics struct{ mock.Mock }

func (m *SearchMetrics) ObserveSearch(path services.Path, seconds float64) {
	m.Called(path, seconds)
}

func (m *SearchMetrics) ObserveCache(hit bool) {
	m.Called(hit)
}

// 2025-01-27 is a Monday.
var now = time.Date(2025, time.January, 27, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pos(t *testing.T, lng, lat float64) kernel.Position {
	t.Helper()
	p, err := kernel.NewPosition(lng, lat)
	require.NoError(t, err)
	return p
}

func box(t *testing.T, name string, minLng, minLat, maxLng, maxLat float64) region.NamedRegion {
	t.Helper()
	poly, err := region.FromPairs([][2]float64{
		{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat},
	})
	require.NoError(t, err)
	return region.NamedRegion{Name: name, Polygon: poly}
}

// regionData places one restaurant at the origin; the drop-off used by the
// tests is two moves east of it.
func regionData(t *testing.T, zones ...region.NamedRegion) ports.RegionData {
	t.Helper()
	return ports.RegionData{
		CentralArea: box(t, "central", -1, -1, 1, 1),
		NoFlyZones:  zones,
		Restaurants: []order.Restaurant{{
			Name:        "Civerinos Slice",
			Location:    pos(t, 0, 0),
			OpeningDays: []time.Weekday{time.Monday},
			Menu: []order.Pizza{
				{Name: "R1: Margarita", PriceInPence: 1000},
				{Name: "R1: Calzone", PriceInPence: 1400},
			},
		}},
		Fingerprint: "f00d",
	}
}

func validOrder() order.Order {
	return order.Order{
		OrderNo:           "19514FE0",
		OrderDate:         "2025-01-27",
		PriceTotalInPence: 2500,
		Pizzas: []order.Pizza{
			{Name: "R1: Margarita", PriceInPence: 1000},
			{Name: "R1: Calzone", PriceInPence: 1400},
		},
		CreditCard: order.CreditCard{Number: "4000400040004000", Expiry: "04/25", CVV: "123"},
	}
}
