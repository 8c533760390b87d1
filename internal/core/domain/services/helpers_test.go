package services_test

import (
	"testing"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/region"

	"github.com/stretchr/testify/require"
)

func pos(t *testing.T, lng, lat float64) kernel.Position {
	t.Helper()
	p, err := kernel.NewPosition(lng, lat)
	require.NoError(t, err)
	return p
}

func box(t *testing.T, minLng, minLat, maxLng, maxLat float64) region.Polygon {
	t.Helper()
	p, err := region.FromPairs([][2]float64{
		{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat},
	})
	require.NoError(t, err)
	return p
}

func wholePlane(t *testing.T) region.Polygon {
	t.Helper()
	return box(t, -180, -90, 180, 90)
}

func mustPolygon(t *testing.T, pairs ...[2]float64) region.Polygon {
	t.Helper()
	p, err := region.FromPairs(pairs)
	require.NoError(t, err)
	return p
}
