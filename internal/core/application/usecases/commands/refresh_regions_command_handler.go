package commands

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/ports"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// RefreshRegionsCommandHandler fetches the central area, the no-fly zones
// and the restaurants from the data provider and publishes them as one
// snapshot. The three requests run concurrently; if any of them fails, or a
// polygon has fewer than three vertices, the held snapshot is left alone.
type RefreshRegionsCommandHandler struct {
	source ports.RegionSource
	store  ports.RegionStore
	now    func() time.Time
	logger *slog.Logger
}

// NewRefreshRegionsCommandHandler creates a handler that reads from source
// and writes to store.
func NewRefreshRegionsCommandHandler(
	source ports.RegionSource,
	store ports.RegionStore,
	logger *slog.Logger,
) RefreshRegionsCommandHandler {
	return RefreshRegionsCommandHandler{
		source: source,
		store:  store,
		now:    time.Now,
		logger: logger.With("component", "refresh_regions_handler"),
	}
}

// Handle loads and publishes a new snapshot. Provider failures and invalid
// provider data are wrapped in ports.ErrRegionDataUnavailable.
func (h RefreshRegionsCommandHandler) Handle(ctx context.Context, cmd RefreshRegionsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var (
		central     region.NamedRegion
		zones       []region.NamedRegion
		restaurants []order.Restaurant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		central, err = h.source.CentralArea(gctx)
		return wrapFetch("central area", err)
	})
	g.Go(func() (err error) {
		zones, err = h.source.NoFlyZones(gctx)
		return wrapFetch("no-fly zones", err)
	})
	g.Go(func() (err error) {
		restaurants, err = h.source.Restaurants(gctx)
		return wrapFetch("restaurants", err)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrRegionDataUnavailable, err)
	}

	if err := region.Validate(central); err != nil {
		return fmt.Errorf("%w: central area %q: %w", ports.ErrRegionDataUnavailable, central.Name, err)
	}
	for _, z := range zones {
		if err := region.Validate(z); err != nil {
			return fmt.Errorf("%w: no-fly zone %q: %w", ports.ErrRegionDataUnavailable, z.Name, err)
		}
	}

	data := ports.RegionData{
		CentralArea: central,
		NoFlyZones:  zones,
		Restaurants: restaurants,
		Fingerprint: Fingerprint(central, zones),
		FetchedAt:   h.now(),
	}
	if err := h.store.Replace(ctx, data); err != nil {
		return fmt.Errorf("failed to store region snapshot: %w", err)
	}

	h.logger.InfoContext(ctx, "Region data refreshed",
		"central_area", central.Name,
		"no_fly_zones", len(zones),
		"restaurants", len(restaurants),
		"fingerprint", data.Fingerprint,
	)
	return nil
}

func wrapFetch(what string, err error) error {
	if err != nil {
		return fmt.Errorf("fetch %s: %w", what, err)
	}
	return nil
}

// Fingerprint hashes the geometry of the central area and the no-fly zones.
// Names are ignored; only vertex coordinates and their order count.
func Fingerprint(central region.Region, zones []region.NamedRegion) string {
	d := xxhash.New()
	buf := make([]byte, 0, 16)

	write := func(r region.Region) {
		vs := r.Vertices()
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(len(vs)))
		_, _ = d.Write(buf)
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v.Lng()))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Lat()))
			_, _ = d.Write(buf)
		}
	}

	write(central)
	for _, z := range zones {
		write(z)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
