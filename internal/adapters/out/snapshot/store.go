// Package snapshot holds the region data the service plans against in
// memory and loads it on first use.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// LoadTimeout bounds one shared load. The load outlives the request that
// started it, so the request's own deadline does not apply.
const LoadTimeout = 30 * time.Second

var _ ports.RegionStore = (*Store)(nil)

// Store keeps one RegionData snapshot. Replace swaps the whole snapshot, so a
// reader never sees a mix of two refreshes.
type Store struct {
	mu   sync.RWMutex
	data *ports.RegionData
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the held snapshot, or an errs.ErrObjectNotFound error when
// nothing has been stored yet.
func (s *Store) Current(_ context.Context) (ports.RegionData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return ports.RegionData{}, errs.NewObjectNotFoundError("region snapshot", "current")
	}
	return *s.data, nil
}

// Replace stores a copy of data. The slices are cloned so the caller may keep
// using its own.
func (s *Store) Replace(_ context.Context, data ports.RegionData) error {
	data.NoFlyZones = slices.Clone(data.NoFlyZones)
	data.Restaurants = slices.Clone(data.Restaurants)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = &data
	return nil
}

// LoadFunc fills a store, typically by running the refresh command.
type LoadFunc func(ctx context.Context) error

// ReadThrough serves from a Store and runs a LoadFunc when the store is still
// empty. Concurrent callers that find the store empty share one load.
type ReadThrough struct {
	store *Store
	load  LoadFunc
	group singleflight.Group
}

var _ ports.RegionProvider = (*ReadThrough)(nil)

func NewReadThrough(store *Store, load LoadFunc) *ReadThrough {
	return &ReadThrough{store: store, load: load}
}

// Current returns the stored snapshot, loading it first if needed. A failed
// load is reported as ports.ErrRegionDataUnavailable.
func (r *ReadThrough) Current(ctx context.Context) (ports.RegionData, error) {
	data, err := r.store.Current(ctx)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ports.RegionData{}, err
	}

	_, err, _ = r.group.Do("load", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return nil, r.load(loadCtx)
	})
	if err != nil {
		if errors.Is(err, ports.ErrRegionDataUnavailable) {
			return ports.RegionData{}, err
		}
		return ports.RegionData{}, fmt.Errorf("%w: %w", ports.ErrRegionDataUnavailable, err)
	}
	return r.store.Current(ctx)
}
