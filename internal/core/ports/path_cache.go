package ports

import (
	"context"
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services"
)

// PathKey identifies a search result. Searches are deterministic, so the same
// endpoints over the same regions always yield the same path. MaxExpansions is
// part of the key because an exhausted search depends on the budget.
type PathKey struct {
	Start         kernel.Position
	End           kernel.Position
	Fingerprint   string
	MaxExpansions int
}

// String renders the key for key-value stores.
func (k PathKey) String() string {
	return fmt.Sprintf("path:v2:%s:%d:%g,%g:%g,%g",
		k.Fingerprint, k.MaxExpansions, k.Start.Lng(), k.Start.Lat(), k.End.Lng(), k.End.Lat())
}

// PathCache stores search results, including empty ones.
type PathCache interface {
	// Get returns the cached path. found is false on a miss.
	Get(ctx context.Context, key PathKey) (path services.Path, found bool, err error)

	// Put stores path. An empty path records that no route exists.
	Put(ctx context.Context, key PathKey, path services.Path) error
}

// SearchMetrics records what delivery-path planning did.
type SearchMetrics interface {
	ObserveSearch(path services.Path, seconds float64)
	ObserveCache(hit bool)
}
