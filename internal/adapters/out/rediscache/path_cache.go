// Package rediscache stores planned delivery paths in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 24 * time.Hour

var _ ports.PathCache = (*PathCache)(nil)

type pathDTO struct {
	Waypoints [][2]float64 `json:"waypoints"`
	Angles    []float64    `json:"angles"`
	Expanded  int          `json:"expanded"`
	Exhausted bool         `json:"exhausted,omitempty"`
}

// PathCache is a ports.PathCache backed by Redis. Keys come from
// ports.PathKey and expire after the configured TTL. Empty paths are stored
// too, so an unreachable drop-off is not searched again until the region
// fingerprint changes or the entry expires.
type PathCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPathCache wraps client. A ttl of zero or less uses DefaultTTL.
func NewPathCache(client *redis.Client, ttl time.Duration) *PathCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PathCache{client: client, ttl: ttl}
}

// NewClient opens a client for addr. It does not dial until first use.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (c *PathCache) Get(ctx context.Context, key ports.PathKey) (services.Path, bool, error) {
	raw, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return services.Path{}, false, nil
	}
	if err != nil {
		return services.Path{}, false, fmt.Errorf("redis get: %w", err)
	}

	var dto pathDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return services.Path{}, false, fmt.Errorf("decode cached path: %w", err)
	}
	path, err := dto.toDomain()
	if err != nil {
		return services.Path{}, false, fmt.Errorf("decode cached path: %w", err)
	}
	return path, true, nil
}

func (c *PathCache) Put(ctx context.Context, key ports.PathKey, path services.Path) error {
	raw, err := json.Marshal(fromDomain(path))
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key.String(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func fromDomain(p services.Path) pathDTO {
	dto := pathDTO{
		Waypoints: make([][2]float64, len(p.Waypoints)),
		Angles:    make([]float64, len(p.Angles)),
		Expanded:  p.Expanded,
		Exhausted: p.Exhausted,
	}
	for i, wp := range p.Waypoints {
		dto.Waypoints[i] = [2]float64{wp.Lng(), wp.Lat()}
	}
	for i, a := range p.Angles {
		dto.Angles[i] = float64(a)
	}
	return dto
}

func (d pathDTO) toDomain() (services.Path, error) {
	if len(d.Waypoints) != len(d.Angles) {
		return services.Path{}, fmt.Errorf("%d waypoints but %d angles", len(d.Waypoints), len(d.Angles))
	}

	p := services.Path{
		Waypoints: make([]kernel.Position, len(d.Waypoints)),
		Angles:    make([]kernel.Angle, len(d.Angles)),
		Expanded:  d.Expanded,
		Exhausted: d.Exhausted,
	}
	for i, wp := range d.Waypoints {
		pos, err := kernel.NewPosition(wp[0], wp[1])
		if err != nil {
			return services.Path{}, fmt.Errorf("waypoint %d: %w", i, err)
		}
		p.Waypoints[i] = pos
	}
	for i, a := range d.Angles {
		p.Angles[i] = kernel.Angle(a)
	}
	return p, nil
}
