package services

import (
	"context"
	"fmt"
	"slices"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/region"
)

// DefaultMaxExpansions bounds the number of nodes one search may expand.
// Every expansion can admit one node per grid angle, so the budget also caps
// the arena and the best-cost table of an unreachable search. Deliveries
// inside Edinburgh's central area need under 40 000 expansions.
const DefaultMaxExpansions = 60_000

// SearchConfig configures a Pathfinder.
type SearchConfig struct {
	// Grid is the move model. Its zero value is invalid; use kernel.DefaultGrid.
	Grid kernel.Grid
	// MaxExpansions stops a search after that many expanded nodes. Zero or less
	// means no limit, which only terminates when the reachable area is bounded.
	MaxExpansions int
}

// DefaultSearchConfig returns the production configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Grid:          kernel.DefaultGrid(),
		MaxExpansions: DefaultMaxExpansions,
	}
}

// Path is the result of a search. An empty path means no route exists under
// the constraints, or that the expansion budget ran out first (Exhausted).
type Path struct {
	// Waypoints starts at the search start and ends at the first position
	// found within the grid's CloseThreshold of the end.
	Waypoints []kernel.Position
	// Angles[i] is the bearing of the move that reached Waypoints[i];
	// Angles[0] is kernel.Hover.
	Angles []kernel.Angle
	// Expanded is the number of nodes taken off the frontier.
	Expanded int
	// Exhausted is set when the search stopped at MaxExpansions.
	Exhausted bool
}

// IsEmpty reports whether no path was found.
func (p Path) IsEmpty() bool {
	return len(p.Waypoints) == 0
}

// Moves returns the number of moves along the path.
func (p Path) Moves() int {
	if p.IsEmpty() {
		return 0
	}
	return len(p.Waypoints) - 1
}

type searchNode struct {
	pos    kernel.Position
	parent int
	g      float64
	h      float64
	f      float64
	angle  kernel.Angle
}

const noParent = -1

// Pathfinder plans delivery paths with A* over the moves of a kernel.Grid.
//
// The cost of a path is its length in degrees and the heuristic is the
// straight-line distance to the end, which never overestimates, so the path
// found is the shortest sequence of grid moves that obeys the MovePolicy.
//
// A Pathfinder holds only configuration and may be shared between goroutines;
// every FindPath call owns its own node arena, frontier and best-cost table.
//
// Example usage:
//
//	pf, err := services.NewPathfinder(services.DefaultSearchConfig())
//	if err != nil {
//	    return err
//	}
//	path, err := pf.FindPath(ctx, restaurant, appletonTower, central, noFlyZones)
//	if err != nil {
//	    return err // cancelled, or invalid start or end
//	}
//	if path.IsEmpty() {
//	    // unreachable under the constraints
//	}
type Pathfinder struct {
	cfg SearchConfig
}

// NewPathfinder validates cfg and builds a Pathfinder.
func NewPathfinder(cfg SearchConfig) (*Pathfinder, error) {
	if err := cfg.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search grid: %w", err)
	}
	cfg.Grid.Angles = slices.Clone(cfg.Grid.Angles)
	return &Pathfinder{cfg: cfg}, nil
}

// Config returns the configuration the Pathfinder was built with.
func (pf *Pathfinder) Config() SearchConfig {
	cfg := pf.cfg
	cfg.Grid.Angles = slices.Clone(cfg.Grid.Angles)
	return cfg
}

// FindPath searches for a path from start to end.
//
// Polygon shapes are not validated here; callers reject regions with fewer
// than three vertices before searching. Running out of frontier, or of the
// expansion budget, yields an empty Path and no error. The context is checked
// once per expanded node and its error is returned on cancellation.
func (pf *Pathfinder) FindPath(
	ctx context.Context,
	start, end kernel.Position,
	centralArea region.Region,
	noFlyZones []region.Region,
) (Path, error) {
	if err := start.Validate(); err != nil {
		return Path{}, fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return Path{}, fmt.Errorf("end: %w", err)
	}

	grid := pf.cfg.Grid
	policy := NewMovePolicy(centralArea, noFlyZones)

	h0 := start.DistanceTo(end)
	nodes := []searchNode{{pos: start, parent: noParent, h: h0, f: h0, angle: kernel.Hover}}
	best := map[kernel.Position]float64{start: 0}
	open := &frontier{}
	open.push(0, h0)

	expanded := 0
	for !open.empty() {
		if pf.cfg.MaxExpansions > 0 && expanded >= pf.cfg.MaxExpansions {
			return Path{Expanded: expanded, Exhausted: true}, nil
		}

		id := open.pop()
		cur := nodes[id]
		if cur.g > best[cur.pos] {
			// A cheaper node for this position was pushed after this one.
			continue
		}

		expanded++
		if err := ctx.Err(); err != nil {
			return Path{}, err
		}

		if grid.IsClose(cur.pos, end) {
			path := reconstruct(nodes, id)
			path.Expanded = expanded
			return path, nil
		}

		for _, angle := range grid.Angles {
			next, err := grid.Step(cur.pos, angle)
			if err != nil {
				return Path{}, err
			}
			if !policy.Allows(cur.pos, next) {
				continue
			}

			g := cur.g + cur.pos.DistanceTo(next)
			if seen, ok := best[next]; ok && g >= seen {
				continue
			}

			h := next.DistanceTo(end)
			best[next] = g
			nodes = append(nodes, searchNode{
				pos:    next,
				parent: id,
				g:      g,
				h:      h,
				f:      g + h,
				angle:  angle,
			})
			open.push(len(nodes)-1, g+h)
		}
	}

	return Path{Expanded: expanded}, nil
}

func reconstruct(nodes []searchNode, goal int) Path {
	var path Path
	for id := goal; id != noParent; id = nodes[id].parent {
		path.Waypoints = append(path.Waypoints, nodes[id].pos)
		path.Angles = append(path.Angles, nodes[id].angle)
	}
	slices.Reverse(path.Waypoints)
	slices.Reverse(path.Angles)
	return path
}
