// Package services provides the domain services of the drone delivery system.
//
// The package includes:
//   - MovePolicy: decides whether a single drone move is legal with respect to
//     the central area and the no-fly zones
//   - Pathfinder: an A* search over fixed-length compass moves that produces a
//     delivery path between two positions
//   - OrderValidator: checks a pizza order against card rules and restaurant menus
//
// All services are stateless between calls and safe for concurrent use.
package services
