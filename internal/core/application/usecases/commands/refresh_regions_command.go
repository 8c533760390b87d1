// Package commands contains operations that change the state the service
// plans against. Each command is built through its constructor and carried
// out by a matching handler.
package commands

import (
	"errors"

	"dronedelivery/internal/pkg/guard"
)

var ErrRefreshRegionsCommandIsNotConstructed = errors.New(
	"RefreshRegionsCommand must be created via NewRefreshRegionsCommand constructor",
)

// RefreshRegionsCommand asks for the region snapshot to be reloaded from the
// data provider.
//
// Example:
//
//	cmd := NewRefreshRegionsCommand()
//	handler := NewRefreshRegionsCommandHandler(ilpClient, store, logger)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to refresh regions: %w", err)
//	}
type RefreshRegionsCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshRegionsCommand creates a refresh command.
func NewRefreshRegionsCommand() RefreshRegionsCommand {
	return RefreshRegionsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RefreshRegionsCommand) Validate() error {
	return c.guard.Validate(ErrRefreshRegionsCommandIsNotConstructed)
}
