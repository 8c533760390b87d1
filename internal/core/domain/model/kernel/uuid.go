package kernel

import (
	"fmt"

	"dronedelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies one planned delivery path. The HTTP adapter returns it in the
// X-Plan-ID header and the use cases attach it to every log line of the plan,
// so a path in the logs can be matched to the response that carried it.
//
// The zero value is invalid; build it with NewUUID or UUIDFromString.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) plan identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an identifier supplied by a client, for example a
// correlation id passed in the X-Plan-ID request header.
//
// Example:
//
//	id, err := kernel.UUIDFromString(c.Request().Header.Get("X-Plan-ID"))
//	if err != nil {
//	    id = kernel.NewUUID()
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// String returns the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u UUID) String() string {
	return u.id.String()
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
