package guard_test

import (
	"errors"
	"testing"

	"dronedelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errWaypointNotConstructed := errors.New("waypoint must be created via NewWaypoint")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errWaypointNotConstructed)

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errWaypointNotConstructed)

		// Then
		require.Error(t, err)
		assert.Equal(t, errWaypointNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type waypoint struct {
		lng, lat float64
		guard    guard.ConstructorGuard
	}
	errNotConstructed := errors.New("waypoint must be created via constructor")

	newWaypoint := func(lng, lat float64) waypoint {
		return waypoint{lng: lng, lat: lat, guard: guard.NewConstructorGuard()}
	}

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		// Given
		w := newWaypoint(-3.186874, 55.944494)

		// When
		cp := w

		// Then
		require.NoError(t, cp.guard.Validate(errNotConstructed))
	})

	t.Run("struct_literal_fails", func(t *testing.T) {
		// Given
		w := waypoint{lng: 1, lat: 1}

		// Then
		assert.Equal(t, errNotConstructed, w.guard.Validate(errNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}
