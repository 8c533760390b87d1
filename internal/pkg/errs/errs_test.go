package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("restaurant", "Civerinos Slice")

		assert.Equal(t, "restaurant", err.ParamName)
		assert.Equal(t, "Civerinos Slice", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: Civerinos Slice", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("provider unavailable")
		err := errs.NewObjectNotFoundErrorWithCause("region", "central", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: region, ID is: central (cause: provider unavailable)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("angle")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: angle", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("vertices", errors.New("2 vertices, need at least 3"))

		assert.Equal(t, "value is invalid: vertices (cause: 2 vertices, need at least 3)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 91.5, -90.0, 90.0)

		assert.Equal(t, "lat", err.ParamName)
		assert.Equal(t, 91.5, err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 91.5 is lat, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("not finite")
		err := errs.NewValueIsOutOfRangeErrorWithCause("lng", "NaN", -180, 180, cause)

		assert.Equal(t,
			"value is invalid: NaN is lng, min value is -180, max value is 180 (cause: not finite)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name", "Appleton\nTower", 0, 10)
		assert.Contains(t, err.Error(), "Appleton Tower")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("centralArea")
	assert.Equal(t, "value is required: centralArea", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("centralArea", errors.New("empty body"))
	assert.Equal(t, "value is required: centralArea (cause: empty body)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("snapshot", errors.New("older than current"))
	assert.Equal(t, "version is invalid: snapshot (cause: older than current)", err.Error())

	bare := errs.NewVersionIsInvalidErrorWithCause("snapshot")
	require.NoError(t, bare.Cause)
	assert.Equal(t, "version is invalid: snapshot", bare.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundError("id", 1), errs.ErrObjectNotFound},
		{"value invalid", errs.NewValueIsInvalidError("angle"), errs.ErrValueIsInvalid},
		{"value out of range", errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.ErrValueIsOutOfRange},
		{"value required", errs.NewValueIsRequiredError("start"), errs.ErrValueIsRequired},
		{"version invalid", errs.NewVersionIsInvalidError("v", nil), errs.ErrVersionIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("calc path: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}
