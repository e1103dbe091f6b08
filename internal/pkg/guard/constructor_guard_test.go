package guard_test

import (
	"errors"
	"testing"

	"mealbot/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("should not be returned")))
	})

	t.Run("zero value guard fails with provided error", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("Booking must be created via NewBooking constructor")

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("constructed guard ignores nil validation error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	type guarded struct {
		guard guard.ConstructorGuard
	}

	t.Run("zero value of embedding struct fails validation", func(t *testing.T) {
		var v guarded
		err := v.guard.Validate(nil)
		require.Error(t, err)
	})

	t.Run("constructed embedding struct passes validation", func(t *testing.T) {
		v := guarded{guard: guard.NewConstructorGuard()}
		require.NoError(t, v.guard.Validate(nil))
	})
}
