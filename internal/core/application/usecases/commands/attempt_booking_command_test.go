package commands_test

import (
	"testing"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttemptBookingCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		orderID := kernel.NewOrderID()
		rider := mustPhone(t, "+254700000001")

		cmd, err := commands.NewAttemptBookingCommand(orderID, rider)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.Rider().IsEqual(rider))
	})

	t.Run("zero order id rejected", func(t *testing.T) {
		_, err := commands.NewAttemptBookingCommand(kernel.OrderID{}, mustPhone(t, "+254700000001"))
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AttemptBookingCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrAttemptBookingCommandIsNotConstructed)
	})
}
