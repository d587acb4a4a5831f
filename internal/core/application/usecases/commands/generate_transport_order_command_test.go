package commands_test

import (
	"testing"

	"transportorder/internal/core/application/usecases/commands"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateTransportOrderCommand(t *testing.T) {
	input := transportorder.Input{"number": "1404338"}

	t.Run("submit implies persist", func(t *testing.T) {
		cmd, err := commands.NewGenerateTransportOrderCommand(kernel.SimpleRoad, input, false, true)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, kernel.SimpleRoad, cmd.DocumentType())
		assert.Equal(t, input, cmd.Input())
		assert.True(t, cmd.Persist())
		assert.True(t, cmd.Submit())
	})

	t.Run("all violations are reported", func(t *testing.T) {
		_, err := commands.NewGenerateTransportOrderCommand(kernel.UnknownDocumentType, nil, false, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.GenerateTransportOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrGenerateTransportOrderCommandIsNotConstructed)
	})
}
