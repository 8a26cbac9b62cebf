package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateDriverLocationCommand_ValidInput(t *testing.T) {
	driverID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(40.71, -74.0)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point, 32.5, 270)

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, driverID, cmd.DriverID())
	assert.Equal(t, point, cmd.Point())
	assert.InDelta(t, 32.5, cmd.SpeedKmh(), 0.001)
	assert.InDelta(t, 270.0, cmd.Heading(), 0.001)
}

func TestNewUpdateDriverLocationCommand_StationaryReport(t *testing.T) {
	point, err := kernel.NewGeoPoint(40.71, -74.0)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), point, 0, 0)

	require.NoError(t, err)
	assert.Zero(t, cmd.SpeedKmh())
	assert.Zero(t, cmd.Heading())
}

func TestNewUpdateDriverLocationCommand_NegativeSpeed(t *testing.T) {
	point, err := kernel.NewGeoPoint(40.71, -74.0)
	require.NoError(t, err)

	_, err = commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), point, -1, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewUpdateDriverLocationCommand_HeadingOutOfRange(t *testing.T) {
	point, err := kernel.NewGeoPoint(40.71, -74.0)
	require.NoError(t, err)

	for _, heading := range []float64{-1, 360, 720} {
		_, err = commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), point, 10, heading)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestNewUpdateDriverLocationCommand_UnconstructedPoint(t *testing.T) {
	_, err := commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), kernel.GeoPoint{}, 10, 90)

	require.Error(t, err)
}

func TestUpdateDriverLocationCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.UpdateDriverLocationCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateDriverLocationCommandIsNotConstructed)
}
