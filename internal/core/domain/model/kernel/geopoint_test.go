package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(40.7128, -74.0060)

		require.NoError(t, err)
		assert.InEpsilon(t, 40.7128, point.Latitude(), 1e-12)
		assert.InEpsilon(t, -74.0060, point.Longitude(), 1e-12)
		assert.NoError(t, point.Validate())
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lng float64
		}{
			{"north pole", 90, 0},
			{"south pole", -90, 0},
			{"antimeridian east", 0, 180},
			{"antimeridian west", 0, -180},
			{"origin", 0, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				point, err := kernel.NewGeoPoint(tc.lat, tc.lng)

				require.NoError(t, err)
				assert.NoError(t, point.Validate())
			})
		}
	})

	t.Run("should reject out-of-range latitude", func(t *testing.T) {
		for _, lat := range []float64{90.0001, -90.0001, 181, -200} {
			_, err := kernel.NewGeoPoint(lat, 0)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "latitude")
		}
	})

	t.Run("should reject out-of-range longitude", func(t *testing.T) {
		for _, lng := range []float64{180.0001, -180.0001, 360} {
			_, err := kernel.NewGeoPoint(0, lng)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "longitude")
		}
	})

	t.Run("should report both coordinate errors at once", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("should return true for equal coordinates", func(t *testing.T) {
		p1, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		p2, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should return false for different coordinates", func(t *testing.T) {
		p1, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		p2, err := kernel.NewGeoPoint(40.7589, -73.9851)
		require.NoError(t, err)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("should fail when either point is not constructed", func(t *testing.T) {
		p1, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		var p2 kernel.GeoPoint

		_, err = p1.IsEqual(p2)
		assert.Error(t, err)

		_, err = p2.IsEqual(p1)
		assert.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("should compute great-circle distance", func(t *testing.T) {
		// Lower Manhattan to Times Square.
		from, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(40.7589, -73.9851)
		require.NoError(t, err)

		distance, err := from.DistanceKm(to)

		require.NoError(t, err)
		assert.InDelta(t, 5.4201, distance, 0.001)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(40.7589, -73.9851)
		require.NoError(t, err)

		forward, err := from.DistanceKm(to)
		require.NoError(t, err)
		backward, err := to.DistanceKm(from)
		require.NoError(t, err)

		assert.InDelta(t, forward, backward, 1e-9)
	})

	t.Run("should return zero for identical points", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(51.5074, -0.1278)
		require.NoError(t, err)

		distance, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 1e-9)
	})

	t.Run("should fail when either point is not constructed", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		var zero kernel.GeoPoint

		_, err = point.DistanceKm(zero)
		assert.Error(t, err)

		_, err = zero.DistanceKm(point)
		assert.Error(t, err)
	})
}

func TestGeoPoint_String(t *testing.T) {
	t.Run("should format coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)

		assert.Equal(t, "GeoPoint(40.712800,-74.006000)", point.String())
	})
}
