package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMeters(51.5, -0.12, 51.5, -0.12))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// One degree of latitude is ~111.19 km on a 6371 km sphere.
		d := HaversineMeters(0, 0, 1, 0)
		assert.InDelta(t, 111194.9, d, 10)
	})

	t.Run("sydney to melbourne", func(t *testing.T) {
		d := HaversineMeters(-33.8688, 151.2093, -37.8136, 144.9631)
		assert.InDelta(t, 713000, d, 5000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineMeters(-33.87, 151.21, -33.86, 151.22)
		b := HaversineMeters(-33.86, 151.22, -33.87, 151.21)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestAverageSpeedKmh(t *testing.T) {
	assert.InDelta(t, 1.0, AverageSpeedKmh(1000, 3600), 1e-9)
	assert.InDelta(t, 6.0, AverageSpeedKmh(1000, 600), 1e-9)

	assert.True(t, math.IsInf(AverageSpeedKmh(1000, 0), 1))
	assert.True(t, math.IsInf(AverageSpeedKmh(1000, -5), 1))
}
