package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTrip(t *testing.T) {
	cases := []struct {
		name      string
		distanceM float64
		durationS int
		wantValid bool
		wantMode  string
	}{
		// 1.2 km in 15 min -> 4.8 km/h
		{"typical walk", 1200, 900, true, ModeWalk},
		// 4 km in 16 min -> 15 km/h, boundary average is still valid
		{"fast bike at threshold", 4000, 960, true, ModeBike},
		{"too short distance", 499, 900, false, ModeWalk},
		{"exact minimum distance", 500, 600, true, ModeWalk},
		{"too short duration", 2000, 479, false, ModeBike},
		{"exact minimum duration", 2000, 480, true, ModeBike},
		// 10 km in 10 min -> 60 km/h, looks like driving
		{"too fast average", 10000, 600, false, ModeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateTrip(TripInput{
				DistanceM: tc.distanceM,
				DurationS: tc.durationS,
			})
			assert.Equal(t, tc.wantValid, res.Valid)
			assert.Equal(t, tc.wantMode, res.ModeGuess)
		})
	}
}

func TestValidateTripZeroDuration(t *testing.T) {
	res := ValidateTrip(TripInput{DistanceM: 1000, DurationS: 0})
	assert.False(t, res.Valid)
	assert.Equal(t, ModeUnknown, res.ModeGuess)
}

func TestGuessMode(t *testing.T) {
	assert.Equal(t, ModeWalk, GuessMode(5))
	assert.Equal(t, ModeWalk, GuessMode(6))
	assert.Equal(t, ModeBike, GuessMode(10))
	assert.Equal(t, ModeBike, GuessMode(25))
	assert.Equal(t, ModeUnknown, GuessMode(25.01))
	assert.Equal(t, ModeUnknown, GuessMode(50))
}

func TestValidateTripSpeedingSegment(t *testing.T) {
	// 0.001 deg of longitude at the equator is ~111 m.
	base := TripInput{DistanceM: 1000, DurationS: 900}

	t.Run("fast segment invalidates", func(t *testing.T) {
		// 111 m in 5 s -> ~80 km/h
		in := base
		in.Polyline = `[{"lat":0,"lng":0,"t":1000},{"lat":0,"lng":0.001,"t":6000}]`
		res := ValidateTrip(in)
		assert.False(t, res.Valid)
	})

	t.Run("slow segments pass", func(t *testing.T) {
		// 111 m in 60 s -> ~6.7 km/h
		in := base
		in.Polyline = `[{"lat":0,"lng":0,"t":1000},{"lat":0,"lng":0.001,"t":61000}]`
		res := ValidateTrip(in)
		assert.True(t, res.Valid)
	})

	t.Run("untimestamped points are geometry only", func(t *testing.T) {
		in := base
		in.Polyline = `[{"lat":0,"lng":0},{"lat":0,"lng":0.001}]`
		res := ValidateTrip(in)
		assert.True(t, res.Valid)
	})

	t.Run("malformed polyline is ignored", func(t *testing.T) {
		in := base
		in.Polyline = `not json`
		res := ValidateTrip(in)
		assert.True(t, res.Valid)
	})
}

func TestCoinsForTrip(t *testing.T) {
	assert.Equal(t, 0, CoinsForTrip(5000, false))
	assert.Equal(t, 10, CoinsForTrip(1000, true))
	assert.Equal(t, 12, CoinsForTrip(1234, true))
	// rounds to nearest hundred meters
	assert.Equal(t, 5, CoinsForTrip(549, true))
	assert.Equal(t, 6, CoinsForTrip(550, true))
	// floor of one coin for any valid trip
	assert.Equal(t, 1, CoinsForTrip(40, true))
	assert.Equal(t, 1, CoinsForTrip(0, true))
}
