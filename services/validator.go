package services

import (
	"encoding/json"
	"math"
)

// Trip validation thresholds. These are load-bearing for reward compatibility;
// clients mirror them when previewing a reward.
const (
	MinTripDistanceM = 500.0 // meters
	MinTripDurationS = 480   // 8 minutes
	MaxAvgSpeedKmh   = 15.0  // average over the whole trip
	MaxPointSpeedKmh = 30.0  // per GPS segment, when samples carry timestamps

	walkMaxSpeedKmh = 6.0
	bikeMaxSpeedKmh = 25.0
)

// Transport mode guesses derived from average speed.
const (
	ModeWalk    = "walk"
	ModeBike    = "bike"
	ModeUnknown = "unknown"
)

// TripInput carries the raw geometry and timing of a completed journey.
type TripInput struct {
	StartLat  float64
	StartLng  float64
	EndLat    float64
	EndLng    float64
	DistanceM float64
	DurationS int
	Polyline  string // JSON array of route points, possibly timestamped
}

// ValidationResult classifies a trip. Invalidity is a result value, never an
// error: recording an invalid trip is a normal outcome.
type ValidationResult struct {
	Valid       bool
	ModeGuess   string
	AvgSpeedKmh float64
}

// routePoint is one GPS sample from the recorded polyline. T is unix
// milliseconds and optional; untimestamped points only describe geometry.
type routePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	T   int64   `json:"t,omitempty"`
}

// ValidateTrip applies the distance, duration and speed thresholds and derives
// a transport-mode guess. The mode guess is independent of validity. When the
// polyline parses as timestamped samples, any segment faster than
// MaxPointSpeedKmh also invalidates the trip (GPS teleport / vehicle segments).
func ValidateTrip(in TripInput) ValidationResult {
	avg := AverageSpeedKmh(in.DistanceM, float64(in.DurationS))

	valid := in.DistanceM >= MinTripDistanceM &&
		in.DurationS >= MinTripDurationS &&
		avg <= MaxAvgSpeedKmh

	if valid && hasSpeedingSegment(in.Polyline) {
		valid = false
	}

	return ValidationResult{
		Valid:       valid,
		ModeGuess:   GuessMode(avg),
		AvgSpeedKmh: avg,
	}
}

// GuessMode classifies an average speed into a transport mode.
func GuessMode(avgSpeedKmh float64) string {
	switch {
	case avgSpeedKmh <= walkMaxSpeedKmh:
		return ModeWalk
	case avgSpeedKmh <= bikeMaxSpeedKmh:
		return ModeBike
	default:
		return ModeUnknown
	}
}

// hasSpeedingSegment reports whether any consecutive pair of timestamped GPS
// samples implies a speed above MaxPointSpeedKmh. Polylines that fail to parse
// or lack timestamps contribute nothing; the aggregate checks still apply.
func hasSpeedingSegment(polyline string) bool {
	if polyline == "" {
		return false
	}
	var points []routePoint
	if err := json.Unmarshal([]byte(polyline), &points); err != nil {
		return false
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.T == 0 || b.T == 0 || b.T <= a.T {
			continue
		}
		dist := HaversineMeters(a.Lat, a.Lng, b.Lat, b.Lng)
		elapsed := float64(b.T-a.T) / 1000
		if AverageSpeedKmh(dist, elapsed) > MaxPointSpeedKmh {
			return true
		}
	}
	return false
}

// CoinsForTrip converts a validated distance into an integer coin award: one
// coin per 100 meters rounded to nearest, floored at 1 for any valid trip.
// Invalid trips always award zero.
func CoinsForTrip(distanceM float64, valid bool) int {
	if !valid {
		return 0
	}
	coins := int(math.Round(distanceM / 100))
	if coins < 1 {
		coins = 1
	}
	return coins
}
