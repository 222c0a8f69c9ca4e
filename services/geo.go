package services

import "math"

// EarthRadiusM is the mean Earth radius used for great-circle distances.
const EarthRadiusM = 6371000.0

// HaversineMeters returns the great-circle distance in meters between two
// lat/lng points. Coordinates are expected to be valid ([-90,90]/[-180,180]);
// the caller validates ranges.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// AverageSpeedKmh converts a distance in meters over a duration in seconds to
// km/h. Returns +Inf for non-positive durations; callers must guard.
func AverageSpeedKmh(distanceM float64, durationS float64) float64 {
	if durationS <= 0 {
		return math.Inf(1)
	}
	return (distanceM / 1000) / (durationS / 3600)
}
