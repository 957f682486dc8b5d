package valueobject

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func NewCoordinate(lat, lng float64) Coordinate {
	return Coordinate{Latitude: lat, Longitude: lng}
}

// IsValid reports whether the coordinate lies inside the WGS84 ranges and is
// not the (0, 0) placeholder many cameras write when they have no fix.
func (c Coordinate) IsValid() bool {
	return IsValidCoordinate(c.Latitude, c.Longitude)
}

func IsValidCoordinate(lat, lng float64) bool {
	if !(lat >= -90 && lat <= 90) || !(lng >= -180 && lng <= 180) {
		return false
	}
	return lat != 0 || lng != 0
}

// DistanceTo returns the haversine distance in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return HaversineDistance(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
