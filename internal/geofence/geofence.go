// Package geofence classifies reported coordinates against a worksite's
// circular geofence. Pure computation, no I/O.
package geofence

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Floating point can push a just outside [0,1] for near-antipodal
	// points, which would feed Sqrt a negative number.
	a = math.Min(math.Max(a, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// Evaluate computes the distance from a reported coordinate to a worksite
// center and classifies it against the radius. The boundary is inclusive:
// a report exactly at radius meters counts as on-site.
func Evaluate(lat, lon, siteLat, siteLon, radiusMeters float64) (float64, bool) {
	distance := Distance(lat, lon, siteLat, siteLon)
	return distance, distance <= radiusMeters
}

// toRadians converts an angle from degrees to radians.
func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
