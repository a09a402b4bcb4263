package domain

// SRIDWGS84 is the spatial reference system for all stored geometries.
const SRIDWGS84 = 4326

// Point is a WGS 84 point geometry. X is longitude and Y is latitude;
// swapping the axes is the classic PostGIS mistake, so a Point is only ever
// built through NewPoint.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	SRID int     `json:"srid"`
}

// NewPoint builds a point geometry from a pre-validated coordinate pair.
// Total over valid input: there is no error path here.
func NewPoint(lon, lat float64) Point {
	return Point{X: lon, Y: lat, SRID: SRIDWGS84}
}
