package entity

import (
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
)

const UnknownRegion = "Unknown"

// LocationRecord is a normalized, geotagged media item. Records are treated
// as values: stages never modify a record they received, they return copies.
type LocationRecord struct {
	ID          string
	Filename    string
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Timestamp   *time.Time
	IsVideo     bool
	IsFavorite  bool
	Region      string
	Panorama    *Panorama
}

// Panorama is the coverage point a record was matched against.
type Panorama struct {
	Latitude       float64
	Longitude      float64
	ID             string
	DistanceMeters float64
}

// CoveragePoint is a location known to the imagery service.
type CoveragePoint struct {
	Latitude  float64
	Longitude float64
	ID        string
}

func (r LocationRecord) Coordinate() valueobject.Coordinate {
	return valueobject.NewCoordinate(r.Latitude, r.Longitude)
}

// MapCoordinate is the coordinate exported to maps: the matched panorama when
// there is one, the capture position otherwise.
func (r LocationRecord) MapCoordinate() valueobject.Coordinate {
	if r.Panorama != nil {
		return valueobject.NewCoordinate(r.Panorama.Latitude, r.Panorama.Longitude)
	}
	return r.Coordinate()
}

func (r LocationRecord) WithPanorama(p Panorama) LocationRecord {
	r.Panorama = &p
	return r
}
