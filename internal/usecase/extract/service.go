package extract

import (
	"iter"
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
)

const (
	unknownFilename = "Unknown"
	untitled        = "Untitled"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

type Result struct {
	Records          []entity.LocationRecord
	NullCoordinates  int
	SkippedNonCamera int
	DateFiltered     int
	TotalFound       int
}

// Extract turns geotagged camera media into location records, preserving
// library order. Items are dropped, and counted, when their coordinate is
// missing or invalid, when a date filter is active and they fall outside it
// or carry no date, and when they were not taken by a camera.
func (s *Service) Extract(photos iter.Seq[entity.Photo], dateRange valueobject.DateRange) (*Result, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Records: make([]entity.LocationRecord, 0)}

	for photo := range photos {
		lat, lng, ok := photo.Location()
		if !ok {
			continue
		}

		if lat == nil || lng == nil || !valueobject.IsValidCoordinate(*lat, *lng) {
			result.NullCoordinates++
			continue
		}

		var timestamp *time.Time
		if taken, ok := photo.Date(); ok {
			normalized := valueobject.NormalizeTime(taken)
			timestamp = &normalized
		}

		if dateRange.IsActive() && (timestamp == nil || !dateRange.Contains(*timestamp)) {
			result.DateFiltered++
			continue
		}

		if !IsCameraMedia(photo) {
			result.SkippedNonCamera++
			continue
		}

		result.Records = append(result.Records, newRecord(photo, *lat, *lng, timestamp))
	}

	result.TotalFound = len(result.Records)
	return result, nil
}

func newRecord(photo entity.Photo, lat, lng float64, timestamp *time.Time) entity.LocationRecord {
	filename := photo.OriginalFilename()
	if filename == "" {
		filename = unknownFilename
	}

	title := photo.Title()
	if title == "" {
		title = photo.OriginalFilename()
	}
	if title == "" {
		title = untitled
	}

	return entity.LocationRecord{
		ID:          photo.ID(),
		Filename:    filename,
		Title:       title,
		Description: photo.Description(),
		Latitude:    lat,
		Longitude:   lng,
		Timestamp:   timestamp,
		IsVideo:     photo.IsMovie(),
		IsFavorite:  photo.IsFavorite(),
		Region:      ResolveRegion(photo.Place()),
	}
}
