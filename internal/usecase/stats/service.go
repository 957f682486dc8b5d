package stats

import (
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
)

type Stats struct {
	Total                int
	PhotoCount           int
	VideoCount           int
	FavoriteCount        int
	WithDescriptionCount int
	InvalidCoordinates   int
	RegionCount          int
	Earliest             *time.Time
	Latest               *time.Time
	Extent               *valueobject.BoundingBox
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Summarize aggregates the records that hold a valid coordinate; the others
// are only counted in InvalidCoordinates.
func (s *Service) Summarize(records []entity.LocationRecord) Stats {
	var st Stats

	regions := make(map[string]struct{})
	coords := make([]valueobject.Coordinate, 0, len(records))

	for _, rec := range records {
		coord := rec.Coordinate()
		if !coord.IsValid() {
			st.InvalidCoordinates++
			continue
		}

		st.Total++
		coords = append(coords, coord)
		regions[rec.Region] = struct{}{}

		if rec.IsVideo {
			st.VideoCount++
		} else {
			st.PhotoCount++
		}
		if rec.IsFavorite {
			st.FavoriteCount++
		}
		if rec.Description != "" {
			st.WithDescriptionCount++
		}

		if rec.Timestamp != nil {
			ts := *rec.Timestamp
			if st.Earliest == nil || ts.Before(*st.Earliest) {
				st.Earliest = &ts
			}
			if st.Latest == nil || ts.After(*st.Latest) {
				st.Latest = &ts
			}
		}
	}

	st.RegionCount = len(regions)
	st.Extent = valueobject.BoundingBoxOf(coords)

	return st
}
