package dedupe

import (
	"math"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

const DefaultThresholdMeters = 200.0

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Deduplicate keeps the first record of every cluster of records lying
// within thresholdMeters of each other. A record is dropped when its distance
// to any already kept record is at most the threshold. Records without a
// valid coordinate are dropped.
func (s *Service) Deduplicate(records []entity.LocationRecord, thresholdMeters float64) ([]entity.LocationRecord, error) {
	if math.IsNaN(thresholdMeters) || thresholdMeters < 0 {
		return nil, domain.ErrInvalidThreshold
	}

	kept := make([]entity.LocationRecord, 0, len(records))
	for _, rec := range records {
		coord := rec.Coordinate()
		if !coord.IsValid() {
			continue
		}

		duplicate := false
		for _, existing := range kept {
			if coord.DistanceTo(existing.Coordinate()) <= thresholdMeters {
				duplicate = true
				break
			}
		}

		if !duplicate {
			kept = append(kept, rec)
		}
	}

	return kept, nil
}
