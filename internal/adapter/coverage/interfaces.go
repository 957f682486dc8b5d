package coverage

import (
	"context"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/coverage_mocks.go -package=mocks

// Client looks up imagery coverage around a coordinate. A nil point with a
// nil error means the service has no coverage within radiusMeters.
type Client interface {
	Lookup(ctx context.Context, lat, lng float64, radiusMeters int) (*entity.CoveragePoint, error)
}
