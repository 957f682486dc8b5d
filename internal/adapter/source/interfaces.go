package source

import (
	"context"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/source_mocks.go -package=mocks

// PhotoSource yields every media item of a library, in library order.
type PhotoSource interface {
	Photos(ctx context.Context) ([]entity.Photo, error)
	Name() string
}
