package handler

import (
	"context"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type PipelineService interface {
	Run(ctx context.Context, photos []entity.Photo, opts pipeline.Options) (*pipeline.Result, error)
}

// ManifestReader turns an uploaded manifest into photos.
type ManifestReader interface {
	Read(ctx context.Context, data []byte) ([]entity.Photo, error)
}
