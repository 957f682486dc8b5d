package storage

import (
	"context"
	"io"
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ObjectStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	GetSignedURL(key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type FileWriter interface {
	WriteFile(path string, reader io.Reader) error
}

// DatasetEncoder renders records in one map-ready format.
type DatasetEncoder interface {
	Encode(w io.Writer, records []entity.LocationRecord) error
	ContentType() string
	Extension() string
}
