package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/storage"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

const signedURLExpiry = 24 * time.Hour

type Service struct {
	files     storage.FileWriter
	storage   storage.ObjectStorage
	keyPrefix string
}

// NewService builds the export service. objectStorage may be nil, in which
// case datasets are only written locally.
func NewService(files storage.FileWriter, objectStorage storage.ObjectStorage, keyPrefix string) *Service {
	return &Service{
		files:     files,
		storage:   objectStorage,
		keyPrefix: keyPrefix,
	}
}

type Target struct {
	Path    string
	Encoder storage.DatasetEncoder
}

type Input struct {
	Records []entity.LocationRecord
	Targets []Target
	Publish bool
}

type Output struct {
	Path      string
	Key       string
	URL       string
	SignedURL string
}

func (s *Service) CanPublish() bool {
	return s.storage != nil
}

// Export encodes the records once per target, replaces each target file and,
// when requested and possible, uploads the same bytes under a per-run key.
// A failed upload removes the objects already published by this run.
func (s *Service) Export(ctx context.Context, input Input) ([]Output, error) {
	runID := uuid.New().String()
	outputs := make([]Output, 0, len(input.Targets))
	var published []string

	for _, target := range input.Targets {
		var buf bytes.Buffer
		if err := target.Encoder.Encode(&buf, input.Records); err != nil {
			return outputs, fmt.Errorf("encoding %s: %w", target.Path, err)
		}
		data := buf.Bytes()

		if err := s.files.WriteFile(target.Path, bytes.NewReader(data)); err != nil {
			return outputs, fmt.Errorf("writing %s: %w", target.Path, err)
		}

		out := Output{Path: target.Path}

		if input.Publish && s.storage != nil {
			key := path.Join(s.keyPrefix, runID, filepath.Base(target.Path))

			if err := s.storage.Upload(ctx, key, bytes.NewReader(data), target.Encoder.ContentType(), int64(len(data))); err != nil {
				s.unpublish(ctx, published)
				return outputs, fmt.Errorf("uploading %s: %w", key, err)
			}
			published = append(published, key)

			out.Key = key
			out.URL = s.storage.GetURL(key)
			out.SignedURL, _ = s.storage.GetSignedURL(key, signedURLExpiry)
		}

		outputs = append(outputs, out)
	}

	return outputs, nil
}

func (s *Service) unpublish(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = s.storage.Delete(ctx, key)
	}
}
