package pipeline

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/source"
	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/dedupe"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/extract"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/stats"
)

// PanoramaFilter is the coverage stage; nil disables it.
type PanoramaFilter interface {
	FilterWithin(ctx context.Context, records []entity.LocationRecord, maxDistanceMeters float64) ([]entity.LocationRecord, int, error)
}

type Service struct {
	extractor *extract.Service
	dedupe    *dedupe.Service
	stats     *stats.Service
	panoramas PanoramaFilter
	logger    *zap.Logger
}

func NewService(panoramas PanoramaFilter, logger *zap.Logger) *Service {
	return &Service{
		extractor: extract.NewService(),
		dedupe:    dedupe.NewService(),
		stats:     stats.NewService(),
		panoramas: panoramas,
		logger:    logger,
	}
}

type Options struct {
	StartDate string
	EndDate   string
	Dedupe    bool
	// DedupeDistance is used as given; zero removes only coincident points.
	DedupeDistance  float64
	FilterPanoramas bool
	// PanoMaxDistance is the largest accepted distance to a panorama.
	PanoMaxDistance float64
}

type Result struct {
	Records           []entity.LocationRecord
	Stats             stats.Stats
	NullCoordinates   int
	SkippedNonCamera  int
	DateFiltered      int
	TotalFound        int
	DuplicatesRemoved int
	PanoramaFiltered  int
	// PanoramasSkipped is set when panorama filtering was requested but no
	// coverage client is configured.
	PanoramasSkipped bool
}

// RunSource reads every photo of src and runs the pipeline over them.
func (s *Service) RunSource(ctx context.Context, src source.PhotoSource, opts Options) (*Result, error) {
	photos, err := src.Photos(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Name(), err)
	}

	s.logger.Info("read photo library", zap.String("source", src.Name()), zap.Int("photos", len(photos)))

	return s.Run(ctx, photos, opts)
}

// Run executes extraction, then the optional deduplication and coverage
// stages, then summarizes what is left. Each stage consumes the full output
// of the previous one.
func (s *Service) Run(ctx context.Context, photos []entity.Photo, opts Options) (*Result, error) {
	return s.RunSeq(ctx, slices.Values(photos), opts)
}

func (s *Service) RunSeq(ctx context.Context, photos iter.Seq[entity.Photo], opts Options) (*Result, error) {
	dateRange, err := valueobject.ParseDateRange(opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing date range: %w", err)
	}

	if dateRange.IsActive() {
		s.logger.Info("filtering by date range", zap.Stringer("range", dateRange))
	}

	extracted, err := s.extractor.Extract(photos, dateRange)
	if err != nil {
		return nil, fmt.Errorf("extracting locations: %w", err)
	}

	s.logger.Info("extracted locations",
		zap.Int("found", extracted.TotalFound),
		zap.Int("skipped_non_camera", extracted.SkippedNonCamera),
		zap.Int("null_coordinates", extracted.NullCoordinates),
		zap.Int("date_filtered", extracted.DateFiltered),
	)

	result := &Result{
		Records:          extracted.Records,
		NullCoordinates:  extracted.NullCoordinates,
		SkippedNonCamera: extracted.SkippedNonCamera,
		DateFiltered:     extracted.DateFiltered,
		TotalFound:       extracted.TotalFound,
	}

	if opts.Dedupe {
		distance := opts.DedupeDistance

		deduped, err := s.dedupe.Deduplicate(result.Records, distance)
		if err != nil {
			return nil, fmt.Errorf("deduplicating locations: %w", err)
		}

		result.DuplicatesRemoved = len(result.Records) - len(deduped)
		result.Records = deduped

		s.logger.Info("deduplicated locations",
			zap.Float64("distance_m", distance),
			zap.Int("removed", result.DuplicatesRemoved),
			zap.Int("remaining", len(deduped)),
		)
	}

	if opts.FilterPanoramas {
		if s.panoramas == nil {
			s.logger.Warn("skipping panorama filtering", zap.Error(domain.ErrMissingAPIKey))
			result.PanoramasSkipped = true
		} else {
			kept, filtered, err := s.panoramas.FilterWithin(ctx, result.Records, opts.PanoMaxDistance)
			if err != nil {
				return nil, fmt.Errorf("filtering panoramas: %w", err)
			}

			result.Records = kept
			result.PanoramaFiltered = filtered

			s.logger.Info("filtered panoramas",
				zap.Float64("max_distance_m", opts.PanoMaxDistance),
				zap.Int("filtered", filtered),
				zap.Int("remaining", len(kept)),
			)
		}
	}

	result.Stats = s.stats.Summarize(result.Records)

	return result, nil
}
