package panorama

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/coverage"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
)

const (
	DefaultSearchRadiusMeters = 50
	DefaultMaxDistanceMeters  = 40.0
	DefaultLookupTimeout      = 5 * time.Second
)

// Observer is notified after every lookup. Calls are serialized.
type Observer interface {
	LookupDone(done, total int)
}

type ObserverFunc func(done, total int)

func (f ObserverFunc) LookupDone(done, total int) { f(done, total) }

type Config struct {
	MaxDistanceMeters  float64
	SearchRadiusMeters int
	LookupTimeout      time.Duration
	// Concurrency bounds in-flight lookups; 1 issues them one at a time.
	Concurrency int
	// RequestsPerSecond paces lookups across all workers; 0 disables pacing.
	RequestsPerSecond int
}

func (c Config) withDefaults() Config {
	if c.SearchRadiusMeters <= 0 {
		c.SearchRadiusMeters = DefaultSearchRadiusMeters
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = DefaultLookupTimeout
	}
	if c.MaxDistanceMeters <= 0 {
		c.MaxDistanceMeters = DefaultMaxDistanceMeters
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	return c
}

type Service struct {
	client   coverage.Client
	limiter  ratelimit.Limiter
	cfg      Config
	logger   *zap.Logger
	observer Observer
}

func NewService(client coverage.Client, cfg Config, logger *zap.Logger) *Service {
	cfg = cfg.withDefaults()

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &Service{
		client:  client,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Service) SetObserver(o Observer) {
	s.observer = o
}

// Filter keeps the records that have imagery coverage within the configured
// maximum distance, annotated with the matched panorama, in input order. A
// failed lookup counts as no coverage. filtered is the number of dropped
// records. An error is returned only when ctx is cancelled.
func (s *Service) Filter(ctx context.Context, records []entity.LocationRecord) ([]entity.LocationRecord, int, error) {
	return s.FilterWithin(ctx, records, s.cfg.MaxDistanceMeters)
}

// FilterWithin is Filter with an explicit maximum panorama distance.
func (s *Service) FilterWithin(ctx context.Context, records []entity.LocationRecord, maxDistanceMeters float64) ([]entity.LocationRecord, int, error) {
	matches := make([]*entity.LocationRecord, len(records))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, rec := range records {
		g.Go(func() error {
			matches[i] = s.match(gctx, rec, maxDistanceMeters)

			mu.Lock()
			done++
			if s.observer != nil {
				s.observer.LookupDone(done, len(records))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	kept := make([]entity.LocationRecord, 0, len(records))
	for _, m := range matches {
		if m != nil {
			kept = append(kept, *m)
		}
	}

	return kept, len(records) - len(kept), nil
}

func (s *Service) match(ctx context.Context, rec entity.LocationRecord, maxDistance float64) *entity.LocationRecord {
	coord := rec.Coordinate()
	if !coord.IsValid() {
		return nil
	}

	s.limiter.Take()

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	point, err := s.client.Lookup(lookupCtx, coord.Latitude, coord.Longitude, s.cfg.SearchRadiusMeters)
	if err != nil {
		s.logger.Debug("coverage lookup failed",
			zap.String("record_id", rec.ID),
			zap.Error(err),
		)
		return nil
	}
	if point == nil {
		return nil
	}

	distance := coord.DistanceTo(valueobject.NewCoordinate(point.Latitude, point.Longitude))
	if !(distance <= maxDistance) {
		return nil
	}

	annotated := rec.WithPanorama(entity.Panorama{
		Latitude:       point.Latitude,
		Longitude:      point.Longitude,
		ID:             point.ID,
		DistanceMeters: distance,
	})
	return &annotated
}
