package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/source"
	adapterstorage "github.com/marcos-nsantos/photo-locations/internal/adapter/storage"
	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/config"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/coverage"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/export"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/library"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/observability"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/storage"
	exportUC "github.com/marcos-nsantos/photo-locations/internal/usecase/export"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/panorama"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

func extractCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "run the location pipeline and write CSV and/or GeoJSON datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "photos-db", Usage: "Photos.sqlite or .photoslibrary to read", Value: cfg.Library.PhotosDBPath},
			&cli.StringFlag{Name: "manifest", Usage: "osxphotos JSON export to read"},
			&cli.StringFlag{Name: "images", Usage: "directory or bucket URL of images to scan for EXIF"},
			&cli.StringFlag{Name: "csv", Usage: "write a Latitude,Longitude table to `FILE`"},
			&cli.StringFlag{Name: "geojson", Usage: "write a region grouped FeatureCollection to `FILE`"},
			&cli.StringFlag{Name: "start-from", Usage: "only include media taken on or after `YYYY-MM-DD`"},
			&cli.StringFlag{Name: "end-on", Usage: "only include media taken on or before `YYYY-MM-DD`"},
			&cli.BoolFlag{Name: "dedupe", Usage: "drop locations close to one already kept"},
			&cli.Float64Flag{Name: "dedupe-distance", Usage: "deduplication distance in meters", Value: cfg.Pipeline.DedupeDistance},
			&cli.BoolFlag{Name: "filter-panos", Usage: "keep only locations with a nearby Street View panorama"},
			&cli.Float64Flag{Name: "pano-max-distance", Usage: "largest accepted panorama distance in meters", Value: cfg.Pipeline.PanoMaxDistance},
			&cli.IntFlag{Name: "concurrency", Usage: "parallel panorama lookups", Value: cfg.StreetView.Concurrency},
			&cli.BoolFlag{Name: "publish", Usage: "upload written datasets to the configured S3 bucket"},
			&cli.StringFlag{Name: "log-level", Value: cfg.Log.Level},
			&cli.StringFlag{Name: "log-format", Value: "console"},
		},
		Action: func(c *cli.Context) error {
			return runExtract(c, cfg)
		},
	}
}

func runExtract(c *cli.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(c.String("log-level"), c.String("log-format"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := c.Context

	src, closeSource, err := openSource(ctx, c)
	if err != nil {
		return err
	}
	defer closeSource()

	fmt.Fprintf(c.App.Writer, "Scanning %s...\n", src.Name())

	var panoramas pipeline.PanoramaFilter
	if c.Bool("filter-panos") && cfg.StreetView.Enabled() {
		client, err := coverage.NewClient(cfg.StreetView)
		if err != nil {
			return err
		}
		svc := panorama.NewService(client, panorama.Config{
			MaxDistanceMeters:  c.Float64("pano-max-distance"),
			SearchRadiusMeters: cfg.StreetView.SearchRadius,
			LookupTimeout:      cfg.StreetView.Timeout,
			Concurrency:        c.Int("concurrency"),
			RequestsPerSecond:  cfg.StreetView.RequestsPerSecond,
		}, logger)
		svc.SetObserver(newProgress(c.App.ErrWriter, "Checking panoramas"))
		panoramas = svc
	}

	result, err := pipeline.NewService(panoramas, logger).RunSource(ctx, src, pipeline.Options{
		StartDate:       c.String("start-from"),
		EndDate:         c.String("end-on"),
		Dedupe:          c.Bool("dedupe"),
		DedupeDistance:  c.Float64("dedupe-distance"),
		FilterPanoramas: c.Bool("filter-panos"),
		PanoMaxDistance: c.Float64("pano-max-distance"),
	})
	if err != nil {
		return err
	}

	opts := reportOptions{
		Dedupe:         c.Bool("dedupe"),
		DedupeDistance: c.Float64("dedupe-distance"),
		FilterPanos:    c.Bool("filter-panos"),
	}
	printReport(c.App.Writer, result, opts)

	targets := exportTargets(c)
	if len(targets) == 0 {
		fmt.Fprintln(c.App.Writer, "No output files specified. Use --csv and/or --geojson to export files.")
		return nil
	}

	exporter, err := newExporter(cfg, c.Bool("publish"), logger)
	if err != nil {
		return err
	}

	outputs, err := exporter.Export(ctx, exportUC.Input{
		Records: result.Records,
		Targets: targets,
		Publish: c.Bool("publish"),
	})
	if err != nil {
		return err
	}

	printOutputs(c.App.Writer, outputs)
	return nil
}

func openSource(ctx context.Context, c *cli.Context) (source.PhotoSource, func(), error) {
	noop := func() {}

	set := 0
	for _, name := range []string{"manifest", "images"} {
		if c.String(name) != "" {
			set++
		}
	}
	if c.IsSet("photos-db") {
		set++
	}
	if set > 1 {
		return nil, noop, domain.ErrAmbiguousSource
	}

	switch {
	case c.String("manifest") != "":
		src, err := library.LoadManifest(c.String("manifest"))
		return src, noop, err
	case c.String("images") != "":
		src, err := library.NewExifSource(ctx, c.String("images"))
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close() }, nil
	case c.String("photos-db") != "":
		src, err := library.NewSQLiteSource(c.String("photos-db"))
		return src, noop, err
	default:
		return nil, noop, domain.ErrNoSource
	}
}

func exportTargets(c *cli.Context) []exportUC.Target {
	var targets []exportUC.Target
	if p := c.String("csv"); p != "" {
		targets = append(targets, exportUC.Target{Path: p, Encoder: export.NewCSVEncoder()})
	}
	if p := c.String("geojson"); p != "" {
		targets = append(targets, exportUC.Target{Path: p, Encoder: export.NewGeoJSONEncoder()})
	}
	return targets
}

func newExporter(cfg *config.Config, publish bool, logger *zap.Logger) (*exportUC.Service, error) {
	var objects adapterstorage.ObjectStorage
	if publish {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		switch {
		case errors.Is(err, storage.ErrBucketNotConfigured):
			logger.Warn("--publish requires S3_BUCKET, datasets are only written locally")
		case err != nil:
			return nil, err
		default:
			objects = s3Storage
		}
	}
	return exportUC.NewService(export.NewAtomicFileWriter(), objects, cfg.S3.KeyPrefix), nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
