package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	StreetView StreetViewConfig
	Pipeline   PipelineConfig
	Library    LibraryConfig
	S3         S3Config
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	MaxBodyBytes    int64         `envconfig:"SERVER_MAX_BODY_BYTES" default:"33554432"`
	RequestsPerSec  int           `envconfig:"SERVER_REQUESTS_PER_SECOND" default:"5"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type StreetViewConfig struct {
	APIKey            string        `envconfig:"MAP_API_KEY"`
	BaseURL           string        `envconfig:"STREETVIEW_BASE_URL" default:"https://maps.googleapis.com"`
	Timeout           time.Duration `envconfig:"STREETVIEW_TIMEOUT" default:"5s"`
	SearchRadius      int           `envconfig:"STREETVIEW_SEARCH_RADIUS" default:"50"`
	RequestsPerSecond int           `envconfig:"STREETVIEW_REQUESTS_PER_SECOND" default:"10"`
	Concurrency       int           `envconfig:"STREETVIEW_CONCURRENCY" default:"1"`
	CacheSize         int           `envconfig:"STREETVIEW_CACHE_SIZE" default:"4096"`
}

func (c StreetViewConfig) Enabled() bool {
	return c.APIKey != ""
}

type PipelineConfig struct {
	DedupeDistance  float64 `envconfig:"DEDUPE_DISTANCE" default:"200"`
	PanoMaxDistance float64 `envconfig:"PANO_MAX_DISTANCE" default:"40"`
}

type LibraryConfig struct {
	PhotosDBPath string `envconfig:"PHOTOS_DB_PATH"`
}

// S3Config is optional; publishing is disabled while Bucket is empty.
type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string `envconfig:"S3_PUBLIC_URL"`
	KeyPrefix       string `envconfig:"S3_KEY_PREFIX" default:"datasets"`
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
