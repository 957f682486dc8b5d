package coverage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/coverage"
	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/config"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	metadataPath   = "/maps/api/streetview/metadata"

	maxResponseBytes = 1 << 20
)

// StreetViewClient queries the Street View Static API metadata endpoint,
// which reports the nearest panorama without billing an image request.
type StreetViewClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewStreetViewClient(baseURL, apiKey string, timeout time.Duration) (*StreetViewClient, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &StreetViewClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *StreetViewClient) Lookup(ctx context.Context, lat, lng float64, radiusMeters int) (*entity.CoveragePoint, error) {
	query := url.Values{}
	query.Set("location", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(radiusMeters))
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+metadataPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the request URL, key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCoverageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCoverageUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrCoverageUnavailable, err)
	}

	return parseMetadata(body)
}

func parseMetadata(body []byte) (*entity.CoveragePoint, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", domain.ErrMalformedCoverage)
	}

	doc := gjson.ParseBytes(body)
	status := doc.Get("status").String()

	switch status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: status %q", domain.ErrCoverageUnavailable, status)
	}

	lat := doc.Get("location.lat")
	lng := doc.Get("location.lng")
	pano := doc.Get("pano_id")
	if lat.Type != gjson.Number || lng.Type != gjson.Number || pano.String() == "" {
		return nil, fmt.Errorf("%w: missing location or pano_id", domain.ErrMalformedCoverage)
	}

	return &entity.CoveragePoint{
		Latitude:  lat.Float(),
		Longitude: lng.Float(),
		ID:        pano.String(),
	}, nil
}

// NewClient builds the Street View client described by cfg, memoized when a
// cache size is configured.
func NewClient(cfg config.StreetViewConfig) (coverage.Client, error) {
	client, err := NewStreetViewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize <= 0 {
		return client, nil
	}
	return NewCachingClient(client, cfg.CacheSize)
}
