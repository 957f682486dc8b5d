package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/handler"
	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/export"
	"github.com/marcos-nsantos/photo-locations/internal/mocks"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

var defaultExtractionConfig = handler.ExtractionConfig{
	DedupeDistance:  200,
	PanoMaxDistance: 40,
	MaxBodyBytes:    1 << 20,
}

func newExtractionRouter(pipelineSvc handler.PipelineService, manifest handler.ManifestReader, cfg handler.ExtractionConfig) *gin.Engine {
	h := handler.NewExtractionHandler(pipelineSvc, manifest, export.NewCSVEncoder(), export.NewGeoJSONEncoder(), cfg)

	router := setupRouter()
	router.POST("/extractions", h.Extract)
	router.POST("/extractions/geojson", h.GeoJSON)
	router.POST("/extractions/csv", h.CSV)
	return router
}

func sampleResult(n int) *pipeline.Result {
	records := make([]entity.LocationRecord, 0, n)
	for i := range n {
		records = append(records, entity.LocationRecord{
			ID:        string(rune('a' + i)),
			Filename:  "IMG.JPG",
			Latitude:  10 + float64(i),
			Longitude: 20,
			Region:    "Japan",
		})
	}
	return &pipeline.Result{
		Records:         records,
		TotalFound:      n + 1,
		NullCoordinates: 1,
	}
}

func TestExtractionHandler_Extract(t *testing.T) {
	t.Run("returns paginated records", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		photos := []entity.Photo{&entity.RawPhoto{UUID: "a"}}
		manifest.EXPECT().Read(gomock.Any(), []byte(`[{"uuid":"a"}]`)).Return(photos, nil)
		pipelineSvc.EXPECT().
			Run(gomock.Any(), photos, pipeline.Options{
				StartDate:       "2023-01-01",
				Dedupe:          true,
				DedupeDistance:  200,
				PanoMaxDistance: 40,
			}).
			Return(sampleResult(3), nil)

		req := httptest.NewRequest(http.MethodPost, "/extractions?start_from=2023-01-01&dedupe=true&per_page=2", strings.NewReader(`[{"uuid":"a"}]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		records := resp["records"].([]any)
		assert.Len(t, records, 2)

		counts := resp["counts"].(map[string]any)
		assert.Equal(t, float64(4), counts["total_found"])
		assert.Equal(t, float64(1), counts["null_coordinates"])

		page := resp["pagination"].(map[string]any)
		assert.Equal(t, float64(3), page["total_items"])
		assert.Equal(t, float64(2), page["total_pages"])
		assert.Equal(t, true, page["has_next"])
	})

	t.Run("applies distance overrides", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().
			Run(gomock.Any(), gomock.Any(), pipeline.Options{
				Dedupe:          true,
				DedupeDistance:  0,
				FilterPanoramas: true,
				PanoMaxDistance: 15,
			}).
			Return(sampleResult(0), nil)

		req := httptest.NewRequest(http.MethodPost, "/extractions?dedupe=true&dedupe_distance=0&filter_panos=true&pano_max_distance=15", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects invalid query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := newExtractionRouter(mocks.NewMockPipelineService(ctrl), mocks.NewMockManifestReader(ctrl), defaultExtractionConfig)

		req := httptest.NewRequest(http.MethodPost, "/extractions?dedupe_distance=-5", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("maps invalid date range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrInvalidRange)

		req := httptest.NewRequest(http.MethodPost, "/extractions?start_from=2024-01-01&end_on=2023-01-01", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_DATE_RANGE")
	})

	t.Run("maps empty manifest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(mocks.NewMockPipelineService(ctrl), manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmptyManifest)

		req := httptest.NewRequest(http.MethodPost, "/extractions", http.NoBody)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_MANIFEST")
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cfg := defaultExtractionConfig
		cfg.MaxBodyBytes = 8
		router := newExtractionRouter(mocks.NewMockPipelineService(ctrl), mocks.NewMockManifestReader(ctrl), cfg)

		req := httptest.NewRequest(http.MethodPost, "/extractions", strings.NewReader(`[{"uuid":"too long"}]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
	})

	t.Run("hides internal errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("coverage: connection refused"))

		req := httptest.NewRequest(http.MethodPost, "/extractions", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestExtractionHandler_Exports(t *testing.T) {
	t.Run("renders geojson", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleResult(2), nil)

		req := httptest.NewRequest(http.MethodPost, "/extractions/geojson", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `"region": "Japan"`)
	})

	t.Run("renders csv", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		router := newExtractionRouter(pipelineSvc, manifest, defaultExtractionConfig)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleResult(2), nil)

		req := httptest.NewRequest(http.MethodPost, "/extractions/csv", strings.NewReader(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Equal(t, "Latitude,Longitude\n10,20\n11,20\n", w.Body.String())
	})

	t.Run("encoder failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pipelineSvc := mocks.NewMockPipelineService(ctrl)
		manifest := mocks.NewMockManifestReader(ctrl)
		encoder := mocks.NewMockDatasetEncoder(ctrl)
		h := handler.NewExtractionHandler(pipelineSvc, manifest, encoder, encoder, defaultExtractionConfig)

		router := setupRouter()
		router.POST("/extractions/csv", h.CSV)

		manifest.EXPECT().Read(gomock.Any(), gomock.Any()).Return([]entity.Photo{}, nil)
		pipelineSvc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleResult(1), nil)
		encoder.EXPECT().Encode(gomock.Any(), gomock.Any()).
			DoAndReturn(func(w io.Writer, _ []entity.LocationRecord) error {
				_, _ = w.Write([]byte("partial"))
				return errors.New("disk full")
			})

		req := httptest.NewRequest(http.MethodPost, "/extractions/csv", bytes.NewBufferString(`[]`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "partial")
	})
}
