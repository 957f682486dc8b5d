package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/photo-locations/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/photo-locations/internal/adapter/storage"
	"github.com/marcos-nsantos/photo-locations/internal/pkg/apperror"
	"github.com/marcos-nsantos/photo-locations/internal/pkg/httputil"
	"github.com/marcos-nsantos/photo-locations/internal/pkg/pagination"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

type ExtractionConfig struct {
	DedupeDistance  float64
	PanoMaxDistance float64
	MaxBodyBytes    int64
}

type ExtractionHandler struct {
	pipeline PipelineService
	manifest ManifestReader
	csv      storage.DatasetEncoder
	geojson  storage.DatasetEncoder
	cfg      ExtractionConfig
}

func NewExtractionHandler(
	pipelineSvc PipelineService,
	manifest ManifestReader,
	csv storage.DatasetEncoder,
	geojson storage.DatasetEncoder,
	cfg ExtractionConfig,
) *ExtractionHandler {
	return &ExtractionHandler{
		pipeline: pipelineSvc,
		manifest: manifest,
		csv:      csv,
		geojson:  geojson,
		cfg:      cfg,
	}
}

// Extract runs the pipeline over the uploaded manifest and returns one page of
// the surviving records along with the run counters.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	req, result, ok := h.run(c)
	if !ok {
		return
	}

	page := pagination.NewParams(req.Page, req.PerPage)
	httputil.OK(c, response.ExtractionFromResult(result, page))
}

func (h *ExtractionHandler) GeoJSON(c *gin.Context) {
	h.export(c, h.geojson)
}

func (h *ExtractionHandler) CSV(c *gin.Context) {
	h.export(c, h.csv)
}

func (h *ExtractionHandler) export(c *gin.Context, encoder storage.DatasetEncoder) {
	_, result, ok := h.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, result.Records); err != nil {
		httputil.HandleError(c, apperror.Internal(err))
		return
	}

	httputil.Data(c, encoder.ContentType(), buf.Bytes())
}

func (h *ExtractionHandler) run(c *gin.Context) (request.ExtractionRequest, *pipeline.Result, bool) {
	var req request.ExtractionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return req, nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.HandleError(c, apperror.PayloadTooLarge(tooLarge.Limit))
			return req, nil, false
		}
		httputil.HandleError(c, apperror.BadRequest("unable to read request body"))
		return req, nil, false
	}

	photos, err := h.manifest.Read(c.Request.Context(), body)
	if err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return req, nil, false
	}

	opts := pipeline.Options{
		StartDate:       req.StartFrom,
		EndDate:         req.EndOn,
		Dedupe:          req.Dedupe,
		DedupeDistance:  h.cfg.DedupeDistance,
		FilterPanoramas: req.FilterPanos,
		PanoMaxDistance: h.cfg.PanoMaxDistance,
	}
	if req.DedupeDistance != nil {
		opts.DedupeDistance = *req.DedupeDistance
	}
	if req.PanoMaxDistance != nil {
		opts.PanoMaxDistance = *req.PanoMaxDistance
	}

	result, err := h.pipeline.Run(c.Request.Context(), photos, opts)
	if err != nil {
		httputil.HandleError(c, apperror.FromDomain(err))
		return req, nil, false
	}

	return req, result, true
}
