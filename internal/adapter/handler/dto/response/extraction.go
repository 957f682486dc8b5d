package response

import (
	"time"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/pkg/pagination"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/stats"
)

type ExtractionResponse struct {
	Stats      StatsResponse      `json:"stats"`
	Counts     CountsResponse     `json:"counts"`
	Records    []RecordResponse   `json:"records"`
	Pagination PaginationResponse `json:"pagination"`
}

type StatsResponse struct {
	Total              int                  `json:"total"`
	Photos             int                  `json:"photos"`
	Videos             int                  `json:"videos"`
	Favorites          int                  `json:"favorites"`
	WithDescription    int                  `json:"with_description"`
	InvalidCoordinates int                  `json:"invalid_coordinates"`
	Regions            int                  `json:"regions"`
	Earliest           *time.Time           `json:"earliest,omitempty"`
	Latest             *time.Time           `json:"latest,omitempty"`
	Extent             *BoundingBoxResponse `json:"extent,omitempty"`
}

type BoundingBoxResponse struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

type CountsResponse struct {
	TotalFound        int  `json:"total_found"`
	NullCoordinates   int  `json:"null_coordinates"`
	SkippedNonCamera  int  `json:"skipped_non_camera"`
	DateFiltered      int  `json:"date_filtered"`
	DuplicatesRemoved int  `json:"duplicates_removed"`
	PanoFiltered      int  `json:"pano_filtered"`
	PanoSkipped       bool `json:"pano_skipped,omitempty"`
}

type RecordResponse struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Timestamp   *time.Time        `json:"timestamp,omitempty"`
	IsVideo     bool              `json:"is_video"`
	IsFavorite  bool              `json:"is_favorite"`
	Region      string            `json:"region"`
	Panorama    *PanoramaResponse `json:"panorama,omitempty"`
}

type PanoramaResponse struct {
	ID             string  `json:"id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistanceMeters float64 `json:"distance_m"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func ExtractionFromResult(result *pipeline.Result, page pagination.Params) ExtractionResponse {
	return ExtractionResponse{
		Stats: StatsFromSummary(result.Stats),
		Counts: CountsResponse{
			TotalFound:        result.TotalFound,
			NullCoordinates:   result.NullCoordinates,
			SkippedNonCamera:  result.SkippedNonCamera,
			DateFiltered:      result.DateFiltered,
			DuplicatesRemoved: result.DuplicatesRemoved,
			PanoFiltered:      result.PanoramaFiltered,
			PanoSkipped:       result.PanoramasSkipped,
		},
		Records:    RecordsFromEntities(pagination.Slice(result.Records, page)),
		Pagination: PaginationFromInfo(pagination.NewInfo(page, len(result.Records))),
	}
}

func StatsFromSummary(s stats.Stats) StatsResponse {
	resp := StatsResponse{
		Total:              s.Total,
		Photos:             s.PhotoCount,
		Videos:             s.VideoCount,
		Favorites:          s.FavoriteCount,
		WithDescription:    s.WithDescriptionCount,
		InvalidCoordinates: s.InvalidCoordinates,
		Regions:            s.RegionCount,
		Earliest:           s.Earliest,
		Latest:             s.Latest,
	}
	if s.Extent != nil {
		resp.Extent = &BoundingBoxResponse{
			MinLat: s.Extent.MinLat,
			MaxLat: s.Extent.MaxLat,
			MinLng: s.Extent.MinLng,
			MaxLng: s.Extent.MaxLng,
		}
	}
	return resp
}

func RecordFromEntity(r *entity.LocationRecord) RecordResponse {
	resp := RecordResponse{
		ID:          r.ID,
		Filename:    r.Filename,
		Title:       r.Title,
		Description: r.Description,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Timestamp:   r.Timestamp,
		IsVideo:     r.IsVideo,
		IsFavorite:  r.IsFavorite,
		Region:      r.Region,
	}
	if r.Panorama != nil {
		resp.Panorama = &PanoramaResponse{
			ID:             r.Panorama.ID,
			Latitude:       r.Panorama.Latitude,
			Longitude:      r.Panorama.Longitude,
			DistanceMeters: r.Panorama.DistanceMeters,
		}
	}
	return resp
}

func RecordsFromEntities(records []entity.LocationRecord) []RecordResponse {
	result := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, RecordFromEntity(&r))
	}
	return result
}

func PaginationFromInfo(info *pagination.Info) PaginationResponse {
	return PaginationResponse{
		Page:       info.Page,
		PerPage:    info.PerPage,
		TotalItems: info.TotalItems,
		TotalPages: info.TotalPages,
		HasNext:    info.HasNext,
		HasPrev:    info.HasPrev,
	}
}
