package request

type ExtractionRequest struct {
	StartFrom       string   `form:"start_from"`
	EndOn           string   `form:"end_on"`
	Dedupe          bool     `form:"dedupe"`
	DedupeDistance  *float64 `form:"dedupe_distance" binding:"omitempty,min=0"`
	FilterPanos     bool     `form:"filter_panos"`
	PanoMaxDistance *float64 `form:"pano_max_distance" binding:"omitempty,gt=0"`
	Page            int      `form:"page" binding:"omitempty,min=1"`
	PerPage         int      `form:"per_page" binding:"omitempty,min=1,max=100"`
}
