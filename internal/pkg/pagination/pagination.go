package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 50
	MaxPerPage     = 100
)

type Params struct {
	Page    int
	PerPage int
}

// NewParams clamps page and perPage into the accepted range.
func NewParams(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Params{
		Page:    page,
		PerPage: min(perPage, MaxPerPage),
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Slice returns the page of items selected by p. Pages past the end are empty.
func Slice[T any](items []T, p Params) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.PerPage, len(items))
	return items[start:end]
}

type Info struct {
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewInfo(p Params, totalItems int) *Info {
	totalPages := (totalItems + p.PerPage - 1) / p.PerPage
	if totalPages == 0 {
		totalPages = 1
	}

	return &Info{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
