package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a normalized page request. Build it with NewParams.
type Params struct {
	Page    int
	PerPage int
}

func NewParams(page, perPage int) Params {
	p := Params{Page: max(page, DefaultPage), PerPage: perPage}
	switch {
	case perPage < 1:
		p.PerPage = DefaultPerPage
	case perPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

func (p Params) Limit() int { return p.PerPage }

// Info is the page envelope returned next to list results.
type Info struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewInfo describes page p of a result set holding total rows. An empty
// set still reports one page.
func NewInfo(p Params, total int) *Info {
	pages := 1
	if p.PerPage > 0 && total > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}

	return &Info{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
