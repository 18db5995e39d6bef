package domain

const (
	// MaxPerPage caps every paginated listing.
	MaxPerPage = 100

	// DefaultRecipesPerPage is used when a recipe listing omits per_page.
	DefaultRecipesPerPage = 10

	// DefaultCommentsPerPage is used when a comment listing omits per_page.
	DefaultCommentsPerPage = 20
)

// PageRequest is a clamped page/per_page pair.
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest clamps page to >= 1 and perPage to 1..MaxPerPage, using
// defaultPerPage when perPage is below 1.
func NewPageRequest(page, perPage, defaultPerPage int) PageRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit is the number of rows on this page.
func (p PageRequest) Limit() int {
	return p.PerPage
}

// Pagination is the metadata returned with a counted listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  *int  `json:"total_items,omitempty"`
	TotalPages  *int  `json:"total_pages,omitempty"`
	HasNext     *bool `json:"has_next,omitempty"`
	HasPrevious *bool `json:"has_previous,omitempty"`
}

// Paginate builds full metadata for a listing of total items.
func (p PageRequest) Paginate(total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PerPage - 1) / p.PerPage
	}
	hasNext := p.Page < totalPages
	hasPrevious := p.Page > 1
	return Pagination{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalItems:  &total,
		TotalPages:  &totalPages,
		HasNext:     &hasNext,
		HasPrevious: &hasPrevious,
	}
}

// Position builds metadata without totals, used where no count is taken.
func (p PageRequest) Position() Pagination {
	return Pagination{CurrentPage: p.Page, PerPage: p.PerPage}
}
