package request

// PaginatedRequest carries the page/per_page query parameters shared by the
// list endpoints. Handlers fill in defaults (page 1, 10 per page) before
// the request reaches a service.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Offset is the row offset of the requested page.
func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Limit clamps per_page into the 1..100 window the repositories expect.
func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
