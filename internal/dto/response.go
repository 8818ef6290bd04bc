package dto

// PaginationRequest carries the shared paging query params.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default applied.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default applied.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset computes the query offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// UnitBrief is the minimal unit reference embedded in other payloads.
type UnitBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InternBrief is the minimal intern reference embedded in other payloads.
type InternBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Batch string `json:"batch"`
}
