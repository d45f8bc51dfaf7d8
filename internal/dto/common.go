package dto

// PaginationRequest is embedded by list query parameter structs.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// PeriodURI binds the :year/:month path segments shared by all
// period-scoped routes.
type PeriodURI struct {
	Year  int `uri:"year"  binding:"required,min=2000,max=2100"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}
