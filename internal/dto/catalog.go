package dto

// ── coverage catalog ──

// CreateServiceRoleRequest adds one duty kind to the catalog.
type CreateServiceRoleRequest struct {
	Code      string `json:"code"       binding:"required,min=1,max=50"`
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	Weekdays  []int  `json:"weekdays"   binding:"omitempty,dive,min=1,max=7"`
	SortOrder int    `json:"sort_order" binding:"omitempty,min=0"`
}

// UpdateServiceRoleRequest modifies a duty kind; Version carries the
// optimistic-lock counter the client last read.
type UpdateServiceRoleRequest struct {
	Code      *string `json:"code"       binding:"omitempty,min=1,max=50"`
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	Weekdays  *[]int  `json:"weekdays"   binding:"omitempty,dive,min=1,max=7"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,min=0"`
	Version   int     `json:"version"    binding:"required,min=1"`
}

// ServiceRoleResponse is one catalog entry as returned to clients.
type ServiceRoleResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Weekdays  []int  `json:"weekdays"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
