package dto

// ── employees ──

// CreateEmployeeRequest registers one staff member.
type CreateEmployeeRequest struct {
	Name                   string   `json:"name"                       binding:"required,min=1,max=100"`
	JobTitle               string   `json:"job_title"                  binding:"omitempty,max=200"`
	RoleIDOverrides        []string `json:"role_id_overrides"          binding:"omitempty,dive,uuid"`
	BanWeekdays            []int    `json:"ban_weekdays"               binding:"omitempty,dive,min=1,max=7"`
	DefaultMaxSlots        *int     `json:"default_max_slots"          binding:"omitempty,min=0"`
	DefaultMaxSlotsPerWeek *int     `json:"default_max_slots_per_week" binding:"omitempty,min=0"`
}

// UpdateEmployeeRequest modifies a staff member; Version carries the
// optimistic-lock counter the client last read.
type UpdateEmployeeRequest struct {
	Name                   *string   `json:"name"                       binding:"omitempty,min=1,max=100"`
	JobTitle               *string   `json:"job_title"                  binding:"omitempty,max=200"`
	RoleIDOverrides        *[]string `json:"role_id_overrides"          binding:"omitempty,dive,uuid"`
	BanWeekdays            *[]int    `json:"ban_weekdays"               binding:"omitempty,dive,min=1,max=7"`
	DefaultMaxSlots        *int      `json:"default_max_slots"          binding:"omitempty,min=0"`
	DefaultMaxSlotsPerWeek *int      `json:"default_max_slots_per_week" binding:"omitempty,min=0"`
	IsActive               *bool     `json:"is_active"`
	Version                int       `json:"version"                    binding:"required,min=1"`
}

// EmployeeResponse is one staff member as returned to clients.
type EmployeeResponse struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	JobTitle               string   `json:"job_title"`
	RoleIDOverrides        []string `json:"role_id_overrides"`
	BanWeekdays            []int    `json:"ban_weekdays"`
	DefaultMaxSlots        *int     `json:"default_max_slots,omitempty"`
	DefaultMaxSlotsPerWeek *int     `json:"default_max_slots_per_week,omitempty"`
	IsActive               bool     `json:"is_active"`
	Version                int      `json:"version"`
	CreatedAt              string   `json:"created_at"`
	UpdatedAt              string   `json:"updated_at"`
}

// ── absences ──

// CreateAbsenceRequest records one unavailable date range.
type CreateAbsenceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Kind       string `json:"kind"        binding:"omitempty,oneof=general vacation"`
	StartDate  string `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"    binding:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"      binding:"omitempty,max=500"`
}

// AbsenceResponse is one absence period as returned to clients.
type AbsenceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ── shift wishes ──

// SubmitWishRequest stores one employee's preferences for a period,
// replacing any earlier submission. The cap fields are deliberately loose
// (floats, no minimum): the roster input builder normalizes whatever the
// frontend sends.
type SubmitWishRequest struct {
	EmployeeID      string   `json:"employee_id"        binding:"required,uuid"`
	MaxSlots        *float64 `json:"max_slots"`
	MaxSlotsPerWeek *float64 `json:"max_slots_per_week"`
	PreferDates     []string `json:"prefer_dates"       binding:"omitempty,dive,datetime=2006-01-02"`
	AvoidDates      []string `json:"avoid_dates"        binding:"omitempty,dive,datetime=2006-01-02"`
	PreferRoleIDs   []string `json:"prefer_role_ids"    binding:"omitempty,dive,uuid"`
	AvoidRoleIDs    []string `json:"avoid_role_ids"     binding:"omitempty,dive,uuid"`
}

// WishResponse is one stored wish as returned to clients.
type WishResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	Year            int      `json:"year"`
	Month           int      `json:"month"`
	MaxSlots        *float64 `json:"max_slots,omitempty"`
	MaxSlotsPerWeek *float64 `json:"max_slots_per_week,omitempty"`
	PreferDates     []string `json:"prefer_dates"`
	AvoidDates      []string `json:"avoid_dates"`
	PreferRoleIDs   []string `json:"prefer_role_ids"`
	AvoidRoleIDs    []string `json:"avoid_role_ids"`
	SubmittedAt     string   `json:"submitted_at"`
}
