package dto

// ── slot locks ──

// SetLockRequest pins a slot. EmployeeID null (or absent) pins the slot
// deliberately open; a value pins that employee.
type SetLockRequest struct {
	SlotID     string  `json:"-"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
}

// LockResponse is one stored lock as returned to clients.
type LockResponse struct {
	ID         string  `json:"id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	SlotID     string  `json:"slot_id"`
	EmployeeID *string `json:"employee_id"`
	UpdatedAt  string  `json:"updated_at"`
}

// ── runs ──

// RunRequest triggers a solver run. Seed is deliberately untyped: the
// frontend may send a number or a numeric string; anything else falls back
// to a wall-clock seed.
type RunRequest struct {
	Seed interface{} `json:"seed"`
}

// RunResponse is one persisted solver run. Input and Output carry the full
// canonical documents and are omitted from list views.
type RunResponse struct {
	ID        string      `json:"id"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	InputHash string      `json:"input_hash"`
	Engine    string      `json:"engine"`
	Seed      int64       `json:"seed"`
	CreatedAt string      `json:"created_at"`
	Input     interface{} `json:"input,omitempty"`
	Output    interface{} `json:"output,omitempty"`
}

// RunListQuery bounds the run-history listing.
type RunListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// PeriodStateResponse summarizes where a planning period stands.
type PeriodStateResponse struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	WishCount   int64   `json:"wish_count"`
	LockCount   int     `json:"lock_count"`
	LatestRunID *string `json:"latest_run_id,omitempty"`
	LatestRunAt *string `json:"latest_run_at,omitempty"`
	InputHash   *string `json:"input_hash,omitempty"`
	// Dirty reports that locks changed after the latest run, so the stored
	// roster no longer reflects the current pins.
	Dirty bool `json:"dirty"`
}
