package plan

import "encoding/json"

// Versioned planning documents exchanged between the input builder, the
// assignment engine and the run store. Field order and the fixed "v1"
// version string are part of the persistence contract: stored runs are
// compared byte-for-byte and by content hash.

const (
	// DocVersion is the planning document schema version.
	DocVersion = "v1"
	// KindDutyRoster tags documents produced by the duty-roster pipeline.
	KindDutyRoster = "duty-roster"
)

// Violation codes.
const (
	CodeLockInvalidEmployee = "LOCK_INVALID_EMPLOYEE"
	CodeNoCandidate         = "NO_CANDIDATE"
)

// Unfilled-slot reasons.
const (
	ReasonSlotLockedEmpty     = "slot locked empty"
	ReasonNoCandidate         = "no eligible employee available"
	ReasonLockUnknownEmployee = "lock references unknown employee"
)

// InputMeta is the input document envelope.
type InputMeta struct {
	GeneratedAt string `json:"generated_at"`
	Kind        string `json:"kind"`
}

// OutputMeta is the output document envelope. GeneratedAt is copied from
// the input so that identical input + seed produces byte-identical output.
type OutputMeta struct {
	GeneratedAt string `json:"generated_at"`
	Kind        string `json:"kind"`
	Seed        int64  `json:"seed"`
	Engine      string `json:"engine"`
}

// Period is the planning month with its derived date bounds.
type Period struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// Role describes one service role from the coverage catalog.
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Slot is one (date, service role) unit of required coverage.
// ID is deterministic from date and role, stable across rebuilds.
type Slot struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	RoleID    string `json:"role_id"`
	ISOWeek   int    `json:"iso_week"`
	IsWeekend bool   `json:"is_weekend"`
}

// Preferences are soft wishes carried through the documents for audit.
// The default engine does not consult them during selection.
type Preferences struct {
	PreferDates   []string `json:"prefer_dates,omitempty"`
	AvoidDates    []string `json:"avoid_dates,omitempty"`
	PreferRoleIDs []string `json:"prefer_role_ids,omitempty"`
	AvoidRoleIDs  []string `json:"avoid_role_ids,omitempty"`
}

// EmployeeRecord is one employee's materialized eligibility for the period.
// Nil caps mean unbounded.
type EmployeeRecord struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	CanRoleIDs      []string     `json:"can_role_ids"`
	BanDates        []string     `json:"ban_dates,omitempty"`
	BanWeekdays     []int        `json:"ban_weekdays,omitempty"` // 1=Mon … 7=Sun
	MaxSlots        *int         `json:"max_slots,omitempty"`
	MaxSlotsPerWeek *int         `json:"max_slots_per_week,omitempty"`
	Preferences     *Preferences `json:"preferences,omitempty"`
}

// PlanningInput is the materialized, schema-validated engine input.
type PlanningInput struct {
	Version   string           `json:"version"`
	Meta      InputMeta        `json:"meta"`
	Period    Period           `json:"period"`
	Roles     []Role           `json:"roles"`
	Slots     []Slot           `json:"slots"`
	Employees []EmployeeRecord `json:"employees"`
	Rules     json.RawMessage  `json:"rules,omitempty"`
}

// Lock is the engine-facing view of one manual slot pin.
// A nil EmployeeID forces the slot to stay open.
type Lock struct {
	SlotID     string  `json:"slot_id"`
	EmployeeID *string `json:"employee_id"`
}

// Assignment maps one filled slot to its employee.
type Assignment struct {
	SlotID     string `json:"slot_id"`
	EmployeeID string `json:"employee_id"`
}

// Violation is one accumulated irregularity. Violations are reported,
// never thrown: the engine always returns a usable partial plan.
type Violation struct {
	Code       string `json:"code"`
	Hard       bool   `json:"hard"`
	Message    string `json:"message"`
	SlotID     string `json:"slot_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// UnfilledSlot is one slot no assignment was produced for; every unmatched
// slot appears exactly once.
type UnfilledSlot struct {
	SlotID  string   `json:"slot_id"`
	Reasons []string `json:"reasons"`
}

// Coverage counts filled versus required slots.
type Coverage struct {
	Filled   int `json:"filled"`
	Required int `json:"required"`
}

// Summary aggregates the run result.
type Summary struct {
	Score    float64  `json:"score"` // filled/required, 0 when no slots
	Coverage Coverage `json:"coverage"`
}

// PlanningOutput is the engine result document. Rules are passed through
// from the input untouched, as audit metadata only.
type PlanningOutput struct {
	Version       string          `json:"version"`
	Meta          OutputMeta      `json:"meta"`
	Assignments   []Assignment    `json:"assignments"`
	Violations    []Violation     `json:"violations"`
	UnfilledSlots []UnfilledSlot  `json:"unfilled_slots"`
	Summary       Summary         `json:"summary"`
	Rules         json.RawMessage `json:"rules,omitempty"`
}
