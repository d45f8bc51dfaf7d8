package model

import (
	"time"

	"gorm.io/datatypes"
)

// SlotLock is one manual per-slot pin overriding the roster engine.
// A NULL EmployeeID means "deliberately open": the engine must leave the
// slot unfilled. Absence of a row means "unlocked", the engine decides.
type SlotLock struct {
	LockID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"lock_id"`
	Year       int       `gorm:"not null;uniqueIndex:slot_locks_period_slot_unique"  json:"year"`
	Month      int       `gorm:"not null;uniqueIndex:slot_locks_period_slot_unique"  json:"month"`
	SlotID     string    `gorm:"type:varchar(120);not null;uniqueIndex:slot_locks_period_slot_unique" json:"slot_id"`
	EmployeeID *string   `gorm:"type:uuid"                                           json:"employee_id"`
	CreatedBy  *string   `gorm:"type:uuid"                                           json:"created_by,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"updated_at"`
}

func (SlotLock) TableName() string { return "slot_locks" }

// PlanningRun is one immutable, append-only record of an engine invocation:
// the canonical input hash for change detection, both full documents for
// replay, and the seed that makes the run reproducible.
type PlanningRun struct {
	RunID       string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"run_id"`
	Year        int            `gorm:"not null;index:idx_planning_runs_period"        json:"year"`
	Month       int            `gorm:"not null;index:idx_planning_runs_period"        json:"month"`
	InputHash   string         `gorm:"type:varchar(64);not null"                      json:"input_hash"`
	InputJSON   datatypes.JSON `gorm:"column:input_json;not null"                     json:"input_json"`
	OutputJSON  datatypes.JSON `gorm:"column:output_json;not null"                    json:"output_json"`
	Engine      string         `gorm:"type:varchar(50);not null"                      json:"engine"`
	Seed        int64          `gorm:"not null"                                       json:"seed"`
	CreatedByID *string        `gorm:"type:uuid"                                      json:"created_by_id,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (PlanningRun) TableName() string { return "planning_runs" }
