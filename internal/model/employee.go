package model

import "time"

// Employee is one department staff member eligible for roster duty.
// JobTitle is free text from HR; the input builder normalizes it into a
// coarse role group for default eligibility. RoleIDOverrides are unioned
// into - never replace - the group defaults.
type Employee struct {
	EmployeeID             string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Name                   string      `gorm:"type:varchar(100);not null"                     json:"name"`
	JobTitle               string      `gorm:"type:varchar(200);not null;default:''"          json:"job_title"`
	RoleIDOverrides        StringArray `gorm:"type:text[]"                                    json:"role_id_overrides,omitempty"`
	BanWeekdays            IntArray    `gorm:"type:int[]"                                     json:"ban_weekdays,omitempty"` // 1=Mon … 7=Sun
	DefaultMaxSlots        *int        `gorm:"column:default_max_slots"                       json:"default_max_slots,omitempty"`
	DefaultMaxSlotsPerWeek *int        `gorm:"column:default_max_slots_per_week"              json:"default_max_slots_per_week,omitempty"`
	IsActive               bool        `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

func (Employee) TableName() string { return "employees" }

// AbsencePeriod is one date range during which an employee is unavailable.
// General absences and approved vacations feed the same ban-date set; the
// input builder unions overlapping sources.
type AbsencePeriod struct {
	AbsenceID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	EmployeeID string    `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	Kind       string    `gorm:"type:varchar(20);not null;default:'general'"    json:"kind"` // general | vacation
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Reason     string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (AbsencePeriod) TableName() string { return "absence_periods" }

// ShiftWish is one employee's preferences for one planning period.
// The cap fields arrive from the frontend as free numbers and are stored
// verbatim; normalization happens in the input builder.
type ShiftWish struct {
	WishID          string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"wish_id"`
	EmployeeID      string      `gorm:"type:uuid;not null;uniqueIndex:shift_wishes_period_unique" json:"employee_id"`
	Year            int         `gorm:"not null;uniqueIndex:shift_wishes_period_unique"      json:"year"`
	Month           int         `gorm:"not null;uniqueIndex:shift_wishes_period_unique"      json:"month"`
	MaxSlots        *float64    `gorm:"column:max_slots"                                     json:"max_slots,omitempty"`
	MaxSlotsPerWeek *float64    `gorm:"column:max_slots_per_week"                            json:"max_slots_per_week,omitempty"`
	PreferDates     StringArray `gorm:"type:text[]"                                          json:"prefer_dates,omitempty"`
	AvoidDates      StringArray `gorm:"type:text[]"                                          json:"avoid_dates,omitempty"`
	PreferRoleIDs   StringArray `gorm:"type:text[]"                                          json:"prefer_role_ids,omitempty"`
	AvoidRoleIDs    StringArray `gorm:"type:text[]"                                          json:"avoid_role_ids,omitempty"`
	SubmittedAt     time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"submitted_at"`
	CreatedAt       time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (ShiftWish) TableName() string { return "shift_wishes" }
