package model

// ServiceRole is one duty kind in the coverage catalog (ward day shift,
// ICU night shift, weekend on-call ...). Every active role produces one
// roster slot per applicable calendar day.
type ServiceRole struct {
	ServiceRoleID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_role_id"`
	Code          string   `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Name          string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Weekdays      IntArray `gorm:"type:int[]"                                     json:"weekdays,omitempty"` // 1=Mon … 7=Sun; empty = every day
	IsActive      bool     `gorm:"not null;default:true"                          json:"is_active"`
	SortOrder     int      `gorm:"not null;default:0"                             json:"sort_order"`
	VersionedModel
}

func (ServiceRole) TableName() string { return "service_roles" }
