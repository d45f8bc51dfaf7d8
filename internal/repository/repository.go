package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	ServiceRole ServiceRoleRepository
	Employee    EmployeeRepository
	Absence     AbsenceRepository
	ShiftWish   ShiftWishRepository
	SlotLock    SlotLockRepository
	PlanningRun PlanningRunRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ServiceRole: NewServiceRoleRepo(db),
		Employee:    NewEmployeeRepo(db),
		Absence:     NewAbsenceRepo(db),
		ShiftWish:   NewShiftWishRepo(db),
		SlotLock:    NewSlotLockRepo(db),
		PlanningRun: NewPlanningRunRepo(db),
	}
}
