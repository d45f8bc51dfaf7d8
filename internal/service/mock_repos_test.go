package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	pkgerrors "github.com/hinterbergers/mycliniq-sub000/pkg/errors"
)

// ── Mock ServiceRoleRepository ──

type mockServiceRoleRepo struct {
	roles []*model.ServiceRole
	seq   int
}

func newMockServiceRoleRepo() *mockServiceRoleRepo {
	return &mockServiceRoleRepo{}
}

func (m *mockServiceRoleRepo) Create(_ context.Context, role *model.ServiceRole) error {
	if role.ServiceRoleID == "" {
		m.seq++
		role.ServiceRoleID = fmt.Sprintf("role-%03d", m.seq)
	}
	for _, r := range m.roles {
		if r.Code == role.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	m.roles = append(m.roles, role)
	return nil
}

func (m *mockServiceRoleRepo) GetByID(_ context.Context, id string) (*model.ServiceRole, error) {
	for _, r := range m.roles {
		if r.ServiceRoleID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockServiceRoleRepo) List(_ context.Context, activeOnly bool) ([]model.ServiceRole, error) {
	out := make([]model.ServiceRole, 0, len(m.roles))
	for _, r := range m.roles {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (m *mockServiceRoleRepo) Update(_ context.Context, role *model.ServiceRole) error {
	for i, r := range m.roles {
		if r.ServiceRoleID == role.ServiceRoleID {
			if r.Version != role.Version {
				return pkgerrors.ErrOptimisticLock
			}
			role.Version++
			m.roles[i] = role
			return nil
		}
	}
	return pkgerrors.ErrOptimisticLock
}

func (m *mockServiceRoleRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.roles {
		if r.ServiceRoleID == id {
			m.roles = append(m.roles[:i], m.roles[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees []*model.Employee
	seq       int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.EmployeeID == "" {
		m.seq++
		emp.EmployeeID = fmt.Sprintf("emp-%03d", m.seq)
	}
	m.employees = append(m.employees, emp)
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, activeOnly bool) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	for i, e := range m.employees {
		if e.EmployeeID == emp.EmployeeID {
			if e.Version != emp.Version {
				return pkgerrors.ErrOptimisticLock
			}
			emp.Version++
			m.employees[i] = emp
			return nil
		}
	}
	return pkgerrors.ErrOptimisticLock
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.employees {
		if e.EmployeeID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences []*model.AbsencePeriod
	seq      int
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{}
}

func (m *mockAbsenceRepo) Create(_ context.Context, ap *model.AbsencePeriod) error {
	if ap.AbsenceID == "" {
		m.seq++
		ap.AbsenceID = fmt.Sprintf("abs-%03d", m.seq)
	}
	m.absences = append(m.absences, ap)
	return nil
}

func (m *mockAbsenceRepo) GetByID(_ context.Context, id string) (*model.AbsencePeriod, error) {
	for _, a := range m.absences {
		if a.AbsenceID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.AbsencePeriod, error) {
	var out []model.AbsencePeriod
	for _, a := range m.absences {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAbsenceRepo) ListIntersecting(_ context.Context, from, to time.Time) ([]model.AbsencePeriod, error) {
	var out []model.AbsencePeriod
	for _, a := range m.absences {
		if !a.StartDate.After(to) && !a.EndDate.Before(from) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.absences {
		if a.AbsenceID == id {
			m.absences = append(m.absences[:i], m.absences[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock ShiftWishRepository ──

type mockShiftWishRepo struct {
	wishes []*model.ShiftWish
	seq    int
}

func newMockShiftWishRepo() *mockShiftWishRepo {
	return &mockShiftWishRepo{}
}

func (m *mockShiftWishRepo) Upsert(_ context.Context, wish *model.ShiftWish) error {
	wish.SubmittedAt = time.Now()
	for i, w := range m.wishes {
		if w.EmployeeID == wish.EmployeeID && w.Year == wish.Year && w.Month == wish.Month {
			wish.WishID = w.WishID
			m.wishes[i] = wish
			return nil
		}
	}
	m.seq++
	wish.WishID = fmt.Sprintf("wish-%03d", m.seq)
	m.wishes = append(m.wishes, wish)
	return nil
}

func (m *mockShiftWishRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, year, month int) (*model.ShiftWish, error) {
	for _, w := range m.wishes {
		if w.EmployeeID == employeeID && w.Year == year && w.Month == month {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftWishRepo) ListByPeriod(_ context.Context, year, month int) ([]model.ShiftWish, error) {
	var out []model.ShiftWish
	for _, w := range m.wishes {
		if w.Year == year && w.Month == month {
			out = append(out, *w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (m *mockShiftWishRepo) CountByPeriod(_ context.Context, year, month int) (int64, error) {
	var n int64
	for _, w := range m.wishes {
		if w.Year == year && w.Month == month {
			n++
		}
	}
	return n, nil
}

func (m *mockShiftWishRepo) Delete(_ context.Context, id string) error {
	for i, w := range m.wishes {
		if w.WishID == id {
			m.wishes = append(m.wishes[:i], m.wishes[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock SlotLockRepository ──

type mockSlotLockRepo struct {
	locks []*model.SlotLock
	seq   int
}

func newMockSlotLockRepo() *mockSlotLockRepo {
	return &mockSlotLockRepo{}
}

func (m *mockSlotLockRepo) Upsert(_ context.Context, lock *model.SlotLock) error {
	for i, l := range m.locks {
		if l.Year == lock.Year && l.Month == lock.Month && l.SlotID == lock.SlotID {
			lock.LockID = l.LockID
			lock.UpdatedAt = time.Now()
			m.locks[i] = lock
			return nil
		}
	}
	m.seq++
	lock.LockID = fmt.Sprintf("lock-%03d", m.seq)
	lock.UpdatedAt = time.Now()
	m.locks = append(m.locks, lock)
	return nil
}

func (m *mockSlotLockRepo) GetBySlot(_ context.Context, year, month int, slotID string) (*model.SlotLock, error) {
	for _, l := range m.locks {
		if l.Year == year && l.Month == month && l.SlotID == slotID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotLockRepo) ListByPeriod(_ context.Context, year, month int) ([]model.SlotLock, error) {
	var out []model.SlotLock
	for _, l := range m.locks {
		if l.Year == year && l.Month == month {
			out = append(out, *l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SlotID < out[j].SlotID })
	return out, nil
}

func (m *mockSlotLockRepo) LatestUpdateByPeriod(_ context.Context, year, month int) (time.Time, error) {
	var latest time.Time
	for _, l := range m.locks {
		if l.Year == year && l.Month == month && l.UpdatedAt.After(latest) {
			latest = l.UpdatedAt
		}
	}
	return latest, nil
}

func (m *mockSlotLockRepo) DeleteBySlot(_ context.Context, year, month int, slotID string) error {
	for i, l := range m.locks {
		if l.Year == year && l.Month == month && l.SlotID == slotID {
			m.locks = append(m.locks[:i], m.locks[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock PlanningRunRepository ──

type mockPlanningRunRepo struct {
	runs []*model.PlanningRun
	seq  int
}

func newMockPlanningRunRepo() *mockPlanningRunRepo {
	return &mockPlanningRunRepo{}
}

func (m *mockPlanningRunRepo) Create(_ context.Context, run *model.PlanningRun) error {
	m.seq++
	run.RunID = fmt.Sprintf("run-%03d", m.seq)
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockPlanningRunRepo) GetByID(_ context.Context, id string) (*model.PlanningRun, error) {
	for _, r := range m.runs {
		if r.RunID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanningRunRepo) GetLatest(_ context.Context, year, month int) (*model.PlanningRun, error) {
	var latest *model.PlanningRun
	for _, r := range m.runs {
		if r.Year != year || r.Month != month {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockPlanningRunRepo) ListByPeriod(_ context.Context, year, month, limit int) ([]model.PlanningRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []model.PlanningRun
	for _, r := range m.runs {
		if r.Year == year && r.Month == month {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
