package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
	pkgerrors "github.com/hinterbergers/mycliniq-sub000/pkg/errors"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeStale      = errors.New("employee was modified concurrently")
	ErrAbsenceNotFound    = errors.New("absence period not found")
	ErrAbsenceBadRange    = errors.New("absence end date precedes start date")
	ErrAbsenceBadDate     = errors.New("absence date is not a valid calendar date")
	ErrUnknownServiceRole = errors.New("role override references unknown service role")
)

// EmployeeService manages department staff and their absence periods.
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	CreateAbsence(ctx context.Context, req *dto.CreateAbsenceRequest, callerID string) (*dto.AbsenceResponse, error)
	ListAbsences(ctx context.Context, employeeID string) ([]dto.AbsenceResponse, error)
	DeleteAbsence(ctx context.Context, id string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	if err := s.checkRoleOverrides(ctx, req.RoleIDOverrides); err != nil {
		return nil, err
	}
	emp := &model.Employee{
		Name:                   req.Name,
		JobTitle:               req.JobTitle,
		RoleIDOverrides:        model.StringArray(req.RoleIDOverrides),
		BanWeekdays:            model.IntArray(req.BanWeekdays),
		DefaultMaxSlots:        req.DefaultMaxSlots,
		DefaultMaxSlotsPerWeek: req.DefaultMaxSlotsPerWeek,
		IsActive:               true,
	}
	emp.CreatedBy = &callerID
	emp.UpdatedBy = &callerID
	emp.Version = 1

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("create employee failed", zap.Error(err))
		return nil, err
	}
	return employeeToResponse(emp), nil
}

func (s *employeeService) Get(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return nil, err
	}
	return employeeToResponse(emp), nil
}

func (s *employeeService) List(ctx context.Context, activeOnly bool) ([]dto.EmployeeResponse, error) {
	emps, err := s.repo.Employee.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, *employeeToResponse(&emps[i]))
	}
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return nil, err
	}
	if emp.Version != req.Version {
		return nil, ErrEmployeeStale
	}

	if req.RoleIDOverrides != nil {
		if err := s.checkRoleOverrides(ctx, *req.RoleIDOverrides); err != nil {
			return nil, err
		}
		emp.RoleIDOverrides = model.StringArray(*req.RoleIDOverrides)
	}
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.JobTitle != nil {
		emp.JobTitle = *req.JobTitle
	}
	if req.BanWeekdays != nil {
		emp.BanWeekdays = model.IntArray(*req.BanWeekdays)
	}
	if req.DefaultMaxSlots != nil {
		emp.DefaultMaxSlots = req.DefaultMaxSlots
	}
	if req.DefaultMaxSlotsPerWeek != nil {
		emp.DefaultMaxSlotsPerWeek = req.DefaultMaxSlotsPerWeek
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrEmployeeStale
		}
		s.logger.Error("update employee failed", zap.Error(err))
		return nil, err
	}
	return employeeToResponse(emp), nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return err
	}
	if err := s.repo.Employee.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return err
	}
	return nil
}

// checkRoleOverrides verifies every override points at an existing catalog
// entry. Inactive roles are allowed: the override simply never matches a
// slot until the role is reactivated.
func (s *employeeService) checkRoleOverrides(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.repo.ServiceRole.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownServiceRole
			}
			s.logger.Error("check role override failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// ── absences ──

func (s *employeeService) CreateAbsence(ctx context.Context, req *dto.CreateAbsenceRequest, callerID string) (*dto.AbsenceResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrAbsenceBadDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrAbsenceBadDate
	}
	if end.Before(start) {
		return nil, ErrAbsenceBadRange
	}
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = "general"
	}
	ap := &model.AbsencePeriod{
		EmployeeID: req.EmployeeID,
		Kind:       kind,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	}
	ap.CreatedBy = &callerID
	ap.UpdatedBy = &callerID

	if err := s.repo.Absence.Create(ctx, ap); err != nil {
		s.logger.Error("create absence failed", zap.Error(err))
		return nil, err
	}
	return absenceToResponse(ap), nil
}

func (s *employeeService) ListAbsences(ctx context.Context, employeeID string) ([]dto.AbsenceResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return nil, err
	}
	aps, err := s.repo.Absence.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list absences failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.AbsenceResponse, 0, len(aps))
	for i := range aps {
		out = append(out, *absenceToResponse(&aps[i]))
	}
	return out, nil
}

func (s *employeeService) DeleteAbsence(ctx context.Context, id string) error {
	if _, err := s.repo.Absence.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceNotFound
		}
		s.logger.Error("get absence failed", zap.Error(err))
		return err
	}
	if err := s.repo.Absence.Delete(ctx, id); err != nil {
		s.logger.Error("delete absence failed", zap.Error(err))
		return err
	}
	return nil
}

func employeeToResponse(emp *model.Employee) *dto.EmployeeResponse {
	overrides := []string(emp.RoleIDOverrides)
	if overrides == nil {
		overrides = []string{}
	}
	banWeekdays := []int(emp.BanWeekdays)
	if banWeekdays == nil {
		banWeekdays = []int{}
	}
	return &dto.EmployeeResponse{
		ID:                     emp.EmployeeID,
		Name:                   emp.Name,
		JobTitle:               emp.JobTitle,
		RoleIDOverrides:        overrides,
		BanWeekdays:            banWeekdays,
		DefaultMaxSlots:        emp.DefaultMaxSlots,
		DefaultMaxSlotsPerWeek: emp.DefaultMaxSlotsPerWeek,
		IsActive:               emp.IsActive,
		Version:                emp.Version,
		CreatedAt:              emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              emp.UpdatedAt.Format(time.RFC3339),
	}
}

func absenceToResponse(ap *model.AbsencePeriod) *dto.AbsenceResponse {
	return &dto.AbsenceResponse{
		ID:         ap.AbsenceID,
		EmployeeID: ap.EmployeeID,
		Kind:       ap.Kind,
		StartDate:  ap.StartDate.Format("2006-01-02"),
		EndDate:    ap.EndDate.Format("2006-01-02"),
		Reason:     ap.Reason,
		CreatedAt:  ap.CreatedAt.Format(time.RFC3339),
	}
}
