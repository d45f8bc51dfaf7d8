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
	ErrServiceRoleNotFound   = errors.New("service role not found")
	ErrServiceRoleCodeTaken  = errors.New("service role code already in use")
	ErrServiceRoleStale      = errors.New("service role was modified concurrently")
	ErrServiceRoleReferenced = errors.New("service role is referenced and cannot be deleted")
)

// ServiceRoleService manages the coverage catalog.
type ServiceRoleService interface {
	Create(ctx context.Context, req *dto.CreateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error)
	Get(ctx context.Context, id string) (*dto.ServiceRoleResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.ServiceRoleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceRoleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewServiceRoleService(repo *repository.Repository, logger *zap.Logger) ServiceRoleService {
	return &serviceRoleService{repo: repo, logger: logger}
}

func (s *serviceRoleService) Create(ctx context.Context, req *dto.CreateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error) {
	role := &model.ServiceRole{
		Code:      req.Code,
		Name:      req.Name,
		Weekdays:  model.IntArray(req.Weekdays),
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	role.CreatedBy = &callerID
	role.UpdatedBy = &callerID
	role.Version = 1

	if err := s.repo.ServiceRole.Create(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrServiceRoleCodeTaken
		}
		s.logger.Error("create service role failed", zap.Error(err))
		return nil, err
	}
	return serviceRoleToResponse(role), nil
}

func (s *serviceRoleService) Get(ctx context.Context, id string) (*dto.ServiceRoleResponse, error) {
	role, err := s.repo.ServiceRole.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRoleNotFound
		}
		s.logger.Error("get service role failed", zap.Error(err))
		return nil, err
	}
	return serviceRoleToResponse(role), nil
}

func (s *serviceRoleService) List(ctx context.Context, activeOnly bool) ([]dto.ServiceRoleResponse, error) {
	roles, err := s.repo.ServiceRole.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("list service roles failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ServiceRoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, *serviceRoleToResponse(&roles[i]))
	}
	return out, nil
}

func (s *serviceRoleService) Update(ctx context.Context, id string, req *dto.UpdateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error) {
	role, err := s.repo.ServiceRole.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRoleNotFound
		}
		s.logger.Error("get service role failed", zap.Error(err))
		return nil, err
	}
	if role.Version != req.Version {
		return nil, ErrServiceRoleStale
	}

	if req.Code != nil {
		role.Code = *req.Code
	}
	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Weekdays != nil {
		role.Weekdays = model.IntArray(*req.Weekdays)
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		role.SortOrder = *req.SortOrder
	}
	role.UpdatedBy = &callerID

	if err := s.repo.ServiceRole.Update(ctx, role); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrServiceRoleStale
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrServiceRoleCodeTaken
		}
		s.logger.Error("update service role failed", zap.Error(err))
		return nil, err
	}
	return serviceRoleToResponse(role), nil
}

func (s *serviceRoleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.ServiceRole.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceRoleNotFound
		}
		s.logger.Error("get service role failed", zap.Error(err))
		return err
	}
	if err := s.repo.ServiceRole.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrServiceRoleReferenced
		}
		s.logger.Error("delete service role failed", zap.Error(err))
		return err
	}
	return nil
}

func serviceRoleToResponse(role *model.ServiceRole) *dto.ServiceRoleResponse {
	weekdays := []int(role.Weekdays)
	if weekdays == nil {
		weekdays = []int{}
	}
	return &dto.ServiceRoleResponse{
		ID:        role.ServiceRoleID,
		Code:      role.Code,
		Name:      role.Name,
		Weekdays:  weekdays,
		IsActive:  role.IsActive,
		SortOrder: role.SortOrder,
		Version:   role.Version,
		CreatedAt: role.CreatedAt.Format(time.RFC3339),
		UpdatedAt: role.UpdatedAt.Format(time.RFC3339),
	}
}
