package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	pkgerrors "github.com/hinterbergers/mycliniq-sub000/pkg/errors"
)

// ServiceRoleRepository is the data-access interface for the coverage catalog.
type ServiceRoleRepository interface {
	Create(ctx context.Context, role *model.ServiceRole) error
	GetByID(ctx context.Context, id string) (*model.ServiceRole, error)
	List(ctx context.Context, activeOnly bool) ([]model.ServiceRole, error)
	Update(ctx context.Context, role *model.ServiceRole) error
	Delete(ctx context.Context, id string) error
}

type serviceRoleRepo struct {
	db *gorm.DB
}

func NewServiceRoleRepo(db *gorm.DB) ServiceRoleRepository {
	return &serviceRoleRepo{db: db}
}

func (r *serviceRoleRepo) Create(ctx context.Context, role *model.ServiceRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *serviceRoleRepo) GetByID(ctx context.Context, id string) (*model.ServiceRole, error) {
	var role model.ServiceRole
	err := r.db.WithContext(ctx).
		Where("service_role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *serviceRoleRepo) List(ctx context.Context, activeOnly bool) ([]model.ServiceRole, error) {
	var roles []model.ServiceRole
	q := r.db.WithContext(ctx).Order("sort_order ASC, code ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&roles).Error
	return roles, err
}

func (r *serviceRoleRepo) Update(ctx context.Context, role *model.ServiceRole) error {
	oldVersion := role.Version
	result := r.db.WithContext(ctx).
		Model(role).
		Where("service_role_id = ? AND version = ?", role.ServiceRoleID, oldVersion).
		Updates(map[string]interface{}{
			"code":       role.Code,
			"name":       role.Name,
			"weekdays":   role.Weekdays,
			"is_active":  role.IsActive,
			"sort_order": role.SortOrder,
			"updated_by": role.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	role.Version = oldVersion + 1
	return nil
}

func (r *serviceRoleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("service_role_id = ?", id).
		Delete(&model.ServiceRole{}).Error
}
