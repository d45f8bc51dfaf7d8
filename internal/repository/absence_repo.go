package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
)

// AbsenceRepository is the data-access interface for absence periods.
type AbsenceRepository interface {
	Create(ctx context.Context, ap *model.AbsencePeriod) error
	GetByID(ctx context.Context, id string) (*model.AbsencePeriod, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.AbsencePeriod, error)
	// ListIntersecting returns every absence overlapping [from, to], both
	// bounds inclusive, across all employees.
	ListIntersecting(ctx context.Context, from, to time.Time) ([]model.AbsencePeriod, error)
	Delete(ctx context.Context, id string) error
}

type absenceRepo struct {
	db *gorm.DB
}

func NewAbsenceRepo(db *gorm.DB) AbsenceRepository {
	return &absenceRepo{db: db}
}

func (r *absenceRepo) Create(ctx context.Context, ap *model.AbsencePeriod) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *absenceRepo) GetByID(ctx context.Context, id string) (*model.AbsencePeriod, error) {
	var ap model.AbsencePeriod
	err := r.db.WithContext(ctx).
		Where("absence_id = ?", id).
		First(&ap).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *absenceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.AbsencePeriod, error) {
	var aps []model.AbsencePeriod
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&aps).Error
	return aps, err
}

func (r *absenceRepo) ListIntersecting(ctx context.Context, from, to time.Time) ([]model.AbsencePeriod, error) {
	var aps []model.AbsencePeriod
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("employee_id ASC, start_date ASC").
		Find(&aps).Error
	return aps, err
}

func (r *absenceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("absence_id = ?", id).
		Delete(&model.AbsencePeriod{}).Error
}
