package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
)

// PlanningRunRepository is the data-access interface for the append-only
// run history. Runs are never updated or deleted.
type PlanningRunRepository interface {
	Create(ctx context.Context, run *model.PlanningRun) error
	GetByID(ctx context.Context, id string) (*model.PlanningRun, error)
	// GetLatest returns the newest run for the period, or
	// gorm.ErrRecordNotFound when the period has never been solved.
	GetLatest(ctx context.Context, year, month int) (*model.PlanningRun, error)
	ListByPeriod(ctx context.Context, year, month int, limit int) ([]model.PlanningRun, error)
}

type planningRunRepo struct {
	db *gorm.DB
}

func NewPlanningRunRepo(db *gorm.DB) PlanningRunRepository {
	return &planningRunRepo{db: db}
}

func (r *planningRunRepo) Create(ctx context.Context, run *model.PlanningRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *planningRunRepo) GetByID(ctx context.Context, id string) (*model.PlanningRun, error) {
	var run model.PlanningRun
	err := r.db.WithContext(ctx).
		Where("run_id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *planningRunRepo) GetLatest(ctx context.Context, year, month int) (*model.PlanningRun, error) {
	var run model.PlanningRun
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *planningRunRepo) ListByPeriod(ctx context.Context, year, month int, limit int) ([]model.PlanningRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var runs []model.PlanningRun
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
