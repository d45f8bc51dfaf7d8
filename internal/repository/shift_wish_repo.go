package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
)

// ShiftWishRepository is the data-access interface for per-period employee
// preferences. One row per employee per period; submitting again replaces
// the previous wish.
type ShiftWishRepository interface {
	Upsert(ctx context.Context, wish *model.ShiftWish) error
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (*model.ShiftWish, error)
	ListByPeriod(ctx context.Context, year, month int) ([]model.ShiftWish, error)
	CountByPeriod(ctx context.Context, year, month int) (int64, error)
	Delete(ctx context.Context, id string) error
}

type shiftWishRepo struct {
	db *gorm.DB
}

func NewShiftWishRepo(db *gorm.DB) ShiftWishRepository {
	return &shiftWishRepo{db: db}
}

func (r *shiftWishRepo) Upsert(ctx context.Context, wish *model.ShiftWish) error {
	wish.SubmittedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"max_slots", "max_slots_per_week",
				"prefer_dates", "avoid_dates",
				"prefer_role_ids", "avoid_role_ids",
				"submitted_at", "updated_at",
			}),
		}).
		Create(wish).Error
}

func (r *shiftWishRepo) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (*model.ShiftWish, error) {
	var wish model.ShiftWish
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		First(&wish).Error
	if err != nil {
		return nil, err
	}
	return &wish, nil
}

func (r *shiftWishRepo) ListByPeriod(ctx context.Context, year, month int) ([]model.ShiftWish, error) {
	var wishes []model.ShiftWish
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("employee_id ASC").
		Find(&wishes).Error
	return wishes, err
}

func (r *shiftWishRepo) CountByPeriod(ctx context.Context, year, month int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftWish{}).
		Where("year = ? AND month = ?", year, month).
		Count(&n).Error
	return n, err
}

func (r *shiftWishRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("wish_id = ?", id).
		Delete(&model.ShiftWish{}).Error
}
