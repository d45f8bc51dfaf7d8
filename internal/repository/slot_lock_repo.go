package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
)

// SlotLockRepository is the data-access interface for manual per-slot pins.
// Locks are keyed by (year, month, slot_id); setting a lock for a slot that
// already carries one replaces the pinned employee.
type SlotLockRepository interface {
	Upsert(ctx context.Context, lock *model.SlotLock) error
	GetBySlot(ctx context.Context, year, month int, slotID string) (*model.SlotLock, error)
	ListByPeriod(ctx context.Context, year, month int) ([]model.SlotLock, error)
	// LatestUpdateByPeriod returns the newest updated_at among the period's
	// locks, or the zero time when the period has none.
	LatestUpdateByPeriod(ctx context.Context, year, month int) (time.Time, error)
	DeleteBySlot(ctx context.Context, year, month int, slotID string) error
}

type slotLockRepo struct {
	db *gorm.DB
}

func NewSlotLockRepo(db *gorm.DB) SlotLockRepository {
	return &slotLockRepo{db: db}
}

func (r *slotLockRepo) Upsert(ctx context.Context, lock *model.SlotLock) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}, {Name: "month"}, {Name: "slot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"employee_id", "updated_at"}),
		}).
		Create(lock).Error
}

func (r *slotLockRepo) GetBySlot(ctx context.Context, year, month int, slotID string) (*model.SlotLock, error) {
	var lock model.SlotLock
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ? AND slot_id = ?", year, month, slotID).
		First(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *slotLockRepo) ListByPeriod(ctx context.Context, year, month int) ([]model.SlotLock, error) {
	var locks []model.SlotLock
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("slot_id ASC").
		Find(&locks).Error
	return locks, err
}

func (r *slotLockRepo) LatestUpdateByPeriod(ctx context.Context, year, month int) (time.Time, error) {
	var ts *time.Time
	err := r.db.WithContext(ctx).
		Model(&model.SlotLock{}).
		Where("year = ? AND month = ?", year, month).
		Select("MAX(updated_at)").
		Scan(&ts).Error
	if err != nil || ts == nil {
		return time.Time{}, err
	}
	return *ts, nil
}

func (r *slotLockRepo) DeleteBySlot(ctx context.Context, year, month int, slotID string) error {
	return r.db.WithContext(ctx).
		Where("year = ? AND month = ? AND slot_id = ?", year, month, slotID).
		Delete(&model.SlotLock{}).Error
}
