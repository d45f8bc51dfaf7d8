package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
)

var (
	ErrLockNotFound    = errors.New("slot lock not found")
	ErrLockBadSlotID   = errors.New("slot id does not belong to the period")
	ErrLockBadEmployee = errors.New("lock references unknown employee")
)

// LockService manages manual per-slot pins. Absence of a lock row means
// "unlocked, the engine decides"; a row with a null employee means
// "deliberately open".
type LockService interface {
	Set(ctx context.Context, year, month int, req *dto.SetLockRequest, callerID string) (*dto.LockResponse, error)
	List(ctx context.Context, year, month int) ([]dto.LockResponse, error)
	Delete(ctx context.Context, year, month int, slotID string) error

	// Snapshot returns the period's locks as the read-only map the engine
	// consumes.
	Snapshot(ctx context.Context, year, month int) (map[string]plan.Lock, error)
}

type lockService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewLockService(repo *repository.Repository, logger *zap.Logger) LockService {
	return &lockService{repo: repo, logger: logger}
}

func (s *lockService) Set(ctx context.Context, year, month int, req *dto.SetLockRequest, callerID string) (*dto.LockResponse, error) {
	if !slotBelongsToPeriod(req.SlotID, year, month) {
		return nil, ErrLockBadSlotID
	}
	if req.EmployeeID != nil {
		if _, err := s.repo.Employee.GetByID(ctx, *req.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLockBadEmployee
			}
			s.logger.Error("get employee failed", zap.Error(err))
			return nil, err
		}
	}

	lock := &model.SlotLock{
		Year:       year,
		Month:      month,
		SlotID:     req.SlotID,
		EmployeeID: req.EmployeeID,
		CreatedBy:  &callerID,
		UpdatedAt:  time.Now(),
	}
	if err := s.repo.SlotLock.Upsert(ctx, lock); err != nil {
		s.logger.Error("upsert slot lock failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.SlotLock.GetBySlot(ctx, year, month, req.SlotID)
	if err != nil {
		s.logger.Error("reload slot lock failed", zap.Error(err))
		return nil, err
	}
	return lockToResponse(stored), nil
}

func (s *lockService) List(ctx context.Context, year, month int) ([]dto.LockResponse, error) {
	locks, err := s.repo.SlotLock.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("list slot locks failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.LockResponse, 0, len(locks))
	for i := range locks {
		out = append(out, *lockToResponse(&locks[i]))
	}
	return out, nil
}

func (s *lockService) Delete(ctx context.Context, year, month int, slotID string) error {
	if _, err := s.repo.SlotLock.GetBySlot(ctx, year, month, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLockNotFound
		}
		s.logger.Error("get slot lock failed", zap.Error(err))
		return err
	}
	if err := s.repo.SlotLock.DeleteBySlot(ctx, year, month, slotID); err != nil {
		s.logger.Error("delete slot lock failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *lockService) Snapshot(ctx context.Context, year, month int) (map[string]plan.Lock, error) {
	locks, err := s.repo.SlotLock.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("list slot locks failed", zap.Error(err))
		return nil, err
	}
	snapshot := make(map[string]plan.Lock, len(locks))
	for i := range locks {
		snapshot[locks[i].SlotID] = plan.Lock{
			SlotID:     locks[i].SlotID,
			EmployeeID: locks[i].EmployeeID,
		}
	}
	return snapshot, nil
}

// slotBelongsToPeriod checks the deterministic "YYYY-MM-DD:<roleID>" slot id
// shape and its date prefix against the period.
func slotBelongsToPeriod(slotID string, year, month int) bool {
	idx := strings.IndexByte(slotID, ':')
	if idx != 10 || idx+1 >= len(slotID) {
		return false
	}
	d, err := time.Parse("2006-01-02", slotID[:10])
	if err != nil {
		return false
	}
	return d.Year() == year && int(d.Month()) == month
}

func lockToResponse(lock *model.SlotLock) *dto.LockResponse {
	return &dto.LockResponse{
		ID:         lock.LockID,
		Year:       lock.Year,
		Month:      lock.Month,
		SlotID:     lock.SlotID,
		EmployeeID: lock.EmployeeID,
		UpdatedAt:  lock.UpdatedAt.Format(time.RFC3339),
	}
}
