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
)

var (
	ErrWishNotFound = errors.New("shift wish not found")
)

// WishService stores per-period employee preferences. Submitting twice for
// the same period replaces the earlier wish; the values are stored as
// received and only sanitized when the roster input is built.
type WishService interface {
	Submit(ctx context.Context, year, month int, req *dto.SubmitWishRequest, callerID string) (*dto.WishResponse, error)
	Get(ctx context.Context, employeeID string, year, month int) (*dto.WishResponse, error)
	ListByPeriod(ctx context.Context, year, month int) ([]dto.WishResponse, error)
	Delete(ctx context.Context, id string) error
}

type wishService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewWishService(repo *repository.Repository, logger *zap.Logger) WishService {
	return &wishService{repo: repo, logger: logger}
}

func (s *wishService) Submit(ctx context.Context, year, month int, req *dto.SubmitWishRequest, callerID string) (*dto.WishResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.Error(err))
		return nil, err
	}

	wish := &model.ShiftWish{
		EmployeeID:      req.EmployeeID,
		Year:            year,
		Month:           month,
		MaxSlots:        req.MaxSlots,
		MaxSlotsPerWeek: req.MaxSlotsPerWeek,
		PreferDates:     model.StringArray(req.PreferDates),
		AvoidDates:      model.StringArray(req.AvoidDates),
		PreferRoleIDs:   model.StringArray(req.PreferRoleIDs),
		AvoidRoleIDs:    model.StringArray(req.AvoidRoleIDs),
	}
	if err := s.repo.ShiftWish.Upsert(ctx, wish); err != nil {
		s.logger.Error("upsert shift wish failed", zap.Error(err))
		return nil, err
	}

	// Re-read: the upsert path does not report the surviving row's ID.
	stored, err := s.repo.ShiftWish.GetByEmployeeAndPeriod(ctx, req.EmployeeID, year, month)
	if err != nil {
		s.logger.Error("reload shift wish failed", zap.Error(err))
		return nil, err
	}
	return wishToResponse(stored), nil
}

func (s *wishService) Get(ctx context.Context, employeeID string, year, month int) (*dto.WishResponse, error) {
	wish, err := s.repo.ShiftWish.GetByEmployeeAndPeriod(ctx, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishNotFound
		}
		s.logger.Error("get shift wish failed", zap.Error(err))
		return nil, err
	}
	return wishToResponse(wish), nil
}

func (s *wishService) ListByPeriod(ctx context.Context, year, month int) ([]dto.WishResponse, error) {
	wishes, err := s.repo.ShiftWish.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("list shift wishes failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.WishResponse, 0, len(wishes))
	for i := range wishes {
		out = append(out, *wishToResponse(&wishes[i]))
	}
	return out, nil
}

func (s *wishService) Delete(ctx context.Context, id string) error {
	if err := s.repo.ShiftWish.Delete(ctx, id); err != nil {
		s.logger.Error("delete shift wish failed", zap.Error(err))
		return err
	}
	return nil
}

func wishToResponse(w *model.ShiftWish) *dto.WishResponse {
	return &dto.WishResponse{
		ID:              w.WishID,
		EmployeeID:      w.EmployeeID,
		Year:            w.Year,
		Month:           w.Month,
		MaxSlots:        w.MaxSlots,
		MaxSlotsPerWeek: w.MaxSlotsPerWeek,
		PreferDates:     emptyIfNil(w.PreferDates),
		AvoidDates:      emptyIfNil(w.AvoidDates),
		PreferRoleIDs:   emptyIfNil(w.PreferRoleIDs),
		AvoidRoleIDs:    emptyIfNil(w.AvoidRoleIDs),
		SubmittedAt:     w.SubmittedAt.Format(time.RFC3339),
	}
}

func emptyIfNil(a model.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return a
}
