package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/config"
	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
	"github.com/hinterbergers/mycliniq-sub000/pkg/redis"
)

var (
	ErrRunNotFound   = errors.New("planning run not found")
	ErrRunInProgress = errors.New("a solver run for this period is already in progress")
)

// PlanService orchestrates the roster pipeline: build input, validate,
// solve against the current lock snapshot, validate the output, and
// for Run persist the invocation as an immutable audit row.
type PlanService interface {
	BuildInput(ctx context.Context, year, month int) (*plan.PlanningInput, error)
	Preview(ctx context.Context, year, month int, req *dto.RunRequest) (*plan.PlanningOutput, error)
	Run(ctx context.Context, year, month int, req *dto.RunRequest, callerID string) (*dto.RunResponse, error)
	State(ctx context.Context, year, month int) (*dto.PeriodStateResponse, error)
	GetRun(ctx context.Context, id string) (*dto.RunResponse, error)
	ListRuns(ctx context.Context, year, month, limit int) ([]dto.RunResponse, error)
}

type planService struct {
	repo      *repository.Repository
	builder   InputBuilder
	locks     LockService
	engine    *plan.Engine
	validator *plan.SchemaValidator
	rdb       *redis.Client
	cfg       *config.PlanningConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewPlanService(
	repo *repository.Repository,
	builder InputBuilder,
	locks LockService,
	engine *plan.Engine,
	validator *plan.SchemaValidator,
	rdb *redis.Client,
	cfg *config.PlanningConfig,
	logger *zap.Logger,
) PlanService {
	return &planService{
		repo:      repo,
		builder:   builder,
		locks:     locks,
		engine:    engine,
		validator: validator,
		rdb:       rdb,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *planService) BuildInput(ctx context.Context, year, month int) (*plan.PlanningInput, error) {
	return s.builder.Build(ctx, year, month)
}

// solve runs the full compute pipeline without persistence.
func (s *planService) solve(ctx context.Context, year, month int, seed int64) (*plan.PlanningInput, *plan.PlanningOutput, error) {
	input, err := s.builder.Build(ctx, year, month)
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := s.locks.Snapshot(ctx, year, month)
	if err != nil {
		return nil, nil, err
	}

	output := s.engine.Solve(input, snapshot, seed)

	if err := s.validator.ValidateOutput(output); err != nil {
		s.logger.Error("planning output failed validation",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return nil, nil, err
	}
	return input, output, nil
}

func (s *planService) Preview(ctx context.Context, year, month int, req *dto.RunRequest) (*plan.PlanningOutput, error) {
	seed := resolveSeed(req.Seed, s.now)
	_, output, err := s.solve(ctx, year, month, seed)
	return output, err
}

func (s *planService) Run(ctx context.Context, year, month int, req *dto.RunRequest, callerID string) (*dto.RunResponse, error) {
	// At most one run per period in flight. When redis is unavailable the
	// lock degrades to best effort; concurrent runs then each persist their
	// own row, which the append-only store tolerates.
	if s.rdb != nil {
		token := uuid.NewString()
		ok, err := s.rdb.AcquireRunLock(ctx, year, month, token, s.cfg.RunLockTTL)
		if err != nil {
			s.logger.Warn("run lock unavailable, continuing without", zap.Error(err))
		} else if !ok {
			return nil, ErrRunInProgress
		} else {
			defer func() {
				if err := s.rdb.ReleaseRunLock(context.Background(), year, month, token); err != nil {
					s.logger.Warn("release run lock failed", zap.Error(err))
				}
			}()
		}
	}

	seed := resolveSeed(req.Seed, s.now)
	input, output, err := s.solve(ctx, year, month, seed)
	if err != nil {
		return nil, err
	}

	hash, err := plan.InputHash(input)
	if err != nil {
		s.logger.Error("hash planning input failed", zap.Error(err))
		return nil, err
	}
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}

	run := &model.PlanningRun{
		Year:       year,
		Month:      month,
		InputHash:  hash,
		InputJSON:  inputJSON,
		OutputJSON: outputJSON,
		Engine:     s.engine.ID(),
		Seed:       seed,
	}
	if callerID != "" {
		run.CreatedByID = &callerID
	}
	if err := s.repo.PlanningRun.Create(ctx, run); err != nil {
		s.logger.Error("persist planning run failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("planning run persisted",
		zap.String("run_id", run.RunID),
		zap.Int("year", year), zap.Int("month", month),
		zap.Int64("seed", seed),
		zap.Int("filled", output.Summary.Coverage.Filled),
		zap.Int("required", output.Summary.Coverage.Required))
	return runToResponse(run, true), nil
}

func (s *planService) State(ctx context.Context, year, month int) (*dto.PeriodStateResponse, error) {
	wishCount, err := s.repo.ShiftWish.CountByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("count shift wishes failed", zap.Error(err))
		return nil, err
	}
	locks, err := s.repo.SlotLock.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Error("list slot locks failed", zap.Error(err))
		return nil, err
	}

	state := &dto.PeriodStateResponse{
		Year:      year,
		Month:     month,
		WishCount: wishCount,
		LockCount: len(locks),
	}

	latest, err := s.repo.PlanningRun.GetLatest(ctx, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Never solved; a period with pending locks still counts dirty.
			state.Dirty = len(locks) > 0
			return state, nil
		}
		s.logger.Error("get latest planning run failed", zap.Error(err))
		return nil, err
	}

	runAt := latest.CreatedAt.Format(time.RFC3339)
	state.LatestRunID = &latest.RunID
	state.LatestRunAt = &runAt
	state.InputHash = &latest.InputHash
	for i := range locks {
		if locks[i].UpdatedAt.After(latest.CreatedAt) {
			state.Dirty = true
			break
		}
	}
	return state, nil
}

func (s *planService) GetRun(ctx context.Context, id string) (*dto.RunResponse, error) {
	run, err := s.repo.PlanningRun.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		s.logger.Error("get planning run failed", zap.Error(err))
		return nil, err
	}
	return runToResponse(run, true), nil
}

func (s *planService) ListRuns(ctx context.Context, year, month, limit int) ([]dto.RunResponse, error) {
	runs, err := s.repo.PlanningRun.ListByPeriod(ctx, year, month, limit)
	if err != nil {
		s.logger.Error("list planning runs failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RunResponse, 0, len(runs))
	for i := range runs {
		out = append(out, *runToResponse(&runs[i], false))
	}
	return out, nil
}

// resolveSeed accepts a finite JSON number or a numeric string; anything
// else falls back to epoch milliseconds, so every run stays reproducible
// once its persisted seed is known.
func resolveSeed(v interface{}, now func() time.Time) int64 {
	switch n := v.(type) {
	case float64:
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			return int64(n)
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
	case json.Number:
		if f, err := n.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
	}
	return now().UnixMilli()
}

func runToResponse(run *model.PlanningRun, includeDocs bool) *dto.RunResponse {
	resp := &dto.RunResponse{
		ID:        run.RunID,
		Year:      run.Year,
		Month:     run.Month,
		InputHash: run.InputHash,
		Engine:    run.Engine,
		Seed:      run.Seed,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	}
	if includeDocs {
		resp.Input = json.RawMessage(run.InputJSON)
		resp.Output = json.RawMessage(run.OutputJSON)
	}
	return resp
}
