package service

import (
	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/config"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
	"github.com/hinterbergers/mycliniq-sub000/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	ServiceRole ServiceRoleService
	Employee    EmployeeService
	Wish        WishService
	Lock        LockService
	Plan        PlanService
	Export      ExportService
}

// NewService wires the service graph.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	validator *plan.SchemaValidator,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	builder := NewInputBuilder(repo, validator, logger)
	locks := NewLockService(repo, logger)
	engine := plan.NewEngine()

	return &Service{
		ServiceRole: NewServiceRoleService(repo, logger),
		Employee:    NewEmployeeService(repo, logger),
		Wish:        NewWishService(repo, logger),
		Lock:        locks,
		Plan:        NewPlanService(repo, builder, locks, engine, validator, rdb, &cfg.Planning, logger),
		Export:      NewExportService(repo, logger),
	}
}
