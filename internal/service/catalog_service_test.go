package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
)

func setupTestCatalogService(t *testing.T) ServiceRoleService {
	t.Helper()
	return NewServiceRoleService(newTestRepo(), zap.NewNop())
}

func TestServiceRoleService_CreateAndGet(t *testing.T) {
	svc := setupTestCatalogService(t)

	created, err := svc.Create(context.Background(), &dto.CreateServiceRoleRequest{
		Code:     "weekend-call",
		Name:     "Weekend on-call",
		Weekdays: []int{6, 7},
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.IsActive {
		t.Error("new roles start active")
	}
	if created.Version != 1 {
		t.Errorf("version: got %d want 1", created.Version)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "weekend-call" || len(got.Weekdays) != 2 {
		t.Errorf("unexpected role: %+v", got)
	}
}

func TestServiceRoleService_DuplicateCode(t *testing.T) {
	svc := setupTestCatalogService(t)

	req := &dto.CreateServiceRoleRequest{Code: "ward-day", Name: "Ward day shift"}
	if _, err := svc.Create(context.Background(), req, "admin-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), req, "admin-1"); err != ErrServiceRoleCodeTaken {
		t.Fatalf("expected ErrServiceRoleCodeTaken, got %v", err)
	}
}

func TestServiceRoleService_StaleUpdate(t *testing.T) {
	svc := setupTestCatalogService(t)

	created, err := svc.Create(context.Background(), &dto.CreateServiceRoleRequest{Code: "ward-day", Name: "Ward day shift"}, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "Ward day"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateServiceRoleRequest{
		Name:    &newName,
		Version: created.Version,
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Errorf("version should advance, got %d", updated.Version)
	}

	// Replaying the first update with the old version must be rejected.
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateServiceRoleRequest{
		Name:    &newName,
		Version: created.Version,
	}, "admin-1"); err != ErrServiceRoleStale {
		t.Fatalf("expected ErrServiceRoleStale, got %v", err)
	}
}

func TestServiceRoleService_GetMissing(t *testing.T) {
	svc := setupTestCatalogService(t)
	if _, err := svc.Get(context.Background(), "missing"); err != ErrServiceRoleNotFound {
		t.Fatalf("expected ErrServiceRoleNotFound, got %v", err)
	}
}
