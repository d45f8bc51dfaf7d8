package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
)

func setupTestLockService(t *testing.T) (LockService, *repository.Repository) {
	t.Helper()
	repo := newTestRepo()
	return NewLockService(repo, zap.NewNop()), repo
}

func TestLockService_SetAndReplace(t *testing.T) {
	svc, repo := setupTestLockService(t)
	a := seedEmployee(t, repo, "Dr. A", "Oberarzt")
	b := seedEmployee(t, repo, "Dr. B", "Oberarzt")

	slotID := "2026-08-10:role-1"
	lock, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: slotID, EmployeeID: &a.EmployeeID}, "planner-1")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if lock.EmployeeID == nil || *lock.EmployeeID != a.EmployeeID {
		t.Errorf("pinned employee: got %v", lock.EmployeeID)
	}

	// Setting again replaces the pin, it does not add a row.
	if _, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: slotID, EmployeeID: &b.EmployeeID}, "planner-1"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	locks, err := svc.List(context.Background(), 2026, 8)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(locks) != 1 {
		t.Fatalf("expected 1 lock, got %d", len(locks))
	}
	if *locks[0].EmployeeID != b.EmployeeID {
		t.Errorf("replacement not applied: got %s", *locks[0].EmployeeID)
	}
}

func TestLockService_NullEmployeeMeansOpen(t *testing.T) {
	svc, _ := setupTestLockService(t)

	lock, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: "2026-08-10:role-1"}, "planner-1")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if lock.EmployeeID != nil {
		t.Errorf("null pin should stay null, got %v", *lock.EmployeeID)
	}

	snapshot, err := svc.Snapshot(context.Background(), 2026, 8)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	entry, ok := snapshot["2026-08-10:role-1"]
	if !ok {
		t.Fatal("lock missing from snapshot")
	}
	if entry.EmployeeID != nil {
		t.Error("snapshot should carry the null pin")
	}
}

func TestLockService_UnknownEmployeeRejected(t *testing.T) {
	svc, _ := setupTestLockService(t)

	ghost := "emp-ghost"
	_, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: "2026-08-10:role-1", EmployeeID: &ghost}, "planner-1")
	if err != ErrLockBadEmployee {
		t.Fatalf("expected ErrLockBadEmployee, got %v", err)
	}
}

func TestLockService_SlotOutsidePeriodRejected(t *testing.T) {
	svc, _ := setupTestLockService(t)

	cases := []string{
		"2026-09-01:role-1", // wrong month
		"2026-08-10",        // no role suffix
		"garbage",
		"2026-13-40:role-1", // invalid date
	}
	for _, slotID := range cases {
		if _, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: slotID}, "planner-1"); err != ErrLockBadSlotID {
			t.Errorf("slot %q: expected ErrLockBadSlotID, got %v", slotID, err)
		}
	}
}

func TestLockService_DeleteUnlocks(t *testing.T) {
	svc, _ := setupTestLockService(t)

	slotID := "2026-08-10:role-1"
	if _, err := svc.Set(context.Background(), 2026, 8, &dto.SetLockRequest{SlotID: slotID}, "planner-1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := svc.Delete(context.Background(), 2026, 8, slotID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snapshot, err := svc.Snapshot(context.Background(), 2026, 8)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshot) != 0 {
		t.Error("deleted lock still in snapshot")
	}

	if err := svc.Delete(context.Background(), 2026, 8, slotID); err != ErrLockNotFound {
		t.Errorf("deleting a missing lock: expected ErrLockNotFound, got %v", err)
	}
}
