package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
)

func setupTestEmployeeService(t *testing.T) (EmployeeService, *repository.Repository) {
	t.Helper()
	repo := newTestRepo()
	return NewEmployeeService(repo, zap.NewNop()), repo
}

func TestEmployeeService_CreateWithOverrideChecks(t *testing.T) {
	svc, repo := setupTestEmployeeService(t)
	role := seedRole(t, repo, "ward-day", nil, 1)

	created, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name:            "Dr. A",
		JobTitle:        "Assistenzarzt",
		RoleIDOverrides: []string{role.ServiceRoleID},
		BanWeekdays:     []int{7},
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Version != 1 || !created.IsActive {
		t.Errorf("unexpected defaults: %+v", created)
	}

	// An override pointing nowhere is rejected.
	_, err = svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name:            "Dr. B",
		RoleIDOverrides: []string{"ghost-role"},
	}, "admin-1")
	if err != ErrUnknownServiceRole {
		t.Fatalf("expected ErrUnknownServiceRole, got %v", err)
	}
}

func TestEmployeeService_StaleUpdate(t *testing.T) {
	svc, _ := setupTestEmployeeService(t)

	created, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{Name: "Dr. A"}, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Oberarzt"
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateEmployeeRequest{
		JobTitle: &newTitle,
		Version:  created.Version,
	}, "admin-1"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateEmployeeRequest{
		JobTitle: &newTitle,
		Version:  created.Version,
	}, "admin-1"); err != ErrEmployeeStale {
		t.Fatalf("expected ErrEmployeeStale, got %v", err)
	}
}

func TestEmployeeService_AbsenceValidation(t *testing.T) {
	svc, repo := setupTestEmployeeService(t)
	emp := seedEmployee(t, repo, "Dr. A", "Facharzt")

	// End before start.
	_, err := svc.CreateAbsence(context.Background(), &dto.CreateAbsenceRequest{
		EmployeeID: emp.EmployeeID,
		StartDate:  "2026-08-10",
		EndDate:    "2026-08-05",
	}, "admin-1")
	if err != ErrAbsenceBadRange {
		t.Fatalf("expected ErrAbsenceBadRange, got %v", err)
	}

	// Unknown employee.
	_, err = svc.CreateAbsence(context.Background(), &dto.CreateAbsenceRequest{
		EmployeeID: "ghost",
		StartDate:  "2026-08-05",
		EndDate:    "2026-08-10",
	}, "admin-1")
	if err != ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	// Valid range defaults to kind "general".
	ap, err := svc.CreateAbsence(context.Background(), &dto.CreateAbsenceRequest{
		EmployeeID: emp.EmployeeID,
		StartDate:  "2026-08-05",
		EndDate:    "2026-08-10",
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateAbsence failed: %v", err)
	}
	if ap.Kind != "general" {
		t.Errorf("kind: got %s want general", ap.Kind)
	}

	list, err := svc.ListAbsences(context.Background(), emp.EmployeeID)
	if err != nil {
		t.Fatalf("ListAbsences failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 absence, got %d", len(list))
	}
}
