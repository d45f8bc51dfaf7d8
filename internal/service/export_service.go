package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
)

var (
	ErrExportNoRun        = errors.New("no solver run stored for this period")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders the latest stored roster of a period for humans:
// an .xlsx grid for the notice board and an .ics feed for personal
// calendars. Exports always read the persisted run, never recompute.
type ExportService interface {
	ExportXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	// ExportICS emits one all-day event per assignment; a non-empty
	// employeeID narrows the feed to that employee's duties.
	ExportICS(ctx context.Context, year, month int, employeeID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// loadRoster fetches the latest run and decodes both documents.
func (s *exportService) loadRoster(ctx context.Context, year, month int) (*plan.PlanningInput, *plan.PlanningOutput, *model.PlanningRun, error) {
	run, err := s.repo.PlanningRun.GetLatest(ctx, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrExportNoRun
		}
		s.logger.Error("get latest planning run failed", zap.Error(err))
		return nil, nil, nil, err
	}
	var input plan.PlanningInput
	if err := json.Unmarshal(run.InputJSON, &input); err != nil {
		s.logger.Error("decode stored input failed", zap.String("run_id", run.RunID), zap.Error(err))
		return nil, nil, nil, err
	}
	var output plan.PlanningOutput
	if err := json.Unmarshal(run.OutputJSON, &output); err != nil {
		s.logger.Error("decode stored output failed", zap.String("run_id", run.RunID), zap.Error(err))
		return nil, nil, nil, err
	}
	return &input, &output, run, nil
}

func (s *exportService) ExportXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	input, output, _, err := s.loadRoster(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	names := employeeNames(input)
	assigned := make(map[string]string, len(output.Assignments)) // slotID → employee name
	for _, a := range output.Assignments {
		name := names[a.EmployeeID]
		if name == "" {
			name = a.EmployeeID
		}
		assigned[a.SlotID] = name
	}
	openSlots := make(map[string]bool, len(output.UnfilledSlots))
	for _, u := range output.UnfilledSlots {
		openSlots[u.SlotID] = true
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Duty roster"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	lastCol, _ := excelize.ColumnNumberToName(1 + len(input.Roles))
	f.SetColWidth(sheetName, "B", lastCol, 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	weekendStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FCE4D6"}, Pattern: 1},
	})

	// Title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Duty roster %04d-%02d", year, month))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// Header row: date column plus one column per role.
	f.SetCellValue(sheetName, "A2", "Date")
	for i, role := range input.Roles {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"2", role.Name)
	}
	f.SetCellStyle(sheetName, "A2", lastCol+"2", headerStyle)

	roleCol := make(map[string]int, len(input.Roles))
	for i, role := range input.Roles {
		roleCol[role.ID] = 2 + i
	}

	// One row per calendar date, cells keyed by the slot grid.
	rowByDate := make(map[string]int)
	row := 3
	for _, slot := range input.Slots {
		r, ok := rowByDate[slot.Date]
		if !ok {
			r = row
			rowByDate[slot.Date] = r
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), slot.Date)
			if slot.IsWeekend {
				f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", lastCol, r), weekendStyle)
			}
			row++
		}
		col, _ := excelize.ColumnNumberToName(roleCol[slot.RoleID])
		cell := fmt.Sprintf("%s%d", col, r)
		switch {
		case assigned[slot.ID] != "":
			f.SetCellValue(sheetName, cell, assigned[slot.ID])
		case openSlots[slot.ID]:
			f.SetCellValue(sheetName, cell, "OPEN")
		default:
			f.SetCellValue(sheetName, cell, "-")
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("duty-roster_%04d-%02d.xlsx", year, month)
	return buf, filename, nil
}

func (s *exportService) ExportICS(ctx context.Context, year, month int, employeeID string) (*bytes.Buffer, string, error) {
	input, output, run, err := s.loadRoster(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	names := employeeNames(input)
	roleNames := make(map[string]string, len(input.Roles))
	for _, role := range input.Roles {
		roleNames[role.ID] = role.Name
	}
	slotByID := make(map[string]plan.Slot, len(input.Slots))
	for _, slot := range input.Slots {
		slotByID[slot.ID] = slot
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//mycliniq//duty-roster//EN")
	cal.SetName(fmt.Sprintf("Duty roster %04d-%02d", year, month))

	stamp := run.CreatedAt.UTC()
	for _, a := range output.Assignments {
		if employeeID != "" && a.EmployeeID != employeeID {
			continue
		}
		slot, ok := slotByID[a.SlotID]
		if !ok {
			continue
		}
		day, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%s/%s@mycliniq", run.RunID, a.SlotID))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))

		roleName := roleNames[slot.RoleID]
		if roleName == "" {
			roleName = slot.RoleID
		}
		if employeeID == "" {
			ev.SetSummary(fmt.Sprintf("%s: %s", roleName, names[a.EmployeeID]))
		} else {
			ev.SetSummary(roleName)
		}
		ev.SetDescription(fmt.Sprintf("Duty %s on %s", roleName, slot.Date))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("duty-roster_%04d-%02d.ics", year, month)
	return buf, filename, nil
}

func employeeNames(input *plan.PlanningInput) map[string]string {
	names := make(map[string]string, len(input.Employees))
	for _, e := range input.Employees {
		names[e.ID] = e.Name
	}
	return names
}
