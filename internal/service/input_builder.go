package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hinterbergers/mycliniq-sub000/internal/model"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/repository"
)

var (
	ErrNoActiveRoles = errors.New("no active service roles configured")
	ErrBadPeriod     = errors.New("period out of range")
)

// InputBuilder materializes the planning input document for one period:
// slots from the coverage catalog, employees with derived eligibility and
// ban sets, and sanitized wishes. The document is rebuilt fresh on every
// request and schema-validated before it is returned.
type InputBuilder interface {
	Build(ctx context.Context, year, month int) (*plan.PlanningInput, error)
}

type inputBuilder struct {
	repo      *repository.Repository
	validator *plan.SchemaValidator
	logger    *zap.Logger
	now       func() time.Time
}

func NewInputBuilder(repo *repository.Repository, validator *plan.SchemaValidator, logger *zap.Logger) InputBuilder {
	return &inputBuilder{repo: repo, validator: validator, logger: logger, now: time.Now}
}

// ── role-group defaults ──
//
// An employee's free-text job title is folded (lowercase, diacritics
// stripped) and substring-matched into a coarse group; the group grants a
// default role-eligibility set expressed as role-code fragments. Explicit
// per-employee overrides are unioned in afterwards, never replacing the
// defaults. An unmatched title grants nothing, so such employees are only
// eligible via overrides.

type roleGroup struct {
	name      string
	titleKeys []string // folded substrings matched against the job title
	codeKeys  []string // role-code fragments granted; nil = every role
}

var roleGroups = []roleGroup{
	{
		name:      "senior",
		titleKeys: []string{"oberarzt", "oberarztin", "facharzt", "facharztin", "primar", "senior", "attending", "consultant"},
		codeKeys:  nil,
	},
	{
		name:      "resident",
		titleKeys: []string{"assistenzarzt", "assistenzarztin", "assistent", "resident", "registrar"},
		codeKeys:  []string{"ward", "night", "er", "icu"},
	},
	{
		name:      "intern",
		titleKeys: []string{"turnusarzt", "turnusarztin", "intern", "kpj", "famulant"},
		codeKeys:  []string{"ward"},
	},
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldLabel lowercases a label and strips combining marks, so "Oberärztin"
// and "oberarztin" compare equal.
func foldLabel(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func matchRoleGroup(jobTitle string) *roleGroup {
	title := foldLabel(jobTitle)
	for i := range roleGroups {
		for _, key := range roleGroups[i].titleKeys {
			if strings.Contains(title, key) {
				return &roleGroups[i]
			}
		}
	}
	return nil
}

func (g *roleGroup) defaultRoleIDs(roles []model.ServiceRole) []string {
	ids := make([]string, 0, len(roles))
	for i := range roles {
		if g.codeKeys == nil {
			ids = append(ids, roles[i].ServiceRoleID)
			continue
		}
		code := foldLabel(roles[i].Code)
		for _, key := range g.codeKeys {
			if strings.Contains(code, key) {
				ids = append(ids, roles[i].ServiceRoleID)
				break
			}
		}
	}
	return ids
}

// ── document assembly ──

func (b *inputBuilder) Build(ctx context.Context, year, month int) (*plan.PlanningInput, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, ErrBadPeriod
	}
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	roles, err := b.repo.ServiceRole.List(ctx, true)
	if err != nil {
		b.logger.Error("list service roles failed", zap.Error(err))
		return nil, err
	}
	if len(roles) == 0 {
		return nil, ErrNoActiveRoles
	}
	employees, err := b.repo.Employee.List(ctx, true)
	if err != nil {
		b.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}
	absences, err := b.repo.Absence.ListIntersecting(ctx, periodStart, periodEnd)
	if err != nil {
		b.logger.Error("list absences failed", zap.Error(err))
		return nil, err
	}
	wishes, err := b.repo.ShiftWish.ListByPeriod(ctx, year, month)
	if err != nil {
		b.logger.Error("list shift wishes failed", zap.Error(err))
		return nil, err
	}

	input := &plan.PlanningInput{
		Version: plan.DocVersion,
		Meta: plan.InputMeta{
			GeneratedAt: b.now().UTC().Format(time.RFC3339),
			Kind:        plan.KindDutyRoster,
		},
		Period: plan.Period{
			Year:      year,
			Month:     month,
			StartDate: periodStart.Format("2006-01-02"),
			EndDate:   periodEnd.Format("2006-01-02"),
		},
		Roles:     buildRoles(roles),
		Slots:     buildSlots(periodStart, periodEnd, roles),
		Employees: buildEmployees(employees, roles, absences, wishes, periodStart, periodEnd),
	}

	if err := b.validator.ValidateInput(input); err != nil {
		b.logger.Error("planning input failed validation",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return nil, err
	}
	return input, nil
}

func buildRoles(roles []model.ServiceRole) []plan.Role {
	out := make([]plan.Role, 0, len(roles))
	for i := range roles {
		out = append(out, plan.Role{
			ID:   roles[i].ServiceRoleID,
			Code: roles[i].Code,
			Name: roles[i].Name,
		})
	}
	return out
}

// buildSlots emits one slot per (calendar day × applicable role), days
// ascending, roles in catalog order within a day. Slot ids are
// deterministic, so rebuilding an unchanged period keeps ids and order
// stable.
func buildSlots(start, end time.Time, roles []model.ServiceRole) []plan.Slot {
	slots := make([]plan.Slot, 0, int(end.Day())*len(roles))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		weekday := isoWeekdayOf(day)
		_, isoWeek := day.ISOWeek()
		for i := range roles {
			if !roleCoversWeekday(&roles[i], weekday) {
				continue
			}
			date := day.Format("2006-01-02")
			slots = append(slots, plan.Slot{
				ID:        fmt.Sprintf("%s:%s", date, roles[i].ServiceRoleID),
				Date:      date,
				RoleID:    roles[i].ServiceRoleID,
				ISOWeek:   isoWeek,
				IsWeekend: weekday >= 6,
			})
		}
	}
	return slots
}

func roleCoversWeekday(role *model.ServiceRole, weekday int) bool {
	if len(role.Weekdays) == 0 {
		return true
	}
	for _, wd := range role.Weekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// isoWeekdayOf maps Go's Sunday-based weekday to ISO numbering, 1=Mon … 7=Sun.
func isoWeekdayOf(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func buildEmployees(
	employees []model.Employee,
	roles []model.ServiceRole,
	absences []model.AbsencePeriod,
	wishes []model.ShiftWish,
	periodStart, periodEnd time.Time,
) []plan.EmployeeRecord {
	banDates := expandAbsences(absences, periodStart, periodEnd)
	wishByEmployee := make(map[string]*model.ShiftWish, len(wishes))
	for i := range wishes {
		wishByEmployee[wishes[i].EmployeeID] = &wishes[i]
	}

	records := make([]plan.EmployeeRecord, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		rec := plan.EmployeeRecord{
			ID:          emp.EmployeeID,
			Name:        emp.Name,
			CanRoleIDs:  eligibleRoleIDs(emp, roles),
			BanDates:    banDates[emp.EmployeeID],
			BanWeekdays: emp.BanWeekdays,
		}
		rec.MaxSlots = emp.DefaultMaxSlots
		rec.MaxSlotsPerWeek = emp.DefaultMaxSlotsPerWeek

		if wish := wishByEmployee[emp.EmployeeID]; wish != nil {
			if c := normalizeCap(wish.MaxSlots); c != nil {
				rec.MaxSlots = c
			}
			if c := normalizeCap(wish.MaxSlotsPerWeek); c != nil {
				rec.MaxSlotsPerWeek = c
			}
			rec.Preferences = wishPreferences(wish)
		}
		records = append(records, rec)
	}
	return records
}

// eligibleRoleIDs unions the role-group default with the per-employee
// overrides, deduplicated, in catalog order first and extra overrides after.
func eligibleRoleIDs(emp *model.Employee, roles []model.ServiceRole) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(roles))
	if group := matchRoleGroup(emp.JobTitle); group != nil {
		for _, id := range group.defaultRoleIDs(roles) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	extra := make([]string, 0, len(emp.RoleIDOverrides))
	for _, id := range emp.RoleIDOverrides {
		if !seen[id] {
			seen[id] = true
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

// expandAbsences turns every absence range into per-day ban dates clipped
// to the period, unioned per employee. Overlapping sources collapse.
func expandAbsences(absences []model.AbsencePeriod, periodStart, periodEnd time.Time) map[string][]string {
	sets := make(map[string]map[string]bool)
	for i := range absences {
		from := absences[i].StartDate
		if from.Before(periodStart) {
			from = periodStart
		}
		to := absences[i].EndDate
		if to.After(periodEnd) {
			to = periodEnd
		}
		set := sets[absences[i].EmployeeID]
		if set == nil {
			set = make(map[string]bool)
			sets[absences[i].EmployeeID] = set
		}
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			set[day.Format("2006-01-02")] = true
		}
	}

	out := make(map[string][]string, len(sets))
	for id, set := range sets {
		dates := make([]string, 0, len(set))
		for d := range set {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		out[id] = dates
	}
	return out
}

// normalizeCap sanitizes a frontend-supplied cap: NaN, infinities and
// negative values become "unset" instead of failing the build.
func normalizeCap(v *float64) *int {
	if v == nil {
		return nil
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	n := int(f)
	return &n
}

func wishPreferences(wish *model.ShiftWish) *plan.Preferences {
	if len(wish.PreferDates) == 0 && len(wish.AvoidDates) == 0 &&
		len(wish.PreferRoleIDs) == 0 && len(wish.AvoidRoleIDs) == 0 {
		return nil
	}
	return &plan.Preferences{
		PreferDates:   wish.PreferDates,
		AvoidDates:    wish.AvoidDates,
		PreferRoleIDs: wish.PreferRoleIDs,
		AvoidRoleIDs:  wish.AvoidRoleIDs,
	}
}
