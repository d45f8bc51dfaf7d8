package plan

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── test fixtures ──

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// testInput builds a minimal August 2026 input with the given slots and
// employees. 2026-08-03 is a Monday in ISO week 32.
func testInput(slots []Slot, employees []EmployeeRecord) *PlanningInput {
	return &PlanningInput{
		Version: DocVersion,
		Meta:    InputMeta{GeneratedAt: "2026-08-01T00:00:00Z", Kind: KindDutyRoster},
		Period: Period{
			Year: 2026, Month: 8,
			StartDate: "2026-08-01", EndDate: "2026-08-31",
		},
		Roles:     []Role{{ID: "ward-day", Code: "WD", Name: "Ward Day Shift"}},
		Slots:     slots,
		Employees: employees,
	}
}

func slotOn(date string, isoWeek int) Slot {
	return Slot{
		ID:      date + ":ward-day",
		Date:    date,
		RoleID:  "ward-day",
		ISOWeek: isoWeek,
	}
}

func unconstrained(id, name string) EmployeeRecord {
	return EmployeeRecord{ID: id, Name: name, CanRoleIDs: []string{"ward-day"}}
}

// ── solver scenarios ──

func TestSolve_SingleSlotSingleEmployee(t *testing.T) {
	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{unconstrained("emp-1", "Dr. Adler")},
	)

	out := NewEngine().Solve(input, nil, 1)

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "2026-08-03:ward-day", out.Assignments[0].SlotID)
	assert.Equal(t, "emp-1", out.Assignments[0].EmployeeID)
	assert.Empty(t, out.UnfilledSlots)
	assert.Empty(t, out.Violations)
	assert.Equal(t, 1.0, out.Summary.Score)
	assert.Equal(t, Coverage{Filled: 1, Required: 1}, out.Summary.Coverage)
}

func TestSolve_BannedDateYieldsUnfilled(t *testing.T) {
	emp := unconstrained("emp-1", "Dr. Adler")
	emp.BanDates = []string{"2026-08-03"}

	input := testInput([]Slot{slotOn("2026-08-03", 32)}, []EmployeeRecord{emp})
	out := NewEngine().Solve(input, nil, 1)

	assert.Empty(t, out.Assignments)
	require.Len(t, out.UnfilledSlots, 1)
	assert.Equal(t, "2026-08-03:ward-day", out.UnfilledSlots[0].SlotID)
	assert.Equal(t, []string{ReasonNoCandidate}, out.UnfilledSlots[0].Reasons)

	require.Len(t, out.Violations, 1)
	assert.Equal(t, CodeNoCandidate, out.Violations[0].Code)
	assert.False(t, out.Violations[0].Hard)
	assert.Equal(t, 0.0, out.Summary.Score)
}

func TestSolve_NullLockLeavesSlotOpen(t *testing.T) {
	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{unconstrained("emp-1", "Dr. Adler")},
	)
	locks := map[string]Lock{
		"2026-08-03:ward-day": {SlotID: "2026-08-03:ward-day", EmployeeID: nil},
	}

	out := NewEngine().Solve(input, locks, 1)

	assert.Empty(t, out.Assignments)
	require.Len(t, out.UnfilledSlots, 1)
	assert.Equal(t, []string{ReasonSlotLockedEmpty}, out.UnfilledSlots[0].Reasons)
	// locked-empty is a deliberate state, not a violation
	assert.Empty(t, out.Violations)
}

func TestSolve_NullLockHasNoCounterSideEffects(t *testing.T) {
	// two same-day slots, one employee with a period cap of 1:
	// the locked-empty slot must not consume the cap
	emp := unconstrained("emp-1", "Dr. Adler")
	emp.MaxSlots = intPtr(1)

	slot2 := Slot{ID: "2026-08-03:icu-night", Date: "2026-08-03", RoleID: "icu-night", ISOWeek: 32}
	emp.CanRoleIDs = []string{"ward-day", "icu-night"}

	input := testInput([]Slot{slotOn("2026-08-03", 32), slot2}, []EmployeeRecord{emp})
	locks := map[string]Lock{
		"2026-08-03:ward-day": {SlotID: "2026-08-03:ward-day", EmployeeID: nil},
	}

	out := NewEngine().Solve(input, locks, 1)

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "2026-08-03:icu-night", out.Assignments[0].SlotID)
}

func TestSolve_PeriodCapTieBrokenByInputOrder(t *testing.T) {
	emp := unconstrained("emp-1", "Dr. Adler")
	emp.MaxSlots = intPtr(1)

	input := testInput(
		[]Slot{
			slotOn("2026-08-03", 32),
			slotOn("2026-08-04", 32),
		},
		[]EmployeeRecord{emp},
	)

	out := NewEngine().Solve(input, nil, 1)

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "2026-08-03:ward-day", out.Assignments[0].SlotID, "earlier-ordered slot wins the cap")
	require.Len(t, out.UnfilledSlots, 1)
	assert.Equal(t, "2026-08-04:ward-day", out.UnfilledSlots[0].SlotID)
}

func TestSolve_SameDaySlotsNeverShareEmployee(t *testing.T) {
	// one employee eligible for both same-day roles: only the
	// earlier-ordered slot is filled, regardless of role
	emp := EmployeeRecord{
		ID: "emp-1", Name: "Dr. Adler",
		CanRoleIDs: []string{"ward-day", "icu-night"},
	}
	slots := []Slot{
		slotOn("2026-08-03", 32),
		{ID: "2026-08-03:icu-night", Date: "2026-08-03", RoleID: "icu-night", ISOWeek: 32},
	}

	out := NewEngine().Solve(testInput(slots, []EmployeeRecord{emp}), nil, 1)

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "2026-08-03:ward-day", out.Assignments[0].SlotID)
	require.Len(t, out.UnfilledSlots, 1)
	assert.Equal(t, "2026-08-03:icu-night", out.UnfilledSlots[0].SlotID)
}

func TestSolve_LockToUnknownEmployee(t *testing.T) {
	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{unconstrained("emp-1", "Dr. Adler")},
	)
	locks := map[string]Lock{
		"2026-08-03:ward-day": {SlotID: "2026-08-03:ward-day", EmployeeID: strPtr("ghost")},
	}

	out := NewEngine().Solve(input, locks, 1)

	assert.Empty(t, out.Assignments, "no assignment may be fabricated")
	require.Len(t, out.Violations, 1)
	assert.Equal(t, CodeLockInvalidEmployee, out.Violations[0].Code)
	assert.True(t, out.Violations[0].Hard)
	assert.Equal(t, "ghost", out.Violations[0].EmployeeID)
	require.Len(t, out.UnfilledSlots, 1)
	assert.Equal(t, []string{ReasonLockUnknownEmployee}, out.UnfilledSlots[0].Reasons)
}

func TestSolve_ValidLockHonoredVerbatim(t *testing.T) {
	// lock forces emp-2 even though emp-1 would also be eligible
	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{
			unconstrained("emp-1", "Dr. Adler"),
			unconstrained("emp-2", "Dr. Berger"),
		},
	)
	locks := map[string]Lock{
		"2026-08-03:ward-day": {SlotID: "2026-08-03:ward-day", EmployeeID: strPtr("emp-2")},
	}

	for seed := int64(1); seed <= 5; seed++ {
		out := NewEngine().Solve(input, locks, seed)
		require.Len(t, out.Assignments, 1)
		assert.Equal(t, "emp-2", out.Assignments[0].EmployeeID, "seed %d", seed)
	}
}

func TestSolve_ValidLockCountsAgainstCaps(t *testing.T) {
	emp := unconstrained("emp-1", "Dr. Adler")
	emp.MaxSlots = intPtr(1)

	input := testInput(
		[]Slot{
			slotOn("2026-08-03", 32),
			slotOn("2026-08-04", 32),
		},
		[]EmployeeRecord{emp},
	)
	locks := map[string]Lock{
		"2026-08-03:ward-day": {SlotID: "2026-08-03:ward-day", EmployeeID: strPtr("emp-1")},
	}

	out := NewEngine().Solve(input, locks, 1)

	require.Len(t, out.Assignments, 1)
	assert.Equal(t, "2026-08-03:ward-day", out.Assignments[0].SlotID)
	require.Len(t, out.UnfilledSlots, 1, "lock consumed the cap; second slot stays open")
}

// ── invariants ──

func TestSolve_EverySlotAccountedForExactlyOnce(t *testing.T) {
	slots := []Slot{
		slotOn("2026-08-03", 32),
		slotOn("2026-08-04", 32),
		slotOn("2026-08-05", 32),
		slotOn("2026-08-08", 32), // Saturday
		slotOn("2026-08-10", 33),
	}
	employees := []EmployeeRecord{
		unconstrained("emp-1", "Dr. Adler"),
		{ID: "emp-2", Name: "Dr. Berger", CanRoleIDs: []string{"ward-day"}, MaxSlots: intPtr(1)},
		{ID: "emp-3", Name: "Dr. Conrad", CanRoleIDs: []string{"icu-night"}}, // never eligible
	}

	input := testInput(slots, employees)
	out := NewEngine().Solve(input, map[string]Lock{
		"2026-08-04:ward-day": {SlotID: "2026-08-04:ward-day", EmployeeID: nil},
	}, 7)

	assert.Equal(t, len(slots), len(out.Assignments)+len(out.UnfilledSlots))

	seen := make(map[string]int)
	for _, a := range out.Assignments {
		seen[a.SlotID]++
	}
	for _, u := range out.UnfilledSlots {
		seen[u.SlotID]++
	}
	for _, s := range slots {
		assert.Equal(t, 1, seen[s.ID], "slot %s must appear exactly once", s.ID)
	}
}

func TestSolve_CapsNeverExceeded(t *testing.T) {
	var slots []Slot
	for day := 3; day <= 14; day++ {
		week := 32
		if day >= 10 {
			week = 33
		}
		slots = append(slots, slotOn("2026-08-"+pad2(day), week))
	}
	employees := []EmployeeRecord{
		{ID: "emp-1", Name: "A", CanRoleIDs: []string{"ward-day"}, MaxSlots: intPtr(4), MaxSlotsPerWeek: intPtr(2)},
		{ID: "emp-2", Name: "B", CanRoleIDs: []string{"ward-day"}, MaxSlots: intPtr(3)},
		{ID: "emp-3", Name: "C", CanRoleIDs: []string{"ward-day"}, MaxSlotsPerWeek: intPtr(1)},
	}

	input := testInput(slots, employees)
	out := NewEngine().Solve(input, nil, 123)

	slotWeek := make(map[string]int)
	slotDate := make(map[string]string)
	for _, s := range slots {
		slotWeek[s.ID] = s.ISOWeek
		slotDate[s.ID] = s.Date
	}

	total := make(map[string]int)
	perWeek := make(map[string]map[int]int)
	perDate := make(map[string]map[string]int)
	for _, a := range out.Assignments {
		total[a.EmployeeID]++
		if perWeek[a.EmployeeID] == nil {
			perWeek[a.EmployeeID] = make(map[int]int)
		}
		perWeek[a.EmployeeID][slotWeek[a.SlotID]]++
		if perDate[a.EmployeeID] == nil {
			perDate[a.EmployeeID] = make(map[string]int)
		}
		perDate[a.EmployeeID][slotDate[a.SlotID]]++
	}

	assert.LessOrEqual(t, total["emp-1"], 4)
	assert.LessOrEqual(t, total["emp-2"], 3)
	for _, counts := range perWeek["emp-1"] {
		assert.LessOrEqual(t, counts, 2)
	}
	for _, counts := range perWeek["emp-3"] {
		assert.LessOrEqual(t, counts, 1)
	}
	for emp, dates := range perDate {
		for date, n := range dates {
			assert.LessOrEqual(t, n, 1, "employee %s assigned twice on %s", emp, date)
		}
	}
}

func TestSolve_BanWeekdayExcludes(t *testing.T) {
	emp := unconstrained("emp-1", "Dr. Adler")
	emp.BanWeekdays = []int{1} // Mondays

	input := testInput([]Slot{slotOn("2026-08-03", 32)}, []EmployeeRecord{emp}) // a Monday
	out := NewEngine().Solve(input, nil, 1)

	assert.Empty(t, out.Assignments)
	require.Len(t, out.UnfilledSlots, 1)
}

func TestSolve_NoSlots(t *testing.T) {
	input := testInput(nil, []EmployeeRecord{unconstrained("emp-1", "Dr. Adler")})
	out := NewEngine().Solve(input, nil, 1)

	assert.Empty(t, out.Assignments)
	assert.Empty(t, out.UnfilledSlots)
	assert.Equal(t, 0.0, out.Summary.Score, "empty period scores zero, not NaN")
	assert.Equal(t, Coverage{Filled: 0, Required: 0}, out.Summary.Coverage)
}

// ── determinism contract ──

func TestSolve_ByteIdenticalAcrossInvocations(t *testing.T) {
	var slots []Slot
	for day := 3; day <= 30; day++ {
		week := 32 + (day-3)/7
		slots = append(slots, slotOn("2026-08-"+pad2(day), week))
	}
	employees := []EmployeeRecord{
		unconstrained("emp-1", "Dr. Adler"),
		unconstrained("emp-2", "Dr. Berger"),
		{ID: "emp-3", Name: "Dr. Conrad", CanRoleIDs: []string{"ward-day"}, MaxSlotsPerWeek: intPtr(2)},
		{ID: "emp-4", Name: "Dr. Dorn", CanRoleIDs: []string{"ward-day"}, BanWeekdays: []int{6, 7}},
	}
	input := testInput(slots, employees)
	locks := map[string]Lock{
		"2026-08-05:ward-day": {SlotID: "2026-08-05:ward-day", EmployeeID: strPtr("emp-2")},
		"2026-08-09:ward-day": {SlotID: "2026-08-09:ward-day", EmployeeID: nil},
	}

	engine := NewEngine()
	first, err := json.Marshal(engine.Solve(input, locks, 4711))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := json.Marshal(engine.Solve(input, locks, 4711))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again), "output must be byte-identical on invocation %d", i)
	}
}

func TestSolve_SeedChangesSelection(t *testing.T) {
	employees := []EmployeeRecord{
		unconstrained("emp-1", "A"),
		unconstrained("emp-2", "B"),
		unconstrained("emp-3", "C"),
		unconstrained("emp-4", "D"),
		unconstrained("emp-5", "E"),
	}
	input := testInput([]Slot{slotOn("2026-08-03", 32)}, employees)

	engine := NewEngine()
	winners := make(map[string]bool)
	for seed := int64(1); seed <= 50; seed++ {
		out := engine.Solve(input, nil, seed)
		require.Len(t, out.Assignments, 1)
		winners[out.Assignments[0].EmployeeID] = true
	}
	assert.Greater(t, len(winners), 1, "different seeds should spread the pick across employees")
}

func TestSolve_RulesPassedThrough(t *testing.T) {
	input := testInput([]Slot{slotOn("2026-08-03", 32)}, []EmployeeRecord{unconstrained("emp-1", "A")})
	input.Rules = json.RawMessage(`[{"kind":"custom","weight":3}]`)

	out := NewEngine().Solve(input, nil, 1)
	assert.JSONEq(t, `[{"kind":"custom","weight":3}]`, string(out.Rules))
}

func pad2(n int) string { return fmt.Sprintf("%02d", n) }
