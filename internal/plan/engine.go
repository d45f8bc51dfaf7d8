package plan

import (
	"fmt"
	"time"
)

// EngineID identifies the shipped greedy solver in run records.
const EngineID = "greedy-v1"

// Engine is the deterministic, single-pass duty-roster solver.
//
// It is a pure computation over fully materialized in-memory data: no I/O,
// no clock, no shared state. Identical input, lock snapshot and seed produce
// byte-identical output, including array ordering. Infeasibility never
// fails the run; it degrades to unfilled slots plus soft violations so a
// partial, actionable plan is always returned.
type Engine struct {
	id string
}

// NewEngine creates the greedy solver.
func NewEngine() *Engine {
	return &Engine{id: EngineID}
}

// ID returns the engine identifier persisted with every run.
func (e *Engine) ID() string { return e.id }

// employeeState is the per-run working state for one employee.
// Caps of -1 are unbounded.
type employeeState struct {
	index       int
	id          string
	canRoles    map[string]struct{}
	banDates    map[string]struct{}
	banWeekdays map[int]struct{}
	maxSlots    int
	maxPerWeek  int

	assigned  int
	perWeek   map[int]int
	usedDates map[string]struct{}
}

func newEmployeeState(index int, rec *EmployeeRecord) *employeeState {
	st := &employeeState{
		index:       index,
		id:          rec.ID,
		canRoles:    make(map[string]struct{}, len(rec.CanRoleIDs)),
		banDates:    make(map[string]struct{}, len(rec.BanDates)),
		banWeekdays: make(map[int]struct{}, len(rec.BanWeekdays)),
		maxSlots:    -1,
		maxPerWeek:  -1,
		perWeek:     make(map[int]int),
		usedDates:   make(map[string]struct{}),
	}
	for _, r := range rec.CanRoleIDs {
		st.canRoles[r] = struct{}{}
	}
	for _, d := range rec.BanDates {
		st.banDates[d] = struct{}{}
	}
	for _, w := range rec.BanWeekdays {
		st.banWeekdays[w] = struct{}{}
	}
	if rec.MaxSlots != nil {
		st.maxSlots = *rec.MaxSlots
	}
	if rec.MaxSlotsPerWeek != nil {
		st.maxPerWeek = *rec.MaxSlotsPerWeek
	}
	return st
}

// eligible applies the hard filters in their fixed order; the first failing
// filter excludes the candidate.
func (st *employeeState) eligible(slot *Slot, weekday int) bool {
	if _, ok := st.canRoles[slot.RoleID]; !ok {
		return false
	}
	if _, ok := st.banDates[slot.Date]; ok {
		return false
	}
	if _, ok := st.banWeekdays[weekday]; ok {
		return false
	}
	if st.maxSlots >= 0 && st.assigned >= st.maxSlots {
		return false
	}
	if st.maxPerWeek >= 0 && st.perWeek[slot.ISOWeek] >= st.maxPerWeek {
		return false
	}
	if _, ok := st.usedDates[slot.Date]; ok {
		return false
	}
	return true
}

func (st *employeeState) take(slot *Slot) {
	st.assigned++
	st.perWeek[slot.ISOWeek]++
	st.usedDates[slot.Date] = struct{}{}
}

// Solve runs one deterministic pass over the slots in input order.
//
// Slot order is part of the contract: when caps are over-subscribed, the
// earlier slot wins. Per slot, a lock short-circuits the candidate search;
// otherwise candidates are tried in a pseudo-random order reseeded per slot
// from seed + slotIndex + 1 so no employee is systematically favored.
func (e *Engine) Solve(input *PlanningInput, locks map[string]Lock, seed int64) *PlanningOutput {
	states := make([]*employeeState, 0, len(input.Employees))
	byID := make(map[string]*employeeState, len(input.Employees))
	for i := range input.Employees {
		st := newEmployeeState(i, &input.Employees[i])
		states = append(states, st)
		byID[st.id] = st
	}

	out := &PlanningOutput{
		Version: DocVersion,
		Meta: OutputMeta{
			GeneratedAt: input.Meta.GeneratedAt,
			Kind:        input.Meta.Kind,
			Seed:        seed,
			Engine:      e.id,
		},
		Assignments:   make([]Assignment, 0, len(input.Slots)),
		Violations:    make([]Violation, 0),
		UnfilledSlots: make([]UnfilledSlot, 0),
		Rules:         input.Rules,
	}

	for i := range input.Slots {
		slot := &input.Slots[i]

		// 1. lock check: locks always bypass the candidate search
		if lock, ok := locks[slot.ID]; ok {
			if lock.EmployeeID == nil {
				out.UnfilledSlots = append(out.UnfilledSlots, UnfilledSlot{
					SlotID:  slot.ID,
					Reasons: []string{ReasonSlotLockedEmpty},
				})
				continue
			}
			st, known := byID[*lock.EmployeeID]
			if !known {
				out.Violations = append(out.Violations, Violation{
					Code:       CodeLockInvalidEmployee,
					Hard:       true,
					Message:    fmt.Sprintf("slot %s is locked to unknown employee %s", slot.ID, *lock.EmployeeID),
					SlotID:     slot.ID,
					EmployeeID: *lock.EmployeeID,
				})
				out.UnfilledSlots = append(out.UnfilledSlots, UnfilledSlot{
					SlotID:  slot.ID,
					Reasons: []string{ReasonLockUnknownEmployee},
				})
				continue
			}
			// honored verbatim, even past caps
			st.take(slot)
			out.Assignments = append(out.Assignments, Assignment{SlotID: slot.ID, EmployeeID: st.id})
			continue
		}

		// 2. deterministic per-slot candidate order
		rng := NewLCG(seed + int64(i) + 1)
		order := rng.Shuffle(len(states))

		// 3. hard filters; first survivor wins
		weekday := isoWeekday(slot.Date)
		var winner *employeeState
		for _, idx := range order {
			if states[idx].eligible(slot, weekday) {
				winner = states[idx]
				break
			}
		}

		if winner == nil {
			out.UnfilledSlots = append(out.UnfilledSlots, UnfilledSlot{
				SlotID:  slot.ID,
				Reasons: []string{ReasonNoCandidate},
			})
			out.Violations = append(out.Violations, Violation{
				Code:    CodeNoCandidate,
				Hard:    false,
				Message: fmt.Sprintf("no eligible employee for slot %s", slot.ID),
				SlotID:  slot.ID,
			})
			continue
		}

		winner.take(slot)
		out.Assignments = append(out.Assignments, Assignment{SlotID: slot.ID, EmployeeID: winner.id})
	}

	required := len(input.Slots)
	filled := len(out.Assignments)
	score := 0.0
	if required > 0 {
		score = float64(filled) / float64(required)
	}
	out.Summary = Summary{
		Score:    score,
		Coverage: Coverage{Filled: filled, Required: required},
	}

	return out
}

// isoWeekday maps a YYYY-MM-DD date to ISO weekday 1=Monday … 7=Sunday.
// Unparseable dates map to 0, which never matches a ban.
func isoWeekday(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
