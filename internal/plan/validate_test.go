package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_ValidInput(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{unconstrained("emp-1", "Dr. Adler")},
	)
	assert.NoError(t, v.ValidateInput(input))
}

func TestSchemaValidator_ValidOutput(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	input := testInput(
		[]Slot{slotOn("2026-08-03", 32)},
		[]EmployeeRecord{unconstrained("emp-1", "Dr. Adler")},
	)
	out := NewEngine().Solve(input, nil, 1)
	assert.NoError(t, v.ValidateOutput(out))
}

func TestSchemaValidator_RejectsWrongVersion(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	input := testInput(nil, nil)
	input.Version = "v2"

	err = v.ValidateInput(input)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "planning-input", ve.Document)
	assert.NotEmpty(t, ve.Issues)
}

func TestSchemaValidator_AggregatesAllIssues(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	input := testInput(
		[]Slot{{ID: "", Date: "not-a-date", RoleID: "", ISOWeek: 99}},
		nil,
	)
	input.Period.Month = 13

	err = v.ValidateInput(input)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Greater(t, len(ve.Issues), 1, "every failing path must be listed, got: %v", ve.Issues)
	assert.True(t, strings.Contains(ve.Error(), "planning-input"))
}

func TestSchemaValidator_RejectsUnfilledWithoutReasons(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	out := &PlanningOutput{
		Version: DocVersion,
		Meta: OutputMeta{
			GeneratedAt: "2026-08-01T00:00:00Z",
			Kind:        KindDutyRoster,
			Seed:        1,
			Engine:      EngineID,
		},
		Assignments:   []Assignment{},
		Violations:    []Violation{},
		UnfilledSlots: []UnfilledSlot{{SlotID: "s", Reasons: []string{}}},
		Summary:       Summary{},
	}

	assert.Error(t, v.ValidateOutput(out))
}
