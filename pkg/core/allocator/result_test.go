package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnminh/restaff/pkg/core/model"
)

func applyFixture() []*model.ShiftSlot {
	return []*model.ShiftSlot{
		{ID: "s1", TemplateID: "t-floor", Date: "2025-01-06", Start: "08:00", End: "12:00", Role: "server",
			Assigned: []model.AssignedEmployee{{UserID: "e1", Role: "server"}}},
		{ID: "s2", TemplateID: "t-floor", Date: "2025-01-06", Start: "14:00", End: "18:00", Role: "server",
			Assigned: []model.AssignedEmployee{{UserID: "e2", Role: "server"}}},
		{ID: "s3", TemplateID: "t-kitchen", Date: "2025-01-07", Start: "08:00", End: "12:00", Role: "chef"},
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("merge")
	require.NoError(t, err)
	assert.Equal(t, StrategyMerge, s)

	s, err = ParseStrategy("replace")
	require.NoError(t, err)
	assert.Equal(t, StrategyReplace, s)

	_, err = ParseStrategy("append")
	assert.ErrorContains(t, err, "unknown apply strategy")
}

func TestApplyResult_Merge(t *testing.T) {
	baseline := applyFixture()
	result := &model.ScheduleRunResult{
		Assignments: []model.Assignment{
			{ShiftID: "s1", UserID: "e3", Role: "server"},
		},
	}

	applied, err := ApplyResult(baseline, result, StrategyMerge)
	require.NoError(t, err)
	require.Len(t, applied, 3)

	assert.Equal(t, []model.AssignedEmployee{{UserID: "e3", Role: "server"}}, applied[0].Assigned,
		"the proposal overwrites the touched shift, it does not append")
	assert.Equal(t, []model.AssignedEmployee{{UserID: "e2", Role: "server"}}, applied[1].Assigned,
		"untouched shifts keep their assignments")
	assert.Empty(t, applied[2].Assigned)
}

func TestApplyResult_Replace(t *testing.T) {
	baseline := applyFixture()
	result := &model.ScheduleRunResult{
		Assignments: []model.Assignment{
			{ShiftID: "s3", UserID: "e4", Role: "chef"},
		},
	}

	applied, err := ApplyResult(baseline, result, StrategyReplace)
	require.NoError(t, err)

	assert.Empty(t, applied[0].Assigned, "shifts absent from the proposal are cleared")
	assert.Empty(t, applied[1].Assigned)
	assert.Equal(t, []model.AssignedEmployee{{UserID: "e4", Role: "chef"}}, applied[2].Assigned)
}

func TestApplyResult_BaselineNotMutated(t *testing.T) {
	baseline := applyFixture()
	result := &model.ScheduleRunResult{
		Assignments: []model.Assignment{
			{ShiftID: "s1", UserID: "e9", Role: "server"},
		},
	}

	_, err := ApplyResult(baseline, result, StrategyReplace)
	require.NoError(t, err)

	assert.Equal(t, applyFixture(), baseline)
}

func TestApplyResult_Errors(t *testing.T) {
	_, err := ApplyResult(applyFixture(), nil, StrategyMerge)
	assert.Error(t, err)

	_, err = ApplyResult(applyFixture(), &model.ScheduleRunResult{}, Strategy("bogus"))
	assert.Error(t, err)
}
