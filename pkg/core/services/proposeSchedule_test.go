package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/db"
)

func proposeMock(t *testing.T, conditions ...allocator.ScheduleCondition) *mockDB {
	t.Helper()

	records := make([]db.Condition, 0, len(conditions))
	for _, c := range conditions {
		record, err := db.EncodeCondition(c)
		require.NoError(t, err)
		records = append(records, record)
	}

	return &mockDB{
		shifts: []db.Shift{
			{ID: "s1", TemplateID: "t-floor", ShiftDate: "2025-01-06", StartTime: "08:00", EndTime: "12:00",
				Role: "server", MinHeadcount: 2},
		},
		employees: []db.Employee{
			{ID: "e1", DisplayName: "An", Role: "server"},
			{ID: "e2", DisplayName: "Binh", Role: "server"},
			{ID: "e3", DisplayName: "Cuong", Role: "server"},
		},
		availability: []db.Availability{
			{UserID: "e1", ShiftDate: "2025-01-06", StartTime: "08:00", EndTime: "16:00"},
			{UserID: "e2", ShiftDate: "2025-01-06", StartTime: "08:00", EndTime: "12:00"},
		},
		conditions: records,
	}
}

func TestProposeSchedule_PersistsAssignments(t *testing.T) {
	mock := proposeMock(t)
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := ProposeSchedule(ctx, mock, expandConfig(), logger, "2025-01-06", allocator.StrategyMerge, false)
	require.NoError(t, err)
	require.Empty(t, result.ValidationErrors)
	require.NotNil(t, result.Result)

	assert.True(t, result.Persisted)
	assert.Equal(t, "2025-01-06", mock.replacedWeek)
	require.Len(t, mock.replacedAssignments, 2)
	assert.Equal(t, "e1", mock.replacedAssignments[0].UserID)
	assert.Equal(t, "e2", mock.replacedAssignments[1].UserID)

	require.Len(t, result.Applied, 1)
	assert.Len(t, result.Applied[0].Assigned, 2)
}

func TestProposeSchedule_DryRunDoesNotPersist(t *testing.T) {
	mock := proposeMock(t)
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := ProposeSchedule(ctx, mock, expandConfig(), logger, "2025-01-06", allocator.StrategyMerge, true)
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.Zero(t, mock.replaceCalls)
	assert.NotEmpty(t, result.Result.Assignments, "the proposal is still computed")
}

func TestProposeSchedule_BlockingConditionsStopTheRun(t *testing.T) {
	mock := proposeMock(t,
		allocator.StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t-floor", UserID: "e1", Link: allocator.LinkForce},
		allocator.StaffShiftLink{ID: "l2", Enabled: true, TemplateID: "t-floor", UserID: "e1", Link: allocator.LinkBan},
	)
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := ProposeSchedule(ctx, mock, expandConfig(), logger, "2025-01-06", allocator.StrategyMerge, false)
	require.NoError(t, err, "blocking conditions are a result, not a failure")

	assert.NotEmpty(t, result.ValidationErrors)
	assert.Nil(t, result.Result)
	assert.False(t, result.Persisted)
	assert.Zero(t, mock.replaceCalls)
}

func TestProposeSchedule_ReplaceStrategyDropsUntouchedAssignees(t *testing.T) {
	mock := proposeMock(t)
	// A second shift nothing can fill, carrying a stale assignee
	mock.shifts = append(mock.shifts, db.Shift{
		ID: "s2", TemplateID: "t-close", ShiftDate: "2025-01-11", StartTime: "18:00", EndTime: "22:00",
		Role: "chef", MinHeadcount: 1,
	})
	mock.assignments = []db.Assignment{
		{ID: "a1", ShiftID: "s2", UserID: "e9", Role: "chef"},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := ProposeSchedule(ctx, mock, expandConfig(), logger, "2025-01-06", allocator.StrategyReplace, false)
	require.NoError(t, err)
	require.Len(t, result.Applied, 2)

	for _, slot := range result.Applied {
		if slot.ID == "s2" {
			assert.Empty(t, slot.Assigned, "replace clears shifts the proposal does not touch")
		}
	}
	for _, a := range mock.replacedAssignments {
		assert.NotEqual(t, "e9", a.UserID)
	}
}

func TestProposeSchedule_MergeStrategyKeepsUntouchedAssignees(t *testing.T) {
	mock := proposeMock(t)
	mock.shifts = append(mock.shifts, db.Shift{
		ID: "s2", TemplateID: "t-close", ShiftDate: "2025-01-11", StartTime: "18:00", EndTime: "22:00",
		Role: "chef", MinHeadcount: 1,
	})
	mock.assignments = []db.Assignment{
		{ID: "a1", ShiftID: "s2", UserID: "e9", Role: "chef"},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := ProposeSchedule(ctx, mock, expandConfig(), logger, "2025-01-06", allocator.StrategyMerge, false)
	require.NoError(t, err)

	kept := false
	for _, a := range mock.replacedAssignments {
		if a.ShiftID == "s2" && a.UserID == "e9" {
			kept = true
		}
	}
	assert.True(t, kept, "merge keeps assignees on shifts the proposal does not touch")
	assert.NotNil(t, result.Result)
}

func TestProposeSchedule_NoShifts(t *testing.T) {
	mock := &mockDB{}
	logger := zap.NewNop()

	_, err := ProposeSchedule(context.Background(), mock, expandConfig(), logger, "2025-01-06", allocator.StrategyMerge, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shifts found")
}
