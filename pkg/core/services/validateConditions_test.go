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

func conditionRecords(t *testing.T, conditions ...allocator.ScheduleCondition) []db.Condition {
	t.Helper()
	records := make([]db.Condition, 0, len(conditions))
	for _, c := range conditions {
		record, err := db.EncodeCondition(c)
		require.NoError(t, err)
		records = append(records, record)
	}
	return records
}

func TestValidateConditions_Valid(t *testing.T) {
	max := 4
	mock := &mockDB{
		conditions: conditionRecords(t,
			allocator.WorkloadLimit{ID: "w1", Enabled: true, Scope: allocator.ScopeGlobal, MaxShiftsPerWeek: &max},
			allocator.ShiftStaffing{ID: "st1", Enabled: true, TemplateID: "t-floor", Role: "server", Count: 2},
		),
	}
	logger := zap.NewNop()

	result, err := ValidateConditions(context.Background(), mock, logger)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ConditionCount)
	assert.Empty(t, result.Errors)
}

func TestValidateConditions_BlockingErrors(t *testing.T) {
	min := 5
	max := 2
	mock := &mockDB{
		conditions: conditionRecords(t,
			allocator.WorkloadLimit{ID: "w1", Enabled: true, Scope: allocator.ScopeGlobal,
				MinShiftsPerWeek: &min, MaxShiftsPerWeek: &max},
			allocator.StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t-floor", UserID: "e1", Link: allocator.LinkForce},
			allocator.StaffShiftLink{ID: "l2", Enabled: true, TemplateID: "t-floor", UserID: "e1", Link: allocator.LinkBan},
		),
	}
	logger := zap.NewNop()

	result, err := ValidateConditions(context.Background(), mock, logger)
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "min shifts per week")
	assert.Contains(t, result.Errors[1], "conflicting link")
}

func TestValidateConditions_MalformedRecord(t *testing.T) {
	mock := &mockDB{
		conditions: []db.Condition{
			{ID: "x1", Kind: "head_balance", Payload: []byte(`{}`)},
		},
	}
	logger := zap.NewNop()

	_, err := ValidateConditions(context.Background(), mock, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown condition kind")
}
