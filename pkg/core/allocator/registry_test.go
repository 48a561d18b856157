package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNormalizeConditions_BuildsTypedViews(t *testing.T) {
	reg, err := NormalizeConditions([]ScheduleCondition{
		WorkloadLimit{ID: "w1", Enabled: true, Scope: ScopeGlobal, MaxShiftsPerWeek: intPtr(5)},
		WorkloadLimit{ID: "w2", Enabled: true, Scope: ScopeUser, UserID: "u1", MaxShiftsPerWeek: intPtr(2)},
		ShiftStaffing{ID: "s1", Enabled: true, TemplateID: "t1", Role: "server", Count: 2},
		ShiftStaffing{ID: "s2", Enabled: true, TemplateID: "t1", Role: "chef", Count: 1},
		StaffPriority{ID: "p1", Enabled: true, TemplateID: "t1", UserID: "u2", Weight: 3},
		StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t1", UserID: "u3", Link: LinkBan},
	})
	require.NoError(t, err)
	assert.Empty(t, reg.Validate())

	// User-scoped limit fully overrides the global one for that employee
	limit := reg.EffectiveLimit("u1")
	require.NotNil(t, limit)
	assert.Equal(t, 2, *limit.MaxShiftsPerWeek)

	limit = reg.EffectiveLimit("u9")
	require.NotNil(t, limit)
	assert.Equal(t, 5, *limit.MaxShiftsPerWeek)

	staffing := reg.StaffingFor("t1")
	require.Len(t, staffing, 2)
	assert.Equal(t, "server", string(staffing[0].Role))
	assert.Equal(t, "chef", string(staffing[1].Role))
	assert.Empty(t, reg.StaffingFor("t2"))

	priority, ok := reg.PriorityFor("t1", "u2")
	require.True(t, ok)
	assert.Equal(t, 3, priority.Weight)

	assert.True(t, reg.IsBanned("t1", "u3"))
	assert.False(t, reg.IsBanned("t1", "u2"))
}

func TestNormalizeConditions_SkipsDisabledRecords(t *testing.T) {
	reg, err := NormalizeConditions([]ScheduleCondition{
		WorkloadLimit{ID: "w1", Enabled: false, Scope: ScopeGlobal, MinShiftsPerWeek: intPtr(9), MaxShiftsPerWeek: intPtr(1)},
		StaffShiftLink{ID: "l1", Enabled: false, TemplateID: "t1", UserID: "u1", Link: LinkBan},
	})
	require.NoError(t, err)

	assert.Empty(t, reg.Validate(), "disabled records are ignored entirely, even contradictory ones")
	assert.Nil(t, reg.EffectiveLimit("u1"))
	assert.False(t, reg.IsBanned("t1", "u1"))
}

func TestNormalizeConditions_RejectsMalformedVariants(t *testing.T) {
	tests := []struct {
		name string
		cond ScheduleCondition
	}{
		{"user scope without user id", WorkloadLimit{ID: "w", Enabled: true, Scope: ScopeUser}},
		{"unknown scope", WorkloadLimit{ID: "w", Enabled: true, Scope: "team"}},
		{"negative shift count", WorkloadLimit{ID: "w", Enabled: true, Scope: ScopeGlobal, MinShiftsPerWeek: intPtr(-1)}},
		{"negative hours", WorkloadLimit{ID: "w", Enabled: true, Scope: ScopeGlobal, MaxHoursPerWeek: floatPtr(-8)}},
		{"staffing without template", ShiftStaffing{ID: "s", Enabled: true, Role: "server", Count: 1}},
		{"staffing without role", ShiftStaffing{ID: "s", Enabled: true, TemplateID: "t1", Count: 1}},
		{"staffing zero count", ShiftStaffing{ID: "s", Enabled: true, TemplateID: "t1", Role: "server", Count: 0}},
		{"priority without user", StaffPriority{ID: "p", Enabled: true, TemplateID: "t1", Weight: 2}},
		{"priority weight too high", StaffPriority{ID: "p", Enabled: true, TemplateID: "t1", UserID: "u1", Weight: 6}},
		{"priority weight negative", StaffPriority{ID: "p", Enabled: true, TemplateID: "t1", UserID: "u1", Weight: -1}},
		{"link without template", StaffShiftLink{ID: "l", Enabled: true, UserID: "u1", Link: LinkForce}},
		{"link with unknown kind", StaffShiftLink{ID: "l", Enabled: true, TemplateID: "t1", UserID: "u1", Link: "prefer"}},
		{"nil condition", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeConditions([]ScheduleCondition{tt.cond})
			assert.Error(t, err, "malformed records must fail fast, not be silently dropped")
		})
	}
}

func TestValidate_MinAboveMaxIsBlocking(t *testing.T) {
	reg, err := NormalizeConditions([]ScheduleCondition{
		WorkloadLimit{ID: "w1", Enabled: true, Scope: ScopeGlobal,
			MinShiftsPerWeek: intPtr(5), MaxShiftsPerWeek: intPtr(2)},
		WorkloadLimit{ID: "w2", Enabled: true, Scope: ScopeUser, UserID: "u1",
			MinHoursPerWeek: floatPtr(40), MaxHoursPerWeek: floatPtr(20)},
	})
	require.NoError(t, err)

	errors := reg.Validate()
	require.Len(t, errors, 2)
	assert.Contains(t, errors[0], "min shifts per week 5 exceeds max 2")
	assert.Contains(t, errors[1], "user u1")
}

func TestValidate_ConflictingLinkIsBlocking(t *testing.T) {
	reg, err := NormalizeConditions([]ScheduleCondition{
		StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t1", UserID: "u1", Link: LinkForce},
		StaffShiftLink{ID: "l2", Enabled: true, TemplateID: "t1", UserID: "u1", Link: LinkBan},
	})
	require.NoError(t, err)

	errors := reg.Validate()
	require.Len(t, errors, 1)
	assert.Contains(t, errors[0], "conflicting link")

	// Repeated links of the same kind are fine
	reg, err = NormalizeConditions([]ScheduleCondition{
		StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t1", UserID: "u1", Link: LinkBan},
		StaffShiftLink{ID: "l2", Enabled: true, TemplateID: "t1", UserID: "u1", Link: LinkBan},
	})
	require.NoError(t, err)
	assert.Empty(t, reg.Validate())
}

func TestPairingPreference_ForceActsAsMaxWeightMandatory(t *testing.T) {
	reg, err := NormalizeConditions([]ScheduleCondition{
		StaffShiftLink{ID: "l1", Enabled: true, TemplateID: "t1", UserID: "u1", Link: LinkForce},
		StaffPriority{ID: "p1", Enabled: true, TemplateID: "t2", UserID: "u1", Weight: 2, Mandatory: true},
		StaffPriority{ID: "p2", Enabled: true, TemplateID: "t3", UserID: "u1", Weight: 4},
	})
	require.NoError(t, err)

	forced, weight := reg.pairingPreference("t1", "u1")
	assert.True(t, forced)
	assert.Equal(t, 5, weight)

	forced, weight = reg.pairingPreference("t2", "u1")
	assert.True(t, forced)
	assert.Equal(t, 2, weight)

	forced, weight = reg.pairingPreference("t3", "u1")
	assert.False(t, forced)
	assert.Equal(t, 4, weight)

	forced, weight = reg.pairingPreference("t9", "u1")
	assert.False(t, forced)
	assert.Equal(t, 0, weight)
}
