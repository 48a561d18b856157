package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnminh/restaff/pkg/core/model"
)

func slotWithAssignee(id, date, start, end, userID string) *model.ShiftSlot {
	slot := &model.ShiftSlot{
		ID:    id,
		Date:  date,
		Start: start,
		End:   end,
	}
	if userID != "" {
		slot.Assigned = []model.AssignedEmployee{{UserID: userID, Role: "server"}}
	}
	return slot
}

func TestFindConflict_OverlappingIntervals(t *testing.T) {
	candidate := slotWithAssignee("s1", "2025-01-06", "10:00", "14:00", "")

	tests := []struct {
		name     string
		other    *model.ShiftSlot
		conflict bool
	}{
		{"full overlap", slotWithAssignee("s2", "2025-01-06", "10:00", "14:00", "u1"), true},
		{"partial overlap at start", slotWithAssignee("s2", "2025-01-06", "08:00", "11:00", "u1"), true},
		{"partial overlap at end", slotWithAssignee("s2", "2025-01-06", "13:00", "17:00", "u1"), true},
		{"contained", slotWithAssignee("s2", "2025-01-06", "11:00", "12:00", "u1"), true},
		{"touching before", slotWithAssignee("s2", "2025-01-06", "08:00", "10:00", "u1"), false},
		{"touching after", slotWithAssignee("s2", "2025-01-06", "14:00", "18:00", "u1"), false},
		{"different date", slotWithAssignee("s2", "2025-01-07", "10:00", "14:00", "u1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict("u1", candidate, []*model.ShiftSlot{tt.other})
			if tt.conflict {
				assert.Equal(t, tt.other, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFindConflict_IgnoresUnassignedAndSelf(t *testing.T) {
	candidate := slotWithAssignee("s1", "2025-01-06", "10:00", "14:00", "")

	notMine := slotWithAssignee("s2", "2025-01-06", "10:00", "14:00", "u2")
	assert.Nil(t, FindConflict("u1", candidate, []*model.ShiftSlot{notMine}),
		"shifts held by other employees do not conflict")

	self := slotWithAssignee("s1", "2025-01-06", "10:00", "14:00", "u1")
	assert.Nil(t, FindConflict("u1", candidate, []*model.ShiftSlot{self}),
		"the candidate shift itself is not a conflict")
}
